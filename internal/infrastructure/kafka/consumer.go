package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Vinay9897/postpaid-billing-system/internal/repository"
	"github.com/segmentio/kafka-go"
)

// Consumer settles invoices from the billing event stream. The API
// records payments synchronously; marking an invoice paid once its
// payments cover the total happens here, off the request path.
type Consumer struct {
	reader      *kafka.Reader
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
}

func NewConsumer(brokers []string, topic, groupID string, invoiceRepo repository.InvoiceRepository, paymentRepo repository.PaymentRepository) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 10e3,
			MaxBytes: 10e6,
		}),
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
	}
}

func (c *Consumer) Consume(ctx context.Context) {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			slog.Error("failed to read Kafka message", "topic", c.reader.Config().Topic, "error", err)
			continue
		}

		slog.Info("Kafka message received", "topic", msg.Topic, "key", string(msg.Key))

		if err := c.handleEvent(ctx, msg.Value); err != nil {
			slog.Error("failed to process billing event", "key", string(msg.Key), "error", err)
		}
	}
}

type billingEvent struct {
	EventType string `json:"event_type"`
	InvoiceID int64  `json:"invoice_id"`
}

func (c *Consumer) handleEvent(ctx context.Context, value []byte) error {
	var event billingEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("unmarshal billing event: %w", err)
	}

	switch event.EventType {
	case "payment_recorded":
		return c.settleInvoice(ctx, event.InvoiceID)
	case "invoice_created":
		slog.Info("invoice opened", "invoice_id", event.InvoiceID)
		return nil
	default:
		return fmt.Errorf("unknown billing event type %q", event.EventType)
	}
}

func (c *Consumer) settleInvoice(ctx context.Context, invoiceID int64) error {
	invoice, err := c.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return err
	}
	if invoice.Status == "paid" {
		return nil
	}

	payments, err := c.paymentRepo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return err
	}
	var paid float64
	for _, p := range payments {
		paid += p.Amount
	}
	if paid < invoice.TotalAmount {
		return nil
	}

	if err := c.invoiceRepo.UpdateStatus(ctx, invoiceID, "paid"); err != nil {
		return err
	}
	slog.Info("invoice settled", "invoice_id", invoiceID, "paid", paid)
	return nil
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

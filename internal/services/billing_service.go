package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/Vinay9897/postpaid-billing-system/internal/infrastructure/kafka"
	"github.com/Vinay9897/postpaid-billing-system/internal/models"
	"github.com/Vinay9897/postpaid-billing-system/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

type BillingService interface {
	CreateInvoice(ctx context.Context, customerID int64, invoice *models.Invoice) (int64, error)
	ListInvoices(ctx context.Context, customerID int64) ([]models.Invoice, error)
	RecordPayment(ctx context.Context, invoiceID int64, payment *models.Payment) (int64, error)
	ListPayments(ctx context.Context, invoiceID int64) ([]models.Payment, error)
	CreateUsageRecord(ctx context.Context, serviceID int64, record *models.UsageRecord) (int64, error)
	ListUsageRecords(ctx context.Context, serviceID int64) ([]models.UsageRecord, error)
}

type billingService struct {
	customerRepo  repository.CustomerRepository
	serviceRepo   repository.ServiceRepository
	invoiceRepo   repository.InvoiceRepository
	paymentRepo   repository.PaymentRepository
	usageRepo     repository.UsageRecordRepository
	kafkaProducer kafka.KafkaProducer
}

func NewBillingService(
	customerRepo repository.CustomerRepository,
	serviceRepo repository.ServiceRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	usageRepo repository.UsageRecordRepository,
	kafkaProducer kafka.KafkaProducer,
) *billingService {
	return &billingService{
		customerRepo:  customerRepo,
		serviceRepo:   serviceRepo,
		invoiceRepo:   invoiceRepo,
		paymentRepo:   paymentRepo,
		usageRepo:     usageRepo,
		kafkaProducer: kafkaProducer,
	}
}

func (s *billingService) CreateInvoice(ctx context.Context, customerID int64, invoice *models.Invoice) (int64, error) {
	tracer := otel.Tracer("billing-service")
	ctx, span := tracer.Start(ctx, "CreateInvoice")
	defer span.End()

	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		span.SetStatus(codes.Error, "customer lookup failed")
		return 0, err
	}

	invoice.CustomerID = customerID
	if invoice.Status == "" {
		invoice.Status = "open"
	}
	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		span.RecordError(err)
		slog.Error("failed to create invoice", "customer_id", customerID, "error", err)
		return 0, err
	}

	s.publishEvent("invoice_created", invoice.ID, map[string]interface{}{
		"invoice_id":  invoice.ID,
		"customer_id": customerID,
		"amount":      invoice.TotalAmount,
	})

	slog.Info("invoice created", "invoice_id", invoice.ID, "customer_id", customerID)
	return invoice.ID, nil
}

func (s *billingService) ListInvoices(ctx context.Context, customerID int64) ([]models.Invoice, error) {
	return s.invoiceRepo.ListByCustomer(ctx, customerID)
}

func (s *billingService) RecordPayment(ctx context.Context, invoiceID int64, payment *models.Payment) (int64, error) {
	tracer := otel.Tracer("billing-service")
	ctx, span := tracer.Start(ctx, "RecordPayment")
	defer span.End()

	if _, err := s.invoiceRepo.GetByID(ctx, invoiceID); err != nil {
		span.SetStatus(codes.Error, "invoice lookup failed")
		return 0, err
	}

	payment.InvoiceID = invoiceID
	if payment.PaymentDate.IsZero() {
		payment.PaymentDate = time.Now().UTC()
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		span.RecordError(err)
		slog.Error("failed to record payment", "invoice_id", invoiceID, "error", err)
		return 0, err
	}

	s.publishEvent("payment_recorded", payment.ID, map[string]interface{}{
		"payment_id": payment.ID,
		"invoice_id": invoiceID,
		"amount":     payment.Amount,
	})

	slog.Info("payment recorded", "payment_id", payment.ID, "invoice_id", invoiceID)
	return payment.ID, nil
}

func (s *billingService) ListPayments(ctx context.Context, invoiceID int64) ([]models.Payment, error) {
	return s.paymentRepo.ListByInvoice(ctx, invoiceID)
}

func (s *billingService) CreateUsageRecord(ctx context.Context, serviceID int64, record *models.UsageRecord) (int64, error) {
	if _, err := s.serviceRepo.GetByID(ctx, serviceID); err != nil {
		return 0, err
	}

	record.ServiceID = serviceID
	if record.UsageDate.IsZero() {
		record.UsageDate = time.Now().UTC()
	}
	if err := s.usageRepo.Create(ctx, record); err != nil {
		slog.Error("failed to create usage record", "service_id", serviceID, "error", err)
		return 0, err
	}

	slog.Info("usage record created", "usage_id", record.ID, "service_id", serviceID)
	return record.ID, nil
}

func (s *billingService) ListUsageRecords(ctx context.Context, serviceID int64) ([]models.UsageRecord, error) {
	return s.usageRepo.ListByService(ctx, serviceID)
}

func (s *billingService) publishEvent(eventType string, key int64, payload map[string]interface{}) {
	payload["event_type"] = eventType
	payload["created_at"] = time.Now().UTC().Format(time.RFC3339)
	eventBytes, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal kafka event", "event_type", eventType, "error", err)
		return
	}
	go sendWithRetry(s.kafkaProducer, "billing", key, eventBytes)
}

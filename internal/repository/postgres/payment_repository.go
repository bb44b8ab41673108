package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Vinay9897/postpaid-billing-system/internal/models"
	pkgerrors "github.com/Vinay9897/postpaid-billing-system/pkg/errors"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) (err error) {
	defer observe("payment_create", time.Now(), &err)

	if payment == nil {
		return pkgerrors.ErrInvalidInput
	}

	query := `
	INSERT INTO payments (invoice_id, payment_date, amount, payment_method)
	VALUES ($1, $2, $3, $4)
	RETURNING payment_id
	`
	err = r.db.QueryRowContext(
		ctx,
		query,
		payment.InvoiceID,
		payment.PaymentDate,
		payment.Amount,
		payment.PaymentMethod,
	).Scan(&payment.ID)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) ListByInvoice(ctx context.Context, invoiceID int64) (payments []models.Payment, err error) {
	defer observe("payment_list_by_invoice", time.Now(), &err)

	query := `SELECT payment_id, invoice_id, payment_date, amount, payment_method FROM payments WHERE invoice_id = $1 ORDER BY payment_id`
	rows, err := r.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for invoice %d: %w", invoiceID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Payment
		if err = rows.Scan(&p.ID, &p.InvoiceID, &p.PaymentDate, &p.Amount, &p.PaymentMethod); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

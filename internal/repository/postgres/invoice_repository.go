package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Vinay9897/postpaid-billing-system/internal/models"
	pkgerrors "github.com/Vinay9897/postpaid-billing-system/pkg/errors"
)

type InvoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) (err error) {
	defer observe("invoice_create", time.Now(), &err)

	if invoice == nil {
		return pkgerrors.ErrInvalidInput
	}

	query := `
	INSERT INTO invoices (customer_id, billing_period_start, billing_period_end, total_amount, status)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING invoice_id
	`
	err = r.db.QueryRowContext(
		ctx,
		query,
		invoice.CustomerID,
		invoice.BillingPeriodStart,
		invoice.BillingPeriodEnd,
		invoice.TotalAmount,
		invoice.Status,
	).Scan(&invoice.ID)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (invoice *models.Invoice, err error) {
	defer observe("invoice_get_by_id", time.Now(), &err)

	query := `SELECT invoice_id, customer_id, billing_period_start, billing_period_end, total_amount, status FROM invoices WHERE invoice_id = $1`
	invoice = &models.Invoice{}
	err = r.db.QueryRowContext(ctx, query, id).Scan(
		&invoice.ID, &invoice.CustomerID, &invoice.BillingPeriodStart,
		&invoice.BillingPeriodEnd, &invoice.TotalAmount, &invoice.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.ErrInvoiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice %d: %w", id, err)
	}
	return invoice, nil
}

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id int64, status string) (err error) {
	defer observe("invoice_update_status", time.Now(), &err)

	query := `UPDATE invoices SET status = $1 WHERE invoice_id = $2`
	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status of invoice %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return pkgerrors.ErrInvoiceNotFound
	}
	return nil
}

func (r *InvoiceRepository) ListByCustomer(ctx context.Context, customerID int64) (invoices []models.Invoice, err error) {
	defer observe("invoice_list_by_customer", time.Now(), &err)

	query := `SELECT invoice_id, customer_id, billing_period_start, billing_period_end, total_amount, status FROM invoices WHERE customer_id = $1 ORDER BY invoice_id`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for customer %d: %w", customerID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var inv models.Invoice
		if err = rows.Scan(&inv.ID, &inv.CustomerID, &inv.BillingPeriodStart,
			&inv.BillingPeriodEnd, &inv.TotalAmount, &inv.Status); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

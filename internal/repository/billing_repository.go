package repository

import (
	"context"

	"github.com/Vinay9897/postpaid-billing-system/internal/models"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	GetByID(ctx context.Context, id int64) (*models.Invoice, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]models.Invoice, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	ListByInvoice(ctx context.Context, invoiceID int64) ([]models.Payment, error)
}

type UsageRecordRepository interface {
	Create(ctx context.Context, record *models.UsageRecord) error
	ListByService(ctx context.Context, serviceID int64) ([]models.UsageRecord, error)
}

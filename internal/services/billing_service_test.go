package service

import (
	"context"
	"testing"
	"time"

	"github.com/Vinay9897/postpaid-billing-system/internal/models"
	pkgerrors "github.com/Vinay9897/postpaid-billing-system/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBillingFixture() (*billingService, *fakeCustomerRepo, *fakeServiceRepo, *fakeInvoiceRepo) {
	customerRepo := newFakeCustomerRepo()
	serviceRepo := newFakeServiceRepo()
	invoiceRepo := newFakeInvoiceRepo()
	svc := NewBillingService(customerRepo, serviceRepo, invoiceRepo, newFakePaymentRepo(), newFakeUsageRepo(), &fakeProducer{})
	return svc, customerRepo, serviceRepo, invoiceRepo
}

func TestBillingService_CreateInvoice(t *testing.T) {
	ctx := context.Background()
	svc, customerRepo, _, _ := newBillingFixture()

	t.Run("unknown customer", func(t *testing.T) {
		_, err := svc.CreateInvoice(ctx, 404, &models.Invoice{TotalAmount: 10})
		assert.ErrorIs(t, err, pkgerrors.ErrCustomerNotFound)
	})

	t.Run("success defaults status to open", func(t *testing.T) {
		customer := &models.Customer{UserID: 1}
		require.NoError(t, customerRepo.Create(ctx, customer))

		invoice := &models.Invoice{
			BillingPeriodStart: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			BillingPeriodEnd:   time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
			TotalAmount:        99.5,
		}
		invoiceID, err := svc.CreateInvoice(ctx, customer.ID, invoice)
		require.NoError(t, err)
		assert.NotZero(t, invoiceID)
		assert.Equal(t, "open", invoice.Status)
		assert.Equal(t, customer.ID, invoice.CustomerID)
	})
}

func TestBillingService_RecordPayment(t *testing.T) {
	ctx := context.Background()
	svc, customerRepo, _, invoiceRepo := newBillingFixture()

	t.Run("unknown invoice", func(t *testing.T) {
		_, err := svc.RecordPayment(ctx, 404, &models.Payment{Amount: 5})
		assert.ErrorIs(t, err, pkgerrors.ErrInvoiceNotFound)
	})

	t.Run("success fills payment date", func(t *testing.T) {
		customer := &models.Customer{UserID: 1}
		require.NoError(t, customerRepo.Create(ctx, customer))
		invoice := &models.Invoice{CustomerID: customer.ID, TotalAmount: 50}
		require.NoError(t, invoiceRepo.Create(ctx, invoice))

		payment := &models.Payment{Amount: 50, PaymentMethod: "card"}
		paymentID, err := svc.RecordPayment(ctx, invoice.ID, payment)
		require.NoError(t, err)
		assert.NotZero(t, paymentID)
		assert.False(t, payment.PaymentDate.IsZero())
		assert.Equal(t, invoice.ID, payment.InvoiceID)
	})
}

func TestBillingService_CreateUsageRecord(t *testing.T) {
	ctx := context.Background()
	svc, _, serviceRepo, _ := newBillingFixture()

	t.Run("unknown service", func(t *testing.T) {
		_, err := svc.CreateUsageRecord(ctx, 404, &models.UsageRecord{Amount: 1})
		assert.ErrorIs(t, err, pkgerrors.ErrServiceNotFound)
	})

	t.Run("success", func(t *testing.T) {
		plan := &models.Service{CustomerID: 1, ServiceType: "mobile", Status: "active"}
		require.NoError(t, serviceRepo.Create(ctx, plan))

		record := &models.UsageRecord{Amount: 12.5, Unit: "GB"}
		usageID, err := svc.CreateUsageRecord(ctx, plan.ID, record)
		require.NoError(t, err)
		assert.NotZero(t, usageID)

		records, err := svc.ListUsageRecords(ctx, plan.ID)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})
}

func TestAdminUserService_Roles(t *testing.T) {
	ctx := context.Background()
	svc := NewAdminUserService(newFakeUserRepo())

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, CreateUserInput{
			Username: "eve", Email: "eve@example.com", Password: "x", Role: "root",
		})
		assert.ErrorIs(t, err, pkgerrors.ErrInvalidRole)
	})

	t.Run("defaults to customer", func(t *testing.T) {
		id, err := svc.CreateUser(ctx, CreateUserInput{
			Username: "frank", Email: "frank@example.com", Password: "x",
		})
		require.NoError(t, err)
		user, err := svc.GetUser(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.RoleCustomer, user.Role)
	})

	t.Run("creates admin", func(t *testing.T) {
		id, err := svc.CreateUser(ctx, CreateUserInput{
			Username: "grace", Email: "grace@example.com", Password: "x", Role: "admin",
		})
		require.NoError(t, err)
		user, err := svc.GetUser(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, user.Role)
	})
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Vinay9897/postpaid-billing-system/internal/infrastructure/redis"
	"github.com/Vinay9897/postpaid-billing-system/internal/models"
	"github.com/Vinay9897/postpaid-billing-system/internal/repository"
	"go.opentelemetry.io/otel"
)

type UpdateCustomerInput struct {
	FullName    string
	PhoneNumber string
	Address     string
}

type CustomerService interface {
	GetCustomer(ctx context.Context, id int64) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	CreateCustomer(ctx context.Context, customer *models.Customer) (int64, error)
	UpdateCustomer(ctx context.Context, id int64, input UpdateCustomerInput) error
	DeleteCustomer(ctx context.Context, id int64) error
	ListServices(ctx context.Context, customerID int64) ([]models.Service, error)
	CreateService(ctx context.Context, customerID int64, service *models.Service) (int64, error)

	// OwnerUserID resolves the user id owning a customer profile. The
	// authorization layer calls this on every owner-scoped request, so
	// the result is cached.
	OwnerUserID(ctx context.Context, customerID int64) (int64, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
	serviceRepo  repository.ServiceRepository
	ownerCache   redis.Cache
}

func NewCustomerService(
	customerRepo repository.CustomerRepository,
	serviceRepo repository.ServiceRepository,
	ownerCache redis.Cache,
) *customerService {
	return &customerService{
		customerRepo: customerRepo,
		serviceRepo:  serviceRepo,
		ownerCache:   ownerCache,
	}
}

func (s *customerService) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.customerRepo.List(ctx)
}

func (s *customerService) CreateCustomer(ctx context.Context, customer *models.Customer) (int64, error) {
	tracer := otel.Tracer("billing-service")
	ctx, span := tracer.Start(ctx, "CreateCustomer")
	defer span.End()

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		span.RecordError(err)
		return 0, err
	}
	slog.Info("customer created", "customer_id", customer.ID, "user_id", customer.UserID)
	return customer.ID, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, id int64, input UpdateCustomerInput) error {
	tracer := otel.Tracer("billing-service")
	ctx, span := tracer.Start(ctx, "UpdateCustomer")
	defer span.End()

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if input.FullName != "" {
		customer.FullName = input.FullName
	}
	if input.PhoneNumber != "" {
		customer.PhoneNumber = input.PhoneNumber
	}
	if input.Address != "" {
		customer.Address = input.Address
	}
	return s.customerRepo.Update(ctx, customer)
}

func (s *customerService) DeleteCustomer(ctx context.Context, id int64) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.ownerCache.Del(ctx, ownerCacheKey(id)); err != nil {
		slog.Warn("failed to invalidate owner cache", "customer_id", id, "error", err)
	}
	slog.Info("customer deleted", "customer_id", id)
	return nil
}

func (s *customerService) ListServices(ctx context.Context, customerID int64) ([]models.Service, error) {
	return s.serviceRepo.ListByCustomer(ctx, customerID)
}

func (s *customerService) CreateService(ctx context.Context, customerID int64, service *models.Service) (int64, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return 0, err
	}
	service.CustomerID = customerID
	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return 0, err
	}
	slog.Info("service created", "service_id", service.ID, "customer_id", customerID)
	return service.ID, nil
}

func (s *customerService) OwnerUserID(ctx context.Context, customerID int64) (int64, error) {
	key := ownerCacheKey(customerID)
	if ownerID, err := s.ownerCache.GetInt64(ctx, key); err == nil {
		return ownerID, nil
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return 0, err
	}
	if err := s.ownerCache.SetInt64(ctx, key, customer.UserID, time.Hour); err != nil {
		slog.Warn("failed to cache owner lookup", "customer_id", customerID, "error", err)
	}
	return customer.UserID, nil
}

func ownerCacheKey(customerID int64) string {
	return fmt.Sprintf("customer:%d:owner", customerID)
}

package repository

import (
	"context"

	"github.com/Vinay9897/postpaid-billing-system/internal/models"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, id int64) error
}

type ServiceRepository interface {
	Create(ctx context.Context, service *models.Service) error
	GetByID(ctx context.Context, id int64) (*models.Service, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]models.Service, error)
}

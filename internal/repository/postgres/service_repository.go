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

type ServiceRepository struct {
	db *sql.DB
}

func NewServiceRepository(db *sql.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, service *models.Service) (err error) {
	defer observe("service_create", time.Now(), &err)

	if service == nil {
		return pkgerrors.ErrInvalidInput
	}

	query := `
	INSERT INTO services (customer_id, service_type, start_date, status)
	VALUES ($1, $2, $3, $4)
	RETURNING service_id
	`
	err = r.db.QueryRowContext(
		ctx,
		query,
		service.CustomerID,
		service.ServiceType,
		service.StartDate,
		service.Status,
	).Scan(&service.ID)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (service *models.Service, err error) {
	defer observe("service_get_by_id", time.Now(), &err)

	query := `SELECT service_id, customer_id, service_type, start_date, status FROM services WHERE service_id = $1`
	service = &models.Service{}
	err = r.db.QueryRowContext(ctx, query, id).Scan(
		&service.ID, &service.CustomerID, &service.ServiceType, &service.StartDate, &service.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service %d: %w", id, err)
	}
	return service, nil
}

func (r *ServiceRepository) ListByCustomer(ctx context.Context, customerID int64) (services []models.Service, err error) {
	defer observe("service_list_by_customer", time.Now(), &err)

	query := `SELECT service_id, customer_id, service_type, start_date, status FROM services WHERE customer_id = $1 ORDER BY service_id`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services for customer %d: %w", customerID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Service
		if err = rows.Scan(&s.ID, &s.CustomerID, &s.ServiceType, &s.StartDate, &s.Status); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

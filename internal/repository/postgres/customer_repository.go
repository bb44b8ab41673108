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

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) (err error) {
	defer observe("customer_create", time.Now(), &err)

	if customer == nil {
		return pkgerrors.ErrInvalidInput
	}

	query := `
	INSERT INTO customers (user_id, full_name, phone_number, address)
	VALUES ($1, $2, $3, $4)
	RETURNING customer_id
	`
	err = r.db.QueryRowContext(
		ctx,
		query,
		customer.UserID,
		customer.FullName,
		customer.PhoneNumber,
		customer.Address,
	).Scan(&customer.ID)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (customer *models.Customer, err error) {
	defer observe("customer_get_by_id", time.Now(), &err)

	query := `SELECT customer_id, user_id, full_name, phone_number, address FROM customers WHERE customer_id = $1`
	customer = &models.Customer{}
	err = r.db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID, &customer.UserID, &customer.FullName, &customer.PhoneNumber, &customer.Address)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkgerrors.ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer %d: %w", id, err)
	}
	return customer, nil
}

func (r *CustomerRepository) List(ctx context.Context) (customers []models.Customer, err error) {
	defer observe("customer_list", time.Now(), &err)

	query := `SELECT customer_id, user_id, full_name, phone_number, address FROM customers ORDER BY customer_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Customer
		if err = rows.Scan(&c.ID, &c.UserID, &c.FullName, &c.PhoneNumber, &c.Address); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *CustomerRepository) Update(ctx context.Context, customer *models.Customer) (err error) {
	defer observe("customer_update", time.Now(), &err)

	query := `UPDATE customers SET full_name = $1, phone_number = $2, address = $3 WHERE customer_id = $4`
	res, err := r.db.ExecContext(ctx, query, customer.FullName, customer.PhoneNumber, customer.Address, customer.ID)
	if err != nil {
		return fmt.Errorf("failed to update customer %d: %w", customer.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return pkgerrors.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) (err error) {
	defer observe("customer_delete", time.Now(), &err)

	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE customer_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return pkgerrors.ErrCustomerNotFound
	}
	return nil
}

package service

import (
	"context"
	"sync"
	"time"

	"github.com/Vinay9897/postpaid-billing-system/internal/infrastructure/redis"
	"github.com/Vinay9897/postpaid-billing-system/internal/models"
	pkgerrors "github.com/Vinay9897/postpaid-billing-system/pkg/errors"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int64]*models.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username {
			return pkgerrors.ErrUsernameExists
		}
		if u.Email == user.Email {
			return pkgerrors.ErrEmailExists
		}
	}
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.nextID++
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, pkgerrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pkgerrors.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return pkgerrors.ErrUserNotFound
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return pkgerrors.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return pkgerrors.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeCustomerRepo struct {
	mu        sync.Mutex
	nextID    int64
	customers map[int64]*models.Customer
	getCalls  int
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{nextID: 1, customers: map[int64]*models.Customer{}}
}

func (f *fakeCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	customer.ID = f.nextID
	f.nextID++
	cp := *customer
	f.customers[customer.ID] = &cp
	return nil
}

func (f *fakeCustomerRepo) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	c, ok := f.customers[id]
	if !ok {
		return nil, pkgerrors.ErrCustomerNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomerRepo) List(ctx context.Context) ([]models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Customer
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCustomerRepo) Update(ctx context.Context, customer *models.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.customers[customer.ID]; !ok {
		return pkgerrors.ErrCustomerNotFound
	}
	cp := *customer
	f.customers[customer.ID] = &cp
	return nil
}

func (f *fakeCustomerRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.customers[id]; !ok {
		return pkgerrors.ErrCustomerNotFound
	}
	delete(f.customers, id)
	return nil
}

type fakeServiceRepo struct {
	mu       sync.Mutex
	nextID   int64
	services map[int64]*models.Service
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{nextID: 1, services: map[int64]*models.Service{}}
}

func (f *fakeServiceRepo) Create(ctx context.Context, service *models.Service) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	service.ID = f.nextID
	f.nextID++
	cp := *service
	f.services[service.ID] = &cp
	return nil
}

func (f *fakeServiceRepo) GetByID(ctx context.Context, id int64) (*models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.services[id]
	if !ok {
		return nil, pkgerrors.ErrServiceNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeServiceRepo) ListByCustomer(ctx context.Context, customerID int64) ([]models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Service
	for _, s := range f.services {
		if s.CustomerID == customerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeInvoiceRepo struct {
	mu       sync.Mutex
	nextID   int64
	invoices map[int64]*models.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{nextID: 1, invoices: map[int64]*models.Invoice{}}
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, invoice *models.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	invoice.ID = f.nextID
	f.nextID++
	cp := *invoice
	f.invoices[invoice.ID] = &cp
	return nil
}

func (f *fakeInvoiceRepo) GetByID(ctx context.Context, id int64) (*models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invoices[id]
	if !ok {
		return nil, pkgerrors.ErrInvoiceNotFound
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvoiceRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invoices[id]
	if !ok {
		return pkgerrors.ErrInvoiceNotFound
	}
	inv.Status = status
	return nil
}

func (f *fakeInvoiceRepo) ListByCustomer(ctx context.Context, customerID int64) ([]models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Invoice
	for _, inv := range f.invoices {
		if inv.CustomerID == customerID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	nextID   int64
	payments map[int64]*models.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{nextID: 1, payments: map[int64]*models.Payment{}}
}

func (f *fakePaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment.ID = f.nextID
	f.nextID++
	cp := *payment
	f.payments[payment.ID] = &cp
	return nil
}

func (f *fakePaymentRepo) ListByInvoice(ctx context.Context, invoiceID int64) ([]models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Payment
	for _, p := range f.payments {
		if p.InvoiceID == invoiceID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeUsageRepo struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]*models.UsageRecord
}

func newFakeUsageRepo() *fakeUsageRepo {
	return &fakeUsageRepo{nextID: 1, records: map[int64]*models.UsageRecord{}}
}

func (f *fakeUsageRepo) Create(ctx context.Context, record *models.UsageRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	record.ID = f.nextID
	f.nextID++
	cp := *record
	f.records[record.ID] = &cp
	return nil
}

func (f *fakeUsageRepo) ListByService(ctx context.Context, serviceID int64) ([]models.UsageRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.UsageRecord
	for _, r := range f.records {
		if r.ServiceID == serviceID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeProducer struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeProducer) Send(ctx context.Context, topic string, key int64, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, topic)
	return nil
}

func (f *fakeProducer) Close() error { return nil }

type fakeRedis struct {
	mu       sync.Mutex
	values   map[string]int64
	setCalls int
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]int64{}}
}

func (f *fakeRedis) GetInt64(ctx context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok {
		return 0, redis.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeRedis) SetInt64(ctx context.Context, key string, value int64, expiration time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	f.values[key] = value
	return nil
}

func (f *fakeRedis) Del(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	return nil
}

func (f *fakeRedis) Close() error { return nil }

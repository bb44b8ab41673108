package models

import "time"

type Invoice struct {
	ID                 int64
	CustomerID         int64
	BillingPeriodStart time.Time
	BillingPeriodEnd   time.Time
	TotalAmount        float64
	Status             string
}

type Payment struct {
	ID            int64
	InvoiceID     int64
	PaymentDate   time.Time
	Amount        float64
	PaymentMethod string
}

type UsageRecord struct {
	ID        int64
	ServiceID int64
	UsageDate time.Time
	Amount    float64
	Unit      string
}

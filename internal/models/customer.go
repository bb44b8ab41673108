package models

import "time"

type Customer struct {
	ID          int64
	UserID      int64
	FullName    string
	PhoneNumber string
	Address     string
}

type Service struct {
	ID          int64
	CustomerID  int64
	ServiceType string
	StartDate   time.Time
	Status      string
}

package model

import "time"

// OrderStatus describes the payment lifecycle of a store order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order describes a checkout order awaiting payment. The order record itself
// is owned by the store; this service only reads it and requests status
// transitions.
type Order struct {
	ID          int64
	Total       int64 // minor currency units
	Email       string
	FirstName   string
	LastName    string
	Telephone   string
	Address1    string
	Address2    string
	Zone        string
	Postcode    string
	City        string
	CountryCode string // ISO-3166 alpha-2
	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HistoryEntry records a single order status change with an operator-facing comment.
type HistoryEntry struct {
	OrderID   int64
	Status    OrderStatus
	Comment   string
	CreatedAt time.Time
}

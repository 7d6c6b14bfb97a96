package model

import "time"

// PaymentMethod is the caller-supplied token selecting which amount bounds
// apply at checkout.
type PaymentMethod string

// PaymentMethodCard selects credit card bounds; every other token falls under
// the general bounds.
const PaymentMethodCard PaymentMethod = "credit_card"

// Payment links a store order to the gateway invoice created for it.
type Payment struct {
	OrderID     int64
	InvoiceID   string
	Environment string
	Fee         *int64
	PaidAt      *time.Time
	CreatedAt   time.Time
}

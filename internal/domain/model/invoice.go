package model

import "time"

// InvoiceStatus is the gateway-reported state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "PENDING"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusSettled InvoiceStatus = "SETTLED"
	InvoiceStatusExpired InvoiceStatus = "EXPIRED"
)

// Paid reports whether the gateway considers the invoice paid for.
// SETTLED is treated the same as PAID.
func (s InvoiceStatus) Paid() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusSettled
}

// InvoiceRequest is the outbound payload for invoice creation.
type InvoiceRequest struct {
	ExternalID          string    `json:"external_id"`
	Amount              int64     `json:"amount"`
	PayerEmail          string    `json:"payer_email"`
	Description         string    `json:"description"`
	ClientType          string    `json:"client_type"`
	SuccessRedirectURL  string    `json:"success_redirect_url"`
	FailureRedirectURL  string    `json:"failure_redirect_url"`
	PlatformCallbackURL string    `json:"platform_callback_url"`
	Customer            *Customer `json:"customer,omitempty"`
}

// Invoice mirrors the gateway's invoice resource. Its fields are authoritative
// only when fetched directly from the gateway, never when taken from an
// inbound notification body.
type Invoice struct {
	ID         string        `json:"id"`
	ExternalID string        `json:"external_id"`
	Status     InvoiceStatus `json:"status"`
	InvoiceURL string        `json:"invoice_url"`
	PaidAt     *time.Time    `json:"paid_at,omitempty"`
}

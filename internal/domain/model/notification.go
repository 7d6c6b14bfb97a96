package model

// Notification is the untrusted webhook body delivered by the gateway.
// Only the invoice id is trusted, and only as a lookup key for a direct
// re-fetch. The fee is non-authoritative accounting metadata.
type Notification struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	FeesPaidAmount int64  `json:"fees_paid_amount"`
}

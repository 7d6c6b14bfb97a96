package repository

import (
	"context"
	"time"

	"github.com/MaGuangChen/xendit-opencart-module/internal/domain/model"
)

// PaymentRepository stores the invoice created for each order.
type PaymentRepository interface {
	Record(ctx context.Context, orderID int64, invoiceID, environment string) error
	// StalePending lists payments for still-PENDING orders whose invoice was
	// created before the cutoff. Used by the sweeper to catch lost webhooks.
	StalePending(ctx context.Context, cutoff time.Time, limit int) ([]model.Payment, error)
}

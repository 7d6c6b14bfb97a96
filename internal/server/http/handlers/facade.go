package handlers

import (
	"context"

	"github.com/MaGuangChen/xendit-opencart-module/internal/domain/model"
)

// PaymentFacade encapsulates the payment operations exposed via HTTP.
type PaymentFacade interface {
	CreateInvoice(ctx context.Context, orderID int64, method model.PaymentMethod) (string, error)
	ProcessNotification(ctx context.Context, body []byte) (string, error)
	HealthCheck(ctx context.Context) error
}

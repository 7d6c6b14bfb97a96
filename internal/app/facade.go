package app

import (
	"context"
	"time"

	"github.com/MaGuangChen/xendit-opencart-module/internal/domain/model"
	"github.com/MaGuangChen/xendit-opencart-module/internal/domain/repository"
	"github.com/MaGuangChen/xendit-opencart-module/internal/usecase"
)

// HealthChecker reports backing store availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// PaymentFacade aggregates the payment operations exposed to transports and
// the sweeper.
type PaymentFacade struct {
	checkout      *usecase.CheckoutUseCase
	notifications *usecase.NotificationUseCase
	payments      repository.PaymentRepository
	health        HealthChecker
}

// NewPaymentFacade constructs PaymentFacade.
func NewPaymentFacade(checkout *usecase.CheckoutUseCase, notifications *usecase.NotificationUseCase, payments repository.PaymentRepository, health HealthChecker) *PaymentFacade {
	return &PaymentFacade{checkout: checkout, notifications: notifications, payments: payments, health: health}
}

// CreateInvoice creates a gateway invoice for the order and returns the payer
// redirect URL.
func (f *PaymentFacade) CreateInvoice(ctx context.Context, orderID int64, method model.PaymentMethod) (string, error) {
	return f.checkout.CreateInvoice(ctx, orderID, method)
}

// ProcessNotification reconciles a raw webhook body against the order store.
func (f *PaymentFacade) ProcessNotification(ctx context.Context, body []byte) (string, error) {
	return f.notifications.Process(ctx, body)
}

// StalePayments lists pending payments older than the cutoff.
func (f *PaymentFacade) StalePayments(ctx context.Context, cutoff time.Time, limit int) ([]model.Payment, error) {
	return f.payments.StalePending(ctx, cutoff, limit)
}

// ReconcilePayment re-runs reconciliation for an invoice without a
// notification body. The fee is unknown on this path and recorded as zero.
func (f *PaymentFacade) ReconcilePayment(ctx context.Context, invoiceID string) (string, error) {
	return f.notifications.Reconcile(ctx, invoiceID, 0)
}

// HealthCheck reports storage availability.
func (f *PaymentFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}

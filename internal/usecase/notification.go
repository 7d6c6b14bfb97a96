package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	domainErrors "github.com/MaGuangChen/xendit-opencart-module/internal/domain/errors"
	"github.com/MaGuangChen/xendit-opencart-module/internal/domain/model"
	"github.com/MaGuangChen/xendit-opencart-module/internal/domain/repository"
)

// ReconcileError is a notification rejection. Reason is a domain sentinel the
// transport layer maps to an HTTP status; Message is the text returned to the
// gateway. No order state is mutated on any rejection.
type ReconcileError struct {
	Reason  error
	Message string
}

func (e *ReconcileError) Error() string { return e.Message }

func (e *ReconcileError) Unwrap() error { return e.Reason }

// NotificationUseCase reconciles gateway payment notifications against store
// orders. The inbound body is untrusted; the invoice id it carries is only
// used to re-fetch authoritative invoice state from the gateway.
type NotificationUseCase struct {
	orders  repository.OrderRepository
	carts   repository.CartRepository
	gateway Gateway
	logger  *slog.Logger
	now     func() time.Time
}

// NewNotificationUseCase constructs NotificationUseCase.
func NewNotificationUseCase(orders repository.OrderRepository, carts repository.CartRepository, gateway Gateway, logger *slog.Logger) *NotificationUseCase {
	return &NotificationUseCase{orders: orders, carts: carts, gateway: gateway, logger: logger, now: time.Now}
}

// Process parses a raw notification body and applies at most one order
// transition. Returns the success text for the gateway on completion.
func (u *NotificationUseCase) Process(ctx context.Context, body []byte) (string, error) {
	var notification model.Notification
	if err := json.Unmarshal(body, &notification); err != nil || notification.ID == "" {
		return "", &ReconcileError{
			Reason:  domainErrors.ErrMalformedNotification,
			Message: "Malformed notification payload.",
		}
	}

	return u.Reconcile(ctx, notification.ID, notification.FeesPaidAmount)
}

// Reconcile re-fetches the invoice and advances or cancels the owning order
// exactly once. The fee is recorded as accounting metadata on the paid path;
// it never drives the decision.
func (u *NotificationUseCase) Reconcile(ctx context.Context, invoiceID string, fee int64) (string, error) {
	invoice, err := u.gateway.GetInvoice(ctx, invoiceID)
	if err != nil {
		return "", &ReconcileError{
			Reason:  domainErrors.ErrGatewayLookup,
			Message: fmt.Sprintf("Could not get xendit invoice. Invoice id: %s. Cancelling order.", invoiceID),
		}
	}

	orderID, err := RecoverOrderID(invoice.ExternalID)
	if err != nil {
		return "", &ReconcileError{
			Reason:  domainErrors.ErrNotFound,
			Message: fmt.Sprintf("Order not found. Order id: %d.", orderID),
		}
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return "", &ReconcileError{
				Reason:  domainErrors.ErrNotFound,
				Message: fmt.Sprintf("Order not found. Order id: %d.", orderID),
			}
		}
		return "", err
	}

	if order.Status != model.OrderStatusPending {
		return "", &ReconcileError{
			Reason:  domainErrors.ErrOrderNotPending,
			Message: fmt.Sprintf("Order status is not pending. Order id: %d.", orderID),
		}
	}

	if invoice.Status.Paid() {
		return u.settle(ctx, order, invoice, fee)
	}
	return u.cancel(ctx, order, invoice)
}

func (u *NotificationUseCase) settle(ctx context.Context, order *model.Order, invoice *model.Invoice, fee int64) (string, error) {
	message := "Payment successful. Invoice ID: " + invoice.ID

	paidAt := u.now()
	if invoice.PaidAt != nil {
		paidAt = *invoice.PaidAt
	}

	if err := u.orders.MarkPaid(ctx, order.ID, paidAt, fee, message); err != nil {
		return "", u.transitionError(order.ID, err)
	}

	u.clearCart(ctx, order)

	u.logger.Info("order paid",
		slog.Int64("order_id", order.ID),
		slog.String("invoice_id", invoice.ID),
		slog.Int64("fee", fee),
	)

	return message, nil
}

func (u *NotificationUseCase) cancel(ctx context.Context, order *model.Order, invoice *model.Invoice) (string, error) {
	// Every non-paid/settled invoice status cancels the order, including
	// states the gateway may consider transient.
	comment := "Invoice not paid or settled. Cancelling order. Invoice ID: " + invoice.ID

	if err := u.orders.MarkCancelled(ctx, order.ID, comment); err != nil {
		return "", u.transitionError(order.ID, err)
	}

	u.clearCart(ctx, order)

	u.logger.Info("order cancelled",
		slog.Int64("order_id", order.ID),
		slog.String("invoice_id", invoice.ID),
		slog.String("invoice_status", string(invoice.Status)),
	)

	return fmt.Sprintf("Successfully cancelled order %d", order.ID), nil
}

// transitionError maps a lost conditional-update race to the same rejection a
// duplicate delivery receives.
func (u *NotificationUseCase) transitionError(orderID int64, err error) error {
	if errors.Is(err, domainErrors.ErrOrderNotPending) {
		return &ReconcileError{
			Reason:  domainErrors.ErrOrderNotPending,
			Message: fmt.Sprintf("Order status is not pending. Order id: %d.", orderID),
		}
	}
	return err
}

func (u *NotificationUseCase) clearCart(ctx context.Context, order *model.Order) {
	if err := u.carts.Clear(ctx, order.Email); err != nil {
		u.logger.Warn("clear cart failed", slog.Int64("order_id", order.ID), slog.String("error", err.Error()))
	}
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MaGuangChen/xendit-opencart-module/internal/domain/model"
	"github.com/MaGuangChen/xendit-opencart-module/internal/domain/repository"
)

// Gateway is the subset of the payment gateway used by the core.
type Gateway interface {
	CreateInvoice(ctx context.Context, req *model.InvoiceRequest) (*model.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*model.Invoice, error)
}

// StoreSettings carries the per-request store configuration used to build
// invoice requests.
type StoreSettings struct {
	StoreName          string
	Environment        string
	SuccessRedirectURL string
	FailureRedirectURL string
	CallbackURL        string
}

// CheckoutUseCase creates gateway invoices for orders awaiting payment.
type CheckoutUseCase struct {
	orders   repository.OrderRepository
	payments repository.PaymentRepository
	gateway  Gateway
	settings StoreSettings
	logger   *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(orders repository.OrderRepository, payments repository.PaymentRepository, gateway Gateway, settings StoreSettings, logger *slog.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{orders: orders, payments: payments, gateway: gateway, settings: settings, logger: logger}
}

// BuildInvoiceRequest assembles the outbound invoice-creation payload for an
// order. Pure construction; the network call is left to the gateway client.
func BuildInvoiceRequest(order *model.Order, settings StoreSettings) *model.InvoiceRequest {
	return &model.InvoiceRequest{
		ExternalID:          BuildExternalID(order.ID),
		Amount:              order.Total,
		PayerEmail:          order.Email,
		Description:         fmt.Sprintf("Payment for order #%d at %s", order.ID, settings.StoreName),
		ClientType:          "INTEGRATION",
		SuccessRedirectURL:  settings.SuccessRedirectURL,
		FailureRedirectURL:  settings.FailureRedirectURL,
		PlatformCallbackURL: settings.CallbackURL,
		Customer:            ExtractCustomer(order),
	}
}

// CreateInvoice validates the order amount, creates a gateway invoice and
// records the pending payment. Returns the payer redirect URL. Validation
// failures are reported before any gateway call or state change.
func (u *CheckoutUseCase) CreateInvoice(ctx context.Context, orderID int64, method model.PaymentMethod) (string, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}

	if err := ValidateAmount(order.Total, method); err != nil {
		return "", err
	}

	invoice, err := u.gateway.CreateInvoice(ctx, BuildInvoiceRequest(order, u.settings))
	if err != nil {
		return "", err
	}

	if err := u.payments.Record(ctx, order.ID, invoice.ID, u.settings.Environment); err != nil {
		return "", err
	}

	comment := fmt.Sprintf("Invoice ID: %s. Redirecting..", invoice.ID)
	if err := u.orders.AppendHistory(ctx, order.ID, model.OrderStatusPending, comment); err != nil {
		return "", err
	}

	u.logger.Info("invoice created",
		slog.Int64("order_id", order.ID),
		slog.String("invoice_id", invoice.ID),
		slog.String("environment", u.settings.Environment),
	)

	return invoice.InvoiceURL, nil
}

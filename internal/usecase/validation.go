package usecase

import (
	"fmt"
	"strconv"
	"strings"

	domainErrors "github.com/MaGuangChen/xendit-opencart-module/internal/domain/errors"
	"github.com/MaGuangChen/xendit-opencart-module/internal/domain/model"
)

// Amount bounds in the store's minor currency unit.
const (
	MinimumAmount     = 10000
	MinimumAmountCard = 5000
	MaximumAmountCard = 200000000
)

// ExternalIDPrefix tags gateway invoices created by this integration. It must
// stay free of digits so the order id can be recovered from an external id by
// stripping non-digit characters.
const ExternalIDPrefix = "opencart-xendit-"

// ValidationError is an amount bound violation with payer-facing text.
type ValidationError struct {
	Reason  error
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Reason }

// ValidateAmount checks the order total against the bounds for the selected
// payment method. Pure function, no side effects.
func ValidateAmount(amount int64, method model.PaymentMethod) error {
	switch {
	case method != model.PaymentMethodCard && amount < MinimumAmount:
		return &ValidationError{
			Reason:  domainErrors.ErrAmountBelowMinimum,
			Message: fmt.Sprintf("The minimum amount for using this payment is IDR %s. Please put more item(s) to reach the minimum amount. Code: 100001", formatAmount(MinimumAmount)),
		}
	case method == model.PaymentMethodCard && amount < MinimumAmountCard:
		return &ValidationError{
			Reason:  domainErrors.ErrAmountBelowMinimum,
			Message: fmt.Sprintf("The minimum amount for using this payment is IDR %s. Please put more item(s) to reach the minimum amount. Code: 100001", formatAmount(MinimumAmountCard)),
		}
	case method == model.PaymentMethodCard && amount > MaximumAmountCard:
		return &ValidationError{
			Reason:  domainErrors.ErrAmountAboveMaximum,
			Message: fmt.Sprintf("The maximum amount for using this payment is IDR %s. Maximum amount exceeded. Code: 100001", formatAmount(MaximumAmountCard)),
		}
	}
	return nil
}

// BuildExternalID derives the gateway external id for an order.
func BuildExternalID(orderID int64) string {
	return ExternalIDPrefix + strconv.FormatInt(orderID, 10)
}

// RecoverOrderID inverts BuildExternalID by stripping every non-digit
// character from the external id.
func RecoverOrderID(externalID string) (int64, error) {
	var digits strings.Builder
	for _, r := range externalID {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, fmt.Errorf("external id %q carries no order id", externalID)
	}
	id, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("recover order id from %q: %w", externalID, err)
	}
	return id, nil
}

// formatAmount renders an amount with thousands separators for payer-facing
// messages.
func formatAmount(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

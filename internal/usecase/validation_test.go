package usecase

import (
	"errors"
	"fmt"
	"testing"

	domainErrors "github.com/MaGuangChen/xendit-opencart-module/internal/domain/errors"
	"github.com/MaGuangChen/xendit-opencart-module/internal/domain/model"
	testhelpers "github.com/MaGuangChen/xendit-opencart-module/internal/test"
)

func TestValidateAmountBounds(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		method model.PaymentMethod
		want   error
	}{
		{name: "general below minimum", amount: 9999, method: "bank_transfer", want: domainErrors.ErrAmountBelowMinimum},
		{name: "general at minimum", amount: 10000, method: "bank_transfer", want: nil},
		{name: "general large", amount: 500000000, method: "bank_transfer", want: nil},
		{name: "card below minimum", amount: 4000, method: model.PaymentMethodCard, want: domainErrors.ErrAmountBelowMinimum},
		{name: "card at minimum", amount: 5000, method: model.PaymentMethodCard, want: nil},
		{name: "card between general and card minimum", amount: 5000, method: "bank_transfer", want: domainErrors.ErrAmountBelowMinimum},
		{name: "card at maximum", amount: 200000000, method: model.PaymentMethodCard, want: nil},
		{name: "card above maximum", amount: 200000001, method: model.PaymentMethodCard, want: domainErrors.ErrAmountAboveMaximum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.amount, tt.method)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("expected amount to be accepted, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if validationErr.Message == "" {
				t.Fatal("expected payer-facing message")
			}
		})
	}
}

func TestValidateAmountMessageCarriesFormattedBound(t *testing.T) {
	err := ValidateAmount(500, "bank_transfer")
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := "The minimum amount for using this payment is IDR 10,000. Please put more item(s) to reach the minimum amount. Code: 100001"
	if validationErr.Message != want {
		t.Fatalf("unexpected message %q", validationErr.Message)
	}
}

func TestExternalIDRoundTrip(t *testing.T) {
	ids := []int64{1, 7, 42, 999, 123456789}
	for i := 0; i < 20; i++ {
		ids = append(ids, testhelpers.RandomOrderID())
	}
	for _, id := range ids {
		external := BuildExternalID(id)
		recovered, err := RecoverOrderID(external)
		if err != nil {
			t.Fatalf("recover %q: %v", external, err)
		}
		if recovered != id {
			t.Fatalf("expected %d, got %d from %q", id, recovered, external)
		}
	}
}

func TestBuildExternalIDUsesPrefix(t *testing.T) {
	if got := BuildExternalID(42); got != "opencart-xendit-42" {
		t.Fatalf("unexpected external id %q", got)
	}
}

func TestExternalIDPrefixCarriesNoDigits(t *testing.T) {
	for _, r := range ExternalIDPrefix {
		if r >= '0' && r <= '9' {
			t.Fatalf("prefix %q contains digit %q, order id recovery would break", ExternalIDPrefix, r)
		}
	}
}

func TestRecoverOrderIDRejectsDigitlessInput(t *testing.T) {
	if _, err := RecoverOrderID("opencart-xendit-"); err == nil {
		t.Fatal("expected error for external id without digits")
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{500, "500"},
		{5000, "5,000"},
		{10000, "10,000"},
		{200000000, "200,000,000"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.amount), func(t *testing.T) {
			if got := formatAmount(tt.amount); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

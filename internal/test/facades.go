package test

import (
	"context"
	"sync"
	"time"

	"github.com/MaGuangChen/xendit-opencart-module/internal/domain/model"
)

// PaymentFacadeStub provides controllable behaviour for payment endpoints.
type PaymentFacadeStub struct {
	CreateInvoiceFn func(context.Context, int64, model.PaymentMethod) (string, error)
	ProcessFn       func(context.Context, []byte) (string, error)
	HealthFn        func(context.Context) error
}

// CreateInvoice delegates to the provided function or returns a default URL.
func (s PaymentFacadeStub) CreateInvoice(ctx context.Context, orderID int64, method model.PaymentMethod) (string, error) {
	if s.CreateInvoiceFn != nil {
		return s.CreateInvoiceFn(ctx, orderID, method)
	}
	return "https://gateway.example/invoice", nil
}

// ProcessNotification delegates to the provided function or reports success.
func (s PaymentFacadeStub) ProcessNotification(ctx context.Context, body []byte) (string, error) {
	if s.ProcessFn != nil {
		return s.ProcessFn(ctx, body)
	}
	return "Payment successful. Invoice ID: inv-1", nil
}

// HealthCheck delegates to the provided function or reports healthy.
func (s PaymentFacadeStub) HealthCheck(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}

// SweeperFacadeStub mimics sweeper interactions with the payment facade.
// Each call to StalePayments consumes the next batch from Payments.
type SweeperFacadeStub struct {
	sync.Mutex

	Payments    [][]model.Payment
	StaleFn     func(context.Context, time.Time, int) ([]model.Payment, error)
	ReconcileFn func(context.Context, string) (string, error)
	Reconciled  []string

	batchIndex int
}

// StalePayments returns the next configured batch.
func (s *SweeperFacadeStub) StalePayments(ctx context.Context, cutoff time.Time, limit int) ([]model.Payment, error) {
	if s.StaleFn != nil {
		return s.StaleFn(ctx, cutoff, limit)
	}
	s.Lock()
	defer s.Unlock()
	if s.batchIndex >= len(s.Payments) {
		return nil, nil
	}
	batch := s.Payments[s.batchIndex]
	s.batchIndex++
	return batch, nil
}

// ReconcilePayment records the invoice id and delegates when configured.
func (s *SweeperFacadeStub) ReconcilePayment(ctx context.Context, invoiceID string) (string, error) {
	s.Lock()
	s.Reconciled = append(s.Reconciled, invoiceID)
	s.Unlock()
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, invoiceID)
	}
	return "Payment successful. Invoice ID: " + invoiceID, nil
}

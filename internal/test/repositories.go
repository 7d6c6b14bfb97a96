package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/MaGuangChen/xendit-opencart-module/internal/domain/errors"
	"github.com/MaGuangChen/xendit-opencart-module/internal/domain/model"
)

// OrderRepositoryStub provides controllable order store behaviour. Unset
// functions fall back to benign defaults; GetFn defaults to not-found.
type OrderRepositoryStub struct {
	GetFn           func(context.Context, int64) (*model.Order, error)
	MarkPaidFn      func(context.Context, int64, time.Time, int64, string) error
	MarkCancelledFn func(context.Context, int64, string) error
	AppendFn        func(context.Context, int64, model.OrderStatus, string) error
	HistoryFn       func(context.Context, int64) ([]model.HistoryEntry, error)
}

func (s OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

func (s OrderRepositoryStub) MarkPaid(ctx context.Context, orderID int64, paidAt time.Time, fee int64, comment string) error {
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, orderID, paidAt, fee, comment)
	}
	return nil
}

func (s OrderRepositoryStub) MarkCancelled(ctx context.Context, orderID int64, comment string) error {
	if s.MarkCancelledFn != nil {
		return s.MarkCancelledFn(ctx, orderID, comment)
	}
	return nil
}

func (s OrderRepositoryStub) AppendHistory(ctx context.Context, orderID int64, status model.OrderStatus, comment string) error {
	if s.AppendFn != nil {
		return s.AppendFn(ctx, orderID, status, comment)
	}
	return nil
}

func (s OrderRepositoryStub) History(ctx context.Context, orderID int64) ([]model.HistoryEntry, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, orderID)
	}
	return nil, nil
}

// PaymentRepositoryStub provides controllable payment record behaviour.
type PaymentRepositoryStub struct {
	RecordFn func(context.Context, int64, string, string) error
	StaleFn  func(context.Context, time.Time, int) ([]model.Payment, error)
}

func (s PaymentRepositoryStub) Record(ctx context.Context, orderID int64, invoiceID, environment string) error {
	if s.RecordFn != nil {
		return s.RecordFn(ctx, orderID, invoiceID, environment)
	}
	return nil
}

func (s PaymentRepositoryStub) StalePending(ctx context.Context, cutoff time.Time, limit int) ([]model.Payment, error) {
	if s.StaleFn != nil {
		return s.StaleFn(ctx, cutoff, limit)
	}
	return nil, nil
}

// CartRepositoryStub records cart clears.
type CartRepositoryStub struct {
	ClearFn func(context.Context, string) error

	mu      sync.Mutex
	cleared []string
}

func (s *CartRepositoryStub) Clear(ctx context.Context, email string) error {
	if s.ClearFn != nil {
		return s.ClearFn(ctx, email)
	}
	s.mu.Lock()
	s.cleared = append(s.cleared, email)
	s.mu.Unlock()
	return nil
}

// Cleared returns the emails whose carts were cleared.
func (s *CartRepositoryStub) Cleared() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.cleared...)
}

// GatewayStub provides controllable gateway behaviour.
type GatewayStub struct {
	CreateFn func(context.Context, *model.InvoiceRequest) (*model.Invoice, error)
	GetFn    func(context.Context, string) (*model.Invoice, error)
}

func (s GatewayStub) CreateInvoice(ctx context.Context, req *model.InvoiceRequest) (*model.Invoice, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	return &model.Invoice{ID: "inv-1", ExternalID: req.ExternalID, Status: model.InvoiceStatusPending, InvoiceURL: "https://gateway.example/inv-1"}, nil
}

func (s GatewayStub) GetInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Invoice{ID: id, Status: model.InvoiceStatusPending}, nil
}

package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	domainErrors "github.com/MaGuangChen/xendit-opencart-module/internal/domain/errors"
	"github.com/MaGuangChen/xendit-opencart-module/internal/domain/model"
	testhelpers "github.com/MaGuangChen/xendit-opencart-module/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func waitForReconciled(t *testing.T, facade *testhelpers.SweeperFacadeStub, want int) []string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		facade.Lock()
		got := len(facade.Reconciled)
		facade.Unlock()
		if got >= want {
			facade.Lock()
			defer facade.Unlock()
			return append([]string(nil), facade.Reconciled...)
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d reconciled payments", want)
	return nil
}

func TestNewSweeperNormalizesPoolSettings(t *testing.T) {
	s := NewSweeper(&testhelpers.SweeperFacadeStub{}, time.Minute, time.Hour, 0, -1, testLogger())
	if s.workers != 1 {
		t.Fatalf("expected one worker, got %d", s.workers)
	}
	if s.batch != 1 {
		t.Fatalf("expected batch of one, got %d", s.batch)
	}
}

func TestSweeperReconcilesStalePayments(t *testing.T) {
	facade := &testhelpers.SweeperFacadeStub{
		Payments: [][]model.Payment{
			{
				{OrderID: 42, InvoiceID: "inv-42"},
				{OrderID: 43, InvoiceID: "inv-43"},
			},
		},
	}

	s := NewSweeper(facade, 10*time.Millisecond, time.Hour, 8, 2, testLogger())
	s.Start(context.Background())
	defer s.Stop()

	reconciled := waitForReconciled(t, facade, 2)
	seen := map[string]bool{}
	for _, id := range reconciled {
		seen[id] = true
	}
	if !seen["inv-42"] || !seen["inv-43"] {
		t.Fatalf("expected both stale payments reconciled, got %v", reconciled)
	}
}

func TestSweeperUsesCutoffAndBatchLimit(t *testing.T) {
	type call struct {
		cutoff time.Time
		limit  int
	}
	calls := make(chan call, 1)
	facade := &testhelpers.SweeperFacadeStub{
		StaleFn: func(_ context.Context, cutoff time.Time, limit int) ([]model.Payment, error) {
			select {
			case calls <- call{cutoff: cutoff, limit: limit}:
			default:
			}
			return nil, nil
		},
	}

	maxAge := time.Hour
	s := NewSweeper(facade, 10*time.Millisecond, maxAge, 16, 1, testLogger())
	s.Start(context.Background())
	defer s.Stop()

	select {
	case c := <-calls:
		if c.limit != 16 {
			t.Fatalf("unexpected batch limit %d", c.limit)
		}
		age := time.Since(c.cutoff)
		if age < maxAge-time.Second || age > maxAge+time.Second {
			t.Fatalf("unexpected cutoff age %v", age)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a sweep")
	}
}

func TestSweeperIgnoresAlreadySettledOrders(t *testing.T) {
	facade := &testhelpers.SweeperFacadeStub{
		Payments: [][]model.Payment{
			{{OrderID: 42, InvoiceID: "inv-42"}},
		},
		ReconcileFn: func(_ context.Context, invoiceID string) (string, error) {
			return "", &stubReconcileError{invoiceID: invoiceID}
		},
	}

	s := NewSweeper(facade, 10*time.Millisecond, time.Hour, 4, 1, testLogger())
	s.Start(context.Background())

	waitForReconciled(t, facade, 1)
	s.Stop()
}

type stubReconcileError struct {
	invoiceID string
}

func (e *stubReconcileError) Error() string { return "order not pending: " + e.invoiceID }
func (e *stubReconcileError) Unwrap() error { return domainErrors.ErrOrderNotPending }

func TestSweeperStopsCleanly(t *testing.T) {
	facade := &testhelpers.SweeperFacadeStub{
		StaleFn: func(context.Context, time.Time, int) ([]model.Payment, error) {
			return nil, errors.New("storage offline")
		},
	}

	s := NewSweeper(facade, 5*time.Millisecond, time.Hour, 4, 2, testLogger())
	s.Start(context.Background())
	time.Sleep(25 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}

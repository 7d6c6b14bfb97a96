package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/MaGuangChen/xendit-opencart-module/internal/domain/errors"
	"github.com/MaGuangChen/xendit-opencart-module/internal/domain/model"
)

// PaymentFacade exposes the subset of application functionality required by the sweeper.
type PaymentFacade interface {
	StalePayments(ctx context.Context, cutoff time.Time, limit int) ([]model.Payment, error)
	ReconcilePayment(ctx context.Context, invoiceID string) (string, error)
}

// Sweeper periodically reconciles stale pending payments whose webhook never
// arrived. Each payment goes through the same reconciliation path as a
// notification delivery, so the conditional transition keeps sweeps and
// webhooks from double-processing each other.
type Sweeper struct {
	facade   PaymentFacade
	interval time.Duration
	maxAge   time.Duration
	batch    int
	workers  int
	logger   *slog.Logger

	jobs   chan model.Payment
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSweeper constructs the pending payment sweeper pool.
func NewSweeper(facade PaymentFacade, interval, maxAge time.Duration, batch, workers int, logger *slog.Logger) *Sweeper {
	if workers <= 0 {
		workers = 1
	}
	if batch <= 0 {
		batch = 1
	}
	return &Sweeper{
		facade:   facade,
		interval: interval,
		maxAge:   maxAge,
		batch:    batch,
		workers:  workers,
		logger:   logger,
		jobs:     make(chan model.Payment, batch*workers),
	}
}

// Start launches background sweeping.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Sweeper) dispatch(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.jobs)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fetchAndDispatch(ctx)
		}
	}
}

func (s *Sweeper) fetchAndDispatch(ctx context.Context) {
	cutoff := time.Now().Add(-s.maxAge)
	payments, err := s.facade.StalePayments(ctx, cutoff, s.batch)
	if err != nil {
		s.logger.Error("fetch stale payments failed", slog.String("error", err.Error()))
		return
	}
	for _, payment := range payments {
		select {
		case <-ctx.Done():
			return
		case s.jobs <- payment:
		}
	}
}

func (s *Sweeper) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case payment, ok := <-s.jobs:
			if !ok {
				return
			}
			s.handlePayment(ctx, payment)
		}
	}
}

func (s *Sweeper) handlePayment(ctx context.Context, payment model.Payment) {
	message, err := s.facade.ReconcilePayment(ctx, payment.InvoiceID)
	if err != nil {
		// A webhook beat the sweep to it; nothing left to do.
		if errors.Is(err, domainErrors.ErrOrderNotPending) {
			return
		}
		s.logger.Error("sweep reconcile failed",
			slog.Int64("order_id", payment.OrderID),
			slog.String("invoice_id", payment.InvoiceID),
			slog.String("error", err.Error()),
		)
		return
	}

	s.logger.Info("stale payment reconciled",
		slog.Int64("order_id", payment.OrderID),
		slog.String("invoice_id", payment.InvoiceID),
		slog.String("result", message),
	)
}

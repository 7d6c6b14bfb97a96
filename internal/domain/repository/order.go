package repository

import (
	"context"
	"time"

	"github.com/MaGuangChen/xendit-opencart-module/internal/domain/model"
)

// OrderRepository is the port to the store's order records. Status
// transitions are conditional: MarkPaid and MarkCancelled only apply when the
// order is currently PENDING and return ErrOrderNotPending otherwise, making
// duplicate notification deliveries safe without external locking.
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	MarkPaid(ctx context.Context, orderID int64, paidAt time.Time, fee int64, comment string) error
	MarkCancelled(ctx context.Context, orderID int64, comment string) error
	AppendHistory(ctx context.Context, orderID int64, status model.OrderStatus, comment string) error
	History(ctx context.Context, orderID int64) ([]model.HistoryEntry, error)
}

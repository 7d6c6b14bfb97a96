package repository

import "context"

// CartRepository is the port to the store's active cart storage. Only the
// clear-on-settlement operation is needed here; cart content management
// belongs to the store.
type CartRepository interface {
	Clear(ctx context.Context, email string) error
}

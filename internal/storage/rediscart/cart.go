package rediscart

import (
	"context"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cart:"

// deleter is the subset of redis commands the cart store needs.
type deleter interface {
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Store clears active carts held in Redis. Cart contents are owned by the
// storefront; this service only removes a cart once its order reaches a
// terminal payment state.
type Store struct {
	client deleter
	logger *slog.Logger
}

// New creates a cart store connected to the given Redis address.
func New(addr string, logger *slog.Logger) *Store {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &Store{client: client, logger: logger}
}

// Clear removes the active cart for a customer.
func (s *Store) Clear(ctx context.Context, email string) error {
	if email == "" {
		return nil
	}
	key := keyPrefix + strings.ToLower(email)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		s.logger.Error("cart delete failed", slog.String("key", key), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// Close releases the underlying Redis connection when owned.
func (s *Store) Close() error {
	if c, ok := s.client.(*redis.Client); ok {
		return c.Close()
	}
	return nil
}

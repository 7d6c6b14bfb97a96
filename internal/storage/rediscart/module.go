package rediscart

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/MaGuangChen/xendit-opencart-module/internal/config"
	"github.com/MaGuangChen/xendit-opencart-module/internal/domain/repository"
)

// Module wires the Redis cart store.
var Module = fx.Options(
	fx.Provide(newStore),
	fx.Provide(func(s *Store) repository.CartRepository { return s }),
	fx.Invoke(registerLifecycle),
)

func newStore(cfg *config.Config, logger *slog.Logger) *Store {
	return New(cfg.RedisAddress, logger)
}

func registerLifecycle(lc fx.Lifecycle, store *Store) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})
}

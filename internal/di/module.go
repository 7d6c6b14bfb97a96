package di

import (
	"go.uber.org/fx"

	"github.com/MaGuangChen/xendit-opencart-module/internal/adapter/xendit"
	"github.com/MaGuangChen/xendit-opencart-module/internal/app"
	"github.com/MaGuangChen/xendit-opencart-module/internal/config"
	"github.com/MaGuangChen/xendit-opencart-module/internal/logger"
	"github.com/MaGuangChen/xendit-opencart-module/internal/metrics"
	"github.com/MaGuangChen/xendit-opencart-module/internal/pkg/callback"
	"github.com/MaGuangChen/xendit-opencart-module/internal/server/http/handlers"
	"github.com/MaGuangChen/xendit-opencart-module/internal/server/http/router"
	"github.com/MaGuangChen/xendit-opencart-module/internal/storage/postgres"
	"github.com/MaGuangChen/xendit-opencart-module/internal/storage/rediscart"
	"github.com/MaGuangChen/xendit-opencart-module/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		callback.Module,
		postgres.Module,
		rediscart.Module,
		xendit.Module,
		usecase.Module,
		fx.Provide(func(client xendit.Client) usecase.Gateway { return client }),
		fx.Provide(func(s *postgres.Storage) app.HealthChecker { return s }),
		fx.Provide(func(f *app.PaymentFacade) handlers.PaymentFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}

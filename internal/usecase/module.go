package usecase

import (
	"go.uber.org/fx"

	"github.com/MaGuangChen/xendit-opencart-module/internal/config"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(newStoreSettings),
	fx.Provide(
		NewCheckoutUseCase,
		NewNotificationUseCase,
	),
)

func newStoreSettings(cfg *config.Config) StoreSettings {
	return StoreSettings{
		StoreName:          cfg.StoreName,
		Environment:        cfg.Environment,
		SuccessRedirectURL: cfg.SuccessRedirectURL,
		FailureRedirectURL: cfg.FailureRedirectURL,
		CallbackURL:        cfg.CallbackURL,
	}
}

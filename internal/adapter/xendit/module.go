package xendit

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/MaGuangChen/xendit-opencart-module/internal/config"
)

// Module exposes gateway client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.GatewayAddress, p.Config, p.Config.GatewayRPS, p.Logger)
}

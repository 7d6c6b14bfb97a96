package callback

import (
	"go.uber.org/fx"

	"github.com/MaGuangChen/xendit-opencart-module/internal/config"
)

// Module wires the callback token verifier.
var Module = fx.Provide(func(cfg *config.Config) *Verifier {
	return New(cfg.CallbackToken)
})

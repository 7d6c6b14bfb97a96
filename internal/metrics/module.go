package metrics

import "go.uber.org/fx"

// Module wires the Prometheus registry and collectors.
var Module = fx.Provide(New)

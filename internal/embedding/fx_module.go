package embedding

import (
	"go.uber.org/fx"

	"github.com/melodia-app/melodia/internal/metrics"
)

// FXModule wires the embedding system into Fx.
//
// It provides:
//   - *Config  (NewConfig)
//   - *Client  (NewClient)
//
// The client holds no connections, so no lifecycle hook is needed.
var FXModule = fx.Module(
	"embedding",

	fx.Provide(
		NewConfig, // -> *Config
		NewClient, // -> *Client
	),

	fx.Invoke(func(c *Client, m *metrics.Metrics) {
		c.SetFallbackObserver(m)
	}),
)

package tracer

import (
	"context"

	"go.uber.org/fx"
)

// FXModule wires the tracer into Fx.
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewConfig,
		NewClient,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// RegisterTracerLifecycle flushes and shuts down the tracer provider when the
// application stops.
func RegisterTracerLifecycle(lc fx.Lifecycle, t *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			t.logger.Info("shutting down tracer", nil, nil)
			if t.tracer == nil {
				t.logger.Warn("tracer was nil during shutdown", nil, nil)
				return nil
			}
			return t.tracer.Shutdown(ctx)
		},
	})
}

package vectorindex

import (
	"context"

	"go.uber.org/fx"
)

// FXModule wires the vector index gateway into Fx.
//
// Collection setup runs on startup so indexing and search never race an
// absent collection.
var FXModule = fx.Module("vectorindex",
	fx.Provide(
		NewConfig,
		NewClient,
	),
	fx.Invoke(RegisterVectorIndexLifecycle),
)

// RegisterVectorIndexLifecycle ensures the collection exists on start and
// releases the client on shutdown.
func RegisterVectorIndexLifecycle(lc fx.Lifecycle, client *Client) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.EnsureCollection(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
}

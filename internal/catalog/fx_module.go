package catalog

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides the catalog store and runs schema migration on startup.
var FXModule = fx.Module("catalog",
	fx.Provide(
		NewStore,
	),
	fx.Invoke(RegisterCatalogLifecycle),
)

// RegisterCatalogLifecycle migrates the catalog schema when the application starts.
func RegisterCatalogLifecycle(lc fx.Lifecycle, store *Store) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return store.Migrate(ctx)
		},
	})
}

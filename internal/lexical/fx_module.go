package lexical

import (
	"context"

	"go.uber.org/fx"

	"github.com/melodia-app/melodia/internal/catalog"
)

// FXModule wires the lexical index into Fx. The index is filled from the
// catalog on startup so keyword fallback works from the first request.
var FXModule = fx.Module("lexical",
	fx.Provide(
		NewIndex,
	),
	fx.Invoke(RegisterLexicalLifecycle),
)

// RegisterLexicalLifecycle bootstraps the index on start and closes it on
// shutdown.
func RegisterLexicalLifecycle(lc fx.Lifecycle, index *Index, store *catalog.Store) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			songs, err := store.AllSongs(ctx)
			if err != nil {
				return err
			}
			return index.Bootstrap(ctx, songs)
		},
		OnStop: func(ctx context.Context) error {
			return index.Close()
		},
	})
}

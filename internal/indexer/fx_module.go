package indexer

import (
	"context"

	"go.uber.org/fx"

	"github.com/melodia-app/melodia/internal/catalog"
	"github.com/melodia-app/melodia/internal/embedding"
	"github.com/melodia-app/melodia/internal/lexical"
	"github.com/melodia-app/melodia/internal/textgen"
	"github.com/melodia-app/melodia/internal/vectorindex"
)

// FXModule wires the async indexing pipeline into Fx.
var FXModule = fx.Module("indexer",
	fx.Provide(
		NewConfig,
		func(s *catalog.Store) SongSource { return s },
		func(g *textgen.Generator) Describer { return g },
		func(c *embedding.Client) Embedder { return c },
		func(c *vectorindex.Client) VectorWriter { return c },
		func(i *lexical.Index) LexicalWriter { return i },
		NewIndexer,
	),
	fx.Invoke(RegisterIndexerLifecycle),
)

// RegisterIndexerLifecycle starts the background worker with the application
// and drains it on shutdown.
func RegisterIndexerLifecycle(lc fx.Lifecycle, i *Indexer) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			i.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			i.Stop()
			return nil
		},
	})
}

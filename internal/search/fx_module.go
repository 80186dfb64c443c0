package search

import (
	"go.uber.org/fx"

	"github.com/melodia-app/melodia/internal/catalog"
	"github.com/melodia-app/melodia/internal/embedding"
	"github.com/melodia-app/melodia/internal/lexical"
	"github.com/melodia-app/melodia/internal/vectorindex"
)

// FXModule wires the search orchestrator into Fx.
var FXModule = fx.Module("search",
	fx.Provide(
		NewConfig,
		func(c *embedding.Client) Embedder { return c },
		func(c *vectorindex.Client) VectorSearcher { return c },
		func(i *lexical.Index) LexicalSearcher { return i },
		func(s *catalog.Store) SongHydrator { return s },
		NewOrchestrator,
	),
)

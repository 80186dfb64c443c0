// Command melodia runs the recommendation and semantic search pipeline: it
// tracks play events into user preferences, maintains cached recommendations,
// and serves natural-language song search backed by a vector index with a
// lexical fallback.
package main

import (
	"go.uber.org/fx"

	"github.com/melodia-app/melodia/internal/catalog"
	"github.com/melodia-app/melodia/internal/embedding"
	"github.com/melodia-app/melodia/internal/indexer"
	"github.com/melodia-app/melodia/internal/lexical"
	"github.com/melodia-app/melodia/internal/logger"
	"github.com/melodia-app/melodia/internal/metrics"
	"github.com/melodia-app/melodia/internal/postgres"
	"github.com/melodia-app/melodia/internal/preference"
	"github.com/melodia-app/melodia/internal/recommender"
	"github.com/melodia-app/melodia/internal/search"
	"github.com/melodia-app/melodia/internal/textgen"
	"github.com/melodia-app/melodia/internal/tracer"
	"github.com/melodia-app/melodia/internal/vectorindex"
)

func main() {
	app := fx.New(
		logger.FXModule,
		metrics.FXModule,
		tracer.FXModule,
		postgres.FXModule,
		catalog.FXModule,
		preference.FXModule,
		recommender.FXModule,
		embedding.FXModule,
		vectorindex.FXModule,
		lexical.FXModule,
		textgen.FXModule,
		search.FXModule,
		indexer.FXModule,
	)
	app.Run()
}

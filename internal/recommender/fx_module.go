package recommender

import (
	"context"

	"go.uber.org/fx"

	"github.com/melodia-app/melodia/internal/catalog"
	"github.com/melodia-app/melodia/internal/preference"
)

// FXModule wires the recommendation cache store and generator.
var FXModule = fx.Module("recommender",
	fx.Provide(
		NewConfig,
		NewCacheStore,
		func(s *CacheStore) Cache { return s },
		func(s *preference.Store) PreferenceSource { return s },
		func(s *catalog.Store) CandidateSource { return s },
		NewGenerator,
		func(g *Generator) preference.Rebuilder { return g },
	),
	fx.Invoke(RegisterRecommenderLifecycle),
)

// RegisterRecommenderLifecycle migrates the cache schema on startup.
func RegisterRecommenderLifecycle(lc fx.Lifecycle, store *CacheStore) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return store.Migrate(ctx)
		},
	})
}

package preference

import (
	"context"

	"go.uber.org/fx"

	"github.com/melodia-app/melodia/internal/catalog"
	"github.com/melodia-app/melodia/internal/metrics"
)

// FXModule wires the preference store and play tracker.
//
// The Rebuilder dependency is satisfied by the recommender module.
var FXModule = fx.Module("preference",
	fx.Provide(
		NewTrackerConfig,
		NewStore,
		func(s *Store) PreferenceWriter { return s },
		func(s *catalog.Store) SongResolver { return s },
		NewTracker,
	),
	fx.Invoke(RegisterPreferenceLifecycle),
	fx.Invoke(func(t *Tracker, m *metrics.Metrics) {
		t.SetPlayObserver(m)
	}),
)

// RegisterPreferenceLifecycle migrates the preference schema on startup.
func RegisterPreferenceLifecycle(lc fx.Lifecycle, store *Store) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return store.Migrate(ctx)
		},
	})
}

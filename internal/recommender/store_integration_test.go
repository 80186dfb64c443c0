package recommender

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/melodia-app/melodia/internal/postgres"
)

// setupPostgresContainer starts a disposable Postgres for store tests.
func setupPostgresContainer(ctx context.Context) (testcontainers.Container, postgres.Config, error) {
	req := testcontainers.ContainerRequest{
		Image: "postgres:15",
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, postgres.Config{}, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, postgres.Config{}, err
	}
	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, postgres.Config{}, err
	}

	cfg := postgres.Config{
		Connection: postgres.Connection{
			Host:     host,
			Port:     mappedPort.Port(),
			User:     "testuser",
			Password: "testpass",
			DbName:   "testdb",
			SSLMode:  "disable",
		},
	}
	return container, cfg, nil
}

func TestCacheStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	container, cfg, err := setupPostgresContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	pg, err := postgres.NewPostgres(cfg)
	require.NoError(t, err)
	defer func() { _ = pg.GracefulShutdown() }()

	store := NewCacheStore(pg)
	require.NoError(t, store.Migrate(ctx))

	t.Run("replace swaps the whole per-user set", func(t *testing.T) {
		userID := uuid.NewString()
		oldSong, newSong := uuid.NewString(), uuid.NewString()
		computedAt := time.Now().UTC()

		require.NoError(t, store.ReplaceForUser(ctx, userID, []Recommendation{
			{UserID: userID, SongID: oldSong, Score: 0.9, Reason: "genre: jazz", ComputedAt: computedAt},
		}))
		require.NoError(t, store.ReplaceForUser(ctx, userID, []Recommendation{
			{UserID: userID, SongID: newSong, Score: 0.4, Reason: "genre: house", ComputedAt: computedAt.Add(time.Minute)},
		}))

		rows, err := store.ListForUser(ctx, userID, 10)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, newSong, rows[0].SongID)
	})

	t.Run("replace with empty set clears the cache", func(t *testing.T) {
		userID := uuid.NewString()
		require.NoError(t, store.ReplaceForUser(ctx, userID, []Recommendation{
			{UserID: userID, SongID: uuid.NewString(), Score: 0.5, ComputedAt: time.Now().UTC()},
		}))
		require.NoError(t, store.ReplaceForUser(ctx, userID, nil))

		rows, err := store.ListForUser(ctx, userID, 10)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("list orders by score then rebuild recency", func(t *testing.T) {
		userID := uuid.NewString()
		high, tiedNewer, tiedOlder := uuid.NewString(), uuid.NewString(), uuid.NewString()
		older := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
		newer := older.Add(time.Hour)

		// Insert directly so rows with distinct computed_at coexist.
		require.NoError(t, pg.DB().WithContext(ctx).Create(&[]Recommendation{
			{UserID: userID, SongID: tiedOlder, Score: 0.5, ComputedAt: older},
			{UserID: userID, SongID: high, Score: 0.8, ComputedAt: older},
			{UserID: userID, SongID: tiedNewer, Score: 0.5, ComputedAt: newer},
		}).Error)

		rows, err := store.ListForUser(ctx, userID, 10)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, high, rows[0].SongID, "highest score first")
		assert.Equal(t, tiedNewer, rows[1].SongID, "score tie breaks by recency")
		assert.Equal(t, tiedOlder, rows[2].SongID)
	})

	t.Run("list honors the limit", func(t *testing.T) {
		userID := uuid.NewString()
		entries := make([]Recommendation, 5)
		for i := range entries {
			entries[i] = Recommendation{
				UserID:     userID,
				SongID:     uuid.NewString(),
				Score:      float64(i+1) / 10,
				ComputedAt: time.Now().UTC(),
			}
		}
		require.NoError(t, store.ReplaceForUser(ctx, userID, entries))

		rows, err := store.ListForUser(ctx, userID, 2)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.InDelta(t, 0.5, rows[0].Score, 1e-9)
		assert.InDelta(t, 0.4, rows[1].Score, 1e-9)
	})
}

package catalog

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

func TestCatalogStoreIntegration(t *testing.T) {
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

	store := NewStore(pg)
	require.NoError(t, store.Migrate(ctx))

	artist := Artist{ID: uuid.NewString(), Name: "The Night Owls"}
	require.NoError(t, pg.DB().WithContext(ctx).Create(&artist).Error)

	songs := make([]Song, 3)
	for i := range songs {
		songs[i] = Song{
			ID:       uuid.NewString(),
			Title:    fmt.Sprintf("Track %d", i+1),
			ArtistID: artist.ID,
			Genre:    "synthwave",
		}
		require.NoError(t, pg.DB().WithContext(ctx).Create(&songs[i]).Error)
	}

	t.Run("song by id preloads artist", func(t *testing.T) {
		song, err := store.SongByID(ctx, songs[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "The Night Owls", song.Artist.Name)
	})

	t.Run("unknown song returns ErrNotFound", func(t *testing.T) {
		_, err := store.SongByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("songs by artist excludes played set", func(t *testing.T) {
		result, err := store.SongsByArtist(ctx, artist.ID, []string{songs[0].ID}, 10)
		require.NoError(t, err)
		require.Len(t, result, 2)
		for _, song := range result {
			assert.NotEqual(t, songs[0].ID, song.ID)
		}
	})

	t.Run("play history round trip", func(t *testing.T) {
		userID := uuid.NewString()
		require.NoError(t, store.AppendPlay(ctx, userID, songs[0].ID, time.Now().UTC()))
		require.NoError(t, store.AppendPlay(ctx, userID, songs[0].ID, time.Now().UTC()))
		require.NoError(t, store.AppendPlay(ctx, userID, songs[1].ID, time.Now().UTC()))

		played, err := store.PlayedSongIDs(ctx, userID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{songs[0].ID, songs[1].ID}, played)
	})

	t.Run("popular songs ranked by play count", func(t *testing.T) {
		popular, err := store.PopularSongs(ctx, 10)
		require.NoError(t, err)
		require.NotEmpty(t, popular)
		assert.Equal(t, songs[0].ID, popular[0].ID, "most played song ranks first")
	})

	t.Run("save description persists", func(t *testing.T) {
		require.NoError(t, store.SaveDescription(ctx, songs[0].ID, "retro pulse"))

		song, err := store.SongByID(ctx, songs[0].ID)
		require.NoError(t, err)
		assert.Equal(t, "retro pulse", song.Description)
	})

	t.Run("save description for unknown song fails", func(t *testing.T) {
		err := store.SaveDescription(ctx, uuid.NewString(), "whatever")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

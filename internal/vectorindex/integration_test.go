package vectorindex

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/melodia-app/melodia/internal/logger"
)

// qdrantContainer holds a running Qdrant instance for integration tests.
type qdrantContainer struct {
	testcontainers.Container
	Host string
	Port int
}

func setupQdrantContainer(ctx context.Context) (*qdrantContainer, error) {
	req := testcontainers.ContainerRequest{
		Image: "qdrant/qdrant:v1.11.0",
		Env: map[string]string{
			"QDRANT__SERVICE__GRPC_PORT": "6334",
		},
		ExposedPorts: []string{"6334/tcp"},
		WaitingFor:   wait.ForListeningPort("6334/tcp").WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start qdrant container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get host: %w", err)
	}

	mappedPort, err := container.MappedPort(ctx, nat.Port("6334"))
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	if err := waitForQdrantReady(host, mappedPort.Port(), 30*time.Second); err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("qdrant container not ready: %w", err)
	}

	return &qdrantContainer{
		Container: container,
		Host:      host,
		Port:      mappedPort.Int(),
	}, nil
}

// waitForQdrantReady polls the gRPC port until it accepts connections.
func waitForQdrantReady(host, port string, timeout time.Duration) error {
	startTime := time.Now()
	for {
		if time.Since(startTime) > timeout {
			return fmt.Errorf("timed out waiting for qdrant after %s", timeout)
		}

		conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, port), 2*time.Second)
		if err == nil {
			_ = conn.Close()
			time.Sleep(2 * time.Second)
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func TestVectorIndexIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := setupQdrantContainer(ctx)
	require.NoError(t, err)
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	}()

	t.Logf("Using Qdrant on %s:%d", container.Host, container.Port)

	log := logger.NewLoggerClient(logger.Config{Level: "error", ServiceName: "test"})
	cfg := DefaultConfig().WithCollection("test_songs").WithTimeout(10 * time.Second)
	cfg.Endpoint = container.Host
	cfg.Port = container.Port
	cfg.VectorSize = 4

	client, err := NewClient(cfg, log)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	require.NoError(t, client.EnsureCollection(ctx))
	// EnsureCollection is idempotent.
	require.NoError(t, client.EnsureCollection(ctx))

	props := SongProperties{
		SongID:     "11111111-1111-1111-1111-111111111111",
		Title:      "Midnight Drive",
		ArtistName: "The Night Owls",
		Genre:      "synthwave",
	}

	t.Run("upsert twice keeps one record per song", func(t *testing.T) {
		require.NoError(t, client.UpsertSong(ctx, props, []float32{1, 0, 0, 0}))

		// Second upsert with a new vector must update in place.
		props.Description = "retro pulse"
		require.NoError(t, client.UpsertSong(ctx, props, []float32{0, 1, 0, 0}))

		hits, err := client.QueryNearest(ctx, []float32{0, 1, 0, 0}, 10)
		require.NoError(t, err)

		count := 0
		for _, hit := range hits {
			if hit.SongID == props.SongID {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("nearest neighbours come back in similarity order", func(t *testing.T) {
		other := SongProperties{
			SongID:     "22222222-2222-2222-2222-222222222222",
			Title:      "Morning Coffee",
			ArtistName: "Daybreak",
			Genre:      "folk",
		}
		require.NoError(t, client.UpsertSong(ctx, other, []float32{0, 0, 1, 0}))

		hits, err := client.QueryNearest(ctx, []float32{0, 1, 0, 0}, 2)
		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, props.SongID, hits[0].SongID)
		assert.GreaterOrEqual(t, hits[0].Score, hits[1].Score)
	})
}

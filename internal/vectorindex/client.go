// Package vectorindex wraps the official Qdrant Go client with the
// application-level operations the search and indexing pipelines need:
// idempotent collection setup, songID-deduplicated upserts, and cosine
// nearest-neighbor queries.
//
// Vectors are always supplied by the embedding client; the index never
// computes them itself.
package vectorindex

import (
	"context"
	"fmt"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/melodia-app/melodia/internal/logger"
)

// Client wraps the official Qdrant Go client and provides higher-level
// operations for working with song vectors.
type Client struct {
	api *qdrant.Client
	cfg *Config
	log *logger.Logger
}

// NewClient constructs a new Client and validates connectivity via a health
// check. The Qdrant Go SDK creates lightweight gRPC connections, so this
// method performs an immediate health check to fail fast if the service is
// unreachable.
func NewClient(cfg *Config, log *logger.Logger) (*Client, error) {
	port := cfg.Port
	if port == 0 {
		port = 6334
	}

	api, err := qdrant.NewClient(&qdrant.Config{
		Host:                   cfg.Endpoint,
		Port:                   port,
		APIKey:                 cfg.ApiKey,
		SkipCompatibilityCheck: !cfg.CheckCompatibility,
	})
	if err != nil {
		return nil, fmt.Errorf("vectorindex: failed to initialize client: %w", err)
	}

	c := &Client{api: api, cfg: cfg, log: log}

	if err := c.healthCheck(); err != nil {
		return nil, fmt.Errorf("vectorindex: health check failed: %w", err)
	}

	log.Info("connected to qdrant", nil, map[string]interface{}{
		"endpoint":   cfg.Endpoint,
		"port":       port,
		"collection": cfg.Collection,
	})
	return c, nil
}

// healthCheck verifies the availability of the Qdrant service. Lightweight
// and fast, suitable for startup and readiness probes.
func (c *Client) healthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := c.api.HealthCheck(ctx); err != nil {
		return err
	}
	return nil
}

// Close gracefully shuts down the Qdrant client. The official SDK doesn't
// maintain persistent connections, so this exists for lifecycle symmetry.
func (c *Client) Close() error {
	return nil
}

// opContext bounds an index operation by the configured timeout.
func (c *Client) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := c.cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

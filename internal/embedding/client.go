package embedding

import (
	"context"

	"github.com/melodia-app/melodia/internal/logger"
)

// FallbackObserver is notified whenever a request is served by the hash
// fallback instead of the inference endpoint.
type FallbackObserver interface {
	IncrementEmbeddingFallbacks()
}

// Client is the public entrypoint for computing embeddings.
//
// It hides all provider details (inference endpoints, HTTP, etc.) from the
// application layer, and it never fails: any provider error degrades to the
// deterministic hash fallback rather than propagating.
type Client struct {
	cfg      *Config
	provider Provider
	log      *logger.Logger
	observer FallbackObserver
}

// NewClient constructs a Client from Config.
// When no endpoint is configured the client serves every request from the
// fallback; that is a supported degraded mode, not an error.
func NewClient(cfg *Config, log *logger.Logger) *Client {
	var provider Provider
	if cfg.Endpoint != "" {
		p, err := newInferenceProvider(cfg)
		if err != nil {
			log.Warn("embedding provider unavailable, using fallback only", err, nil)
		} else {
			provider = p
		}
	} else {
		log.Warn("no embedding endpoint configured, using fallback only", nil, nil)
	}

	return &Client{cfg: cfg, provider: provider, log: log}
}

// SetFallbackObserver registers a counter for fallback usage. Nil observers
// are allowed and ignored.
func (c *Client) SetFallbackObserver(obs FallbackObserver) {
	c.observer = obs
}

// Dimensions returns the fixed embedding dimensionality.
func (c *Client) Dimensions() int {
	return c.cfg.Dimensions
}

func (c *Client) fallback(text string) []float32 {
	if c.observer != nil {
		c.observer.IncrementEmbeddingFallbacks()
	}
	return fallbackEmbedding(text, c.cfg.Dimensions)
}

// Embed returns a vector of exactly Dimensions() entries for the given text.
// On timeout, non-2xx response, unsupported-model response, or a vector of
// the wrong size, it degrades to the deterministic fallback. It never returns
// an error.
func (c *Client) Embed(ctx context.Context, text string) []float32 {
	if c.provider == nil {
		return c.fallback(text)
	}

	vec, err := c.provider.Create(ctx, text)
	if err != nil {
		c.log.Warn("embedding request failed, using fallback", err, map[string]interface{}{
			"model": c.cfg.Model,
		})
		return c.fallback(text)
	}

	if len(vec) != c.cfg.Dimensions {
		c.log.Warn("embedding dimensionality mismatch, using fallback", nil, map[string]interface{}{
			"want": c.cfg.Dimensions,
			"got":  len(vec),
		})
		return c.fallback(text)
	}

	return vec
}

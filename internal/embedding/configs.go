package embedding

import (
	"os"
	"strconv"
)

// EMBEDDING_ENDPOINT must point to the root of the OpenAI-compatible inference
// service (no /v1/embeddings appended). The provider appends paths
// automatically, so callers only need to supply the host base URL.
//
// An empty endpoint is valid: the client then serves every request from the
// deterministic fallback.

type Config struct {
	// Inference endpoint and auth
	Endpoint     string // Base URL of the OpenAI-compatible inference API
	Model        string // Embedding model identifier
	ServiceToken string // Bearer token, optional
	HTTPTimeoutS int    // HTTP timeout seconds (default 20)

	// Dimensions is the fixed embedding dimensionality. Fallback vectors are
	// produced at exactly this size, so the vector index never sees a
	// mismatched dimension.
	Dimensions int
}

// NewConfig reads from environment variables.
func NewConfig() *Config {
	timeout := 20
	if v := os.Getenv("EMBEDDING_HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = n
		}
	}

	dims := 1024
	if v := os.Getenv("EMBEDDING_DIMENSIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			dims = n
		}
	}

	model := os.Getenv("EMBEDDING_MODEL")
	if model == "" {
		model = "nomic-embed-text"
	}

	return &Config{
		Endpoint:     os.Getenv("EMBEDDING_ENDPOINT"),
		Model:        model,
		ServiceToken: os.Getenv("EMBEDDING_SERVICE_TOKEN"),
		HTTPTimeoutS: timeout,
		Dimensions:   dims,
	}
}

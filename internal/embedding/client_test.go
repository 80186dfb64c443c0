package embedding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodia-app/melodia/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.NewLoggerClient(logger.Config{Level: "error", ServiceName: "test"})
}

func testConfig(endpoint string) *Config {
	return &Config{
		Endpoint:     endpoint,
		Model:        "test-model",
		HTTPTimeoutS: 2,
		Dimensions:   64,
	}
}

func TestEmbed_NoEndpointUsesFallback(t *testing.T) {
	client := NewClient(testConfig(""), testLogger())

	vec := client.Embed(context.Background(), "summer road trip")
	require.Len(t, vec, 64)
}

func TestEmbed_FallbackIsDeterministic(t *testing.T) {
	client := NewClient(testConfig(""), testLogger())

	a := client.Embed(context.Background(), "lofi beats to study to")
	b := client.Embed(context.Background(), "lofi beats to study to")
	assert.Equal(t, a, b)
}

func TestEmbed_FallbackIsCaseInsensitive(t *testing.T) {
	client := NewClient(testConfig(""), testLogger())

	a := client.Embed(context.Background(), "Jazz Classics")
	b := client.Embed(context.Background(), "jazz classics")
	assert.Equal(t, a, b)
}

func TestEmbed_FallbackValuesAreBounded(t *testing.T) {
	client := NewClient(testConfig(""), testLogger())

	vec := client.Embed(context.Background(), "anything at all")
	for i, v := range vec {
		assert.GreaterOrEqual(t, v, float32(-1.0), "index %d", i)
		assert.LessOrEqual(t, v, float32(1.0), "index %d", i)
	}
}

func TestEmbed_DifferentTextsDiffer(t *testing.T) {
	client := NewClient(testConfig(""), testLogger())

	a := client.Embed(context.Background(), "heavy metal")
	b := client.Embed(context.Background(), "soft piano")
	assert.NotEqual(t, a, b)
}

func TestEmbed_ServerErrorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), testLogger())

	vec := client.Embed(context.Background(), "energetic dance track")
	require.Len(t, vec, 64)
	assert.Equal(t, fallbackEmbedding("energetic dance track", 64), vec)
}

func TestEmbed_UnsupportedModelFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "model test-model does not support embeddings"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), testLogger())

	vec := client.Embed(context.Background(), "quiet acoustic evening")
	assert.Equal(t, fallbackEmbedding("quiet acoustic evening", 64), vec)
}

func TestEmbed_WrongDimensionalityFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [{"embedding": [0.1, 0.2, 0.3]}]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), testLogger())

	vec := client.Embed(context.Background(), "three dims is not enough")
	require.Len(t, vec, 64)
}

func TestEmbed_SuccessfulProviderResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/embeddings", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [{"embedding": [` + repeatedZeros(64) + `]}]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), testLogger())

	vec := client.Embed(context.Background(), "exactly the right size")
	require.Len(t, vec, 64)
	assert.NotEqual(t, fallbackEmbedding("exactly the right size", 64), vec)
}

func TestEmbed_FallbackObserverCounts(t *testing.T) {
	client := NewClient(testConfig(""), testLogger())
	counter := &countingObserver{}
	client.SetFallbackObserver(counter)

	client.Embed(context.Background(), "one")
	client.Embed(context.Background(), "two")
	assert.Equal(t, 2, counter.count)
}

type countingObserver struct {
	count int
}

func (c *countingObserver) IncrementEmbeddingFallbacks() {
	c.count++
}

// repeatedZeros renders n comma-separated zero values for a JSON array.
func repeatedZeros(n int) string {
	out := make([]byte, 0, n*2)
	for i := 0; i < n; i++ {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, '0')
	}
	return string(out)
}

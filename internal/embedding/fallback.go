package embedding

import (
	"crypto/sha512"
	"strings"
)

// fallbackEmbedding derives a deterministic vector from the text itself:
// SHA-512 of the lower-cased input, digest bytes reused cyclically across the
// requested dimensions, each byte mapped linearly into [-1, 1].
//
// The result is not semantically meaningful, but it is stable across calls
// and dimensionally compatible with the real model, so the vector index and
// similarity math keep working while the embedding service is missing or
// overloaded.
func fallbackEmbedding(text string, dimensions int) []float32 {
	digest := sha512.Sum512([]byte(strings.ToLower(text)))

	vec := make([]float32, dimensions)
	for i := range vec {
		b := digest[i%len(digest)]
		vec[i] = float32(b)/127.5 - 1.0
	}
	return vec
}

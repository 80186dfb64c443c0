package search

import (
	"context"
	"errors"

	"github.com/melodia-app/melodia/internal/catalog"
	"github.com/melodia-app/melodia/internal/lexical"
	"github.com/melodia-app/melodia/internal/vectorindex"
)

// Result sources. Every result names the path that produced it.
const (
	SourceSemantic = "semantic"
	SourceLexical  = "lexical"
)

// ErrEmptyQuery is returned when the query is empty or whitespace only.
var ErrEmptyQuery = errors.New("search: empty query")

// Result is one ranked search hit with its hydrated song.
type Result struct {
	Song   catalog.Song
	Score  float64
	Source string
}

// Embedder turns query text into a vector. It never fails; degraded modes
// fall back to a deterministic embedding internally.
type Embedder interface {
	Embed(ctx context.Context, text string) []float32
}

// VectorSearcher returns the nearest indexed songs for a query vector.
type VectorSearcher interface {
	QueryNearest(ctx context.Context, vector []float32, limit int) ([]vectorindex.Hit, error)
}

// LexicalSearcher is the keyword fallback path.
type LexicalSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]lexical.Hit, error)
}

// SongHydrator loads catalog rows for result song IDs.
type SongHydrator interface {
	SongsByIDs(ctx context.Context, ids []string) (map[string]catalog.Song, error)
}

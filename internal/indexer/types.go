package indexer

import (
	"context"

	"github.com/melodia-app/melodia/internal/catalog"
	"github.com/melodia-app/melodia/internal/vectorindex"
)

// SongSource loads songs and persists generated descriptions.
type SongSource interface {
	SongByID(ctx context.Context, songID string) (*catalog.Song, error)
	AllSongs(ctx context.Context) ([]catalog.Song, error)
	SaveDescription(ctx context.Context, songID, description string) error
}

// Describer ensures songs carry a textual description.
type Describer interface {
	EnsureDescription(ctx context.Context, song *catalog.Song) (string, bool)
}

// Embedder turns song text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) []float32
}

// VectorWriter upserts song vectors into the vector index.
type VectorWriter interface {
	UpsertSong(ctx context.Context, props vectorindex.SongProperties, vector []float32) error
}

// LexicalWriter keeps the keyword index current.
type LexicalWriter interface {
	IndexSong(ctx context.Context, song *catalog.Song) error
}

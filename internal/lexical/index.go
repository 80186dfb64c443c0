// Package lexical maintains an in-memory full-text index over the song
// catalog. It backs the keyword fallback path of search when the semantic
// path returns nothing or fails.
package lexical

import (
	"context"
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/melodia-app/melodia/internal/catalog"
	"github.com/melodia-app/melodia/internal/logger"
)

// Hit is a single lexical match.
type Hit struct {
	SongID string
	Score  float64
}

// Index is an in-memory bleve index over song metadata.
type Index struct {
	index bleve.Index
	log   *logger.Logger
	mu    sync.RWMutex
}

// NewIndex creates an empty in-memory index. Documents are loaded on startup
// and kept current by the indexing pipeline.
func NewIndex(log *logger.Logger) (*Index, error) {
	idx, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("lexical: failed to create index: %w", err)
	}

	return &Index{index: idx, log: log}, nil
}

// buildMapping indexes all searchable song fields with the standard analyzer.
// The song ID is stored for retrieval but not analyzed.
func buildMapping() *mapping.IndexMappingImpl {
	textMapping := bleve.NewTextFieldMapping()
	textMapping.Analyzer = "standard"
	textMapping.Store = false
	textMapping.Index = true

	idMapping := bleve.NewTextFieldMapping()
	idMapping.Analyzer = "keyword"
	idMapping.Store = true
	idMapping.Index = false

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("song_id", idMapping)
	docMapping.AddFieldMappingsAt("title", textMapping)
	docMapping.AddFieldMappingsAt("artist_name", textMapping)
	docMapping.AddFieldMappingsAt("album_title", textMapping)
	docMapping.AddFieldMappingsAt("genre", textMapping)
	docMapping.AddFieldMappingsAt("description", textMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// songDocument flattens a song into the indexed fields.
func songDocument(song *catalog.Song) map[string]interface{} {
	doc := map[string]interface{}{
		"song_id":     song.ID,
		"title":       song.Title,
		"artist_name": song.Artist.Name,
		"genre":       song.Genre,
		"description": song.Description,
	}
	if song.Album != nil {
		doc["album_title"] = song.Album.Title
	}
	return doc
}

// Bootstrap loads every catalog song into the index in batches.
func (i *Index) Bootstrap(ctx context.Context, songs []catalog.Song) error {
	const batchSize = 500

	i.mu.Lock()
	defer i.mu.Unlock()

	batch := i.index.NewBatch()
	for n := range songs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		song := &songs[n]
		if err := batch.Index(song.ID, songDocument(song)); err != nil {
			return fmt.Errorf("lexical: failed to batch song %s: %w", song.ID, err)
		}

		if batch.Size() >= batchSize {
			if err := i.index.Batch(batch); err != nil {
				return fmt.Errorf("lexical: failed to execute batch: %w", err)
			}
			batch = i.index.NewBatch()
		}
	}

	if batch.Size() > 0 {
		if err := i.index.Batch(batch); err != nil {
			return fmt.Errorf("lexical: failed to execute final batch: %w", err)
		}
	}

	i.log.Info("lexical index bootstrapped", nil, map[string]interface{}{
		"songs": len(songs),
	})
	return nil
}

// Close releases the underlying index.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.index != nil {
		return i.index.Close()
	}
	return nil
}

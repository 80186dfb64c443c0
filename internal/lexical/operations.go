package lexical

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"

	"github.com/melodia-app/melodia/internal/catalog"
)

// IndexSong adds or replaces a single song document.
func (i *Index) IndexSong(ctx context.Context, song *catalog.Song) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if err := i.index.Index(song.ID, songDocument(song)); err != nil {
		return fmt.Errorf("lexical: failed to index song %s: %w", song.ID, err)
	}
	return nil
}

// Search runs a keyword match over all indexed song fields and returns song
// IDs ordered by relevance.
func (i *Index) Search(ctx context.Context, queryStr string, limit int) ([]Hit, error) {
	queryStr = strings.TrimSpace(queryStr)
	if queryStr == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	request := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(queryStr), limit, 0, false)
	request.Fields = []string{"song_id"}

	result, err := i.index.SearchInContext(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("lexical: search failed: %w", err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, hit := range result.Hits {
		songID, _ := hit.Fields["song_id"].(string)
		if songID == "" {
			songID = hit.ID
		}
		hits = append(hits, Hit{SongID: songID, Score: hit.Score})
	}
	return hits, nil
}

package lexical

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodia-app/melodia/internal/catalog"
	"github.com/melodia-app/melodia/internal/logger"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	log := logger.NewLoggerClient(logger.Config{Level: "error", ServiceName: "test"})
	idx, err := NewIndex(log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func indexedSong(id, title, artist, genre, description string) catalog.Song {
	return catalog.Song{
		ID:          id,
		Title:       title,
		Artist:      catalog.Artist{Name: artist},
		Genre:       genre,
		Description: description,
	}
}

func TestSearch_MatchesTitle(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.Bootstrap(context.Background(), []catalog.Song{
		indexedSong("song-1", "Midnight Drive", "The Night Owls", "synthwave", ""),
		indexedSong("song-2", "Morning Coffee", "Daybreak", "folk", ""),
	}))

	hits, err := idx.Search(context.Background(), "midnight", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "song-1", hits[0].SongID)
	assert.Greater(t, hits[0].Score, 0.0)
}

func TestSearch_MatchesGenreAndDescription(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.Bootstrap(context.Background(), []catalog.Song{
		indexedSong("song-1", "Untitled", "Someone", "jazz", "smoky late-night saxophone"),
		indexedSong("song-2", "Also Untitled", "Someone Else", "metal", "blistering guitar riffs"),
	}))

	hits, err := idx.Search(context.Background(), "saxophone", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "song-1", hits[0].SongID)

	hits, err = idx.Search(context.Background(), "metal", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "song-2", hits[0].SongID)
}

func TestSearch_BlankQueryReturnsNothing(t *testing.T) {
	idx := newTestIndex(t)

	hits, err := idx.Search(context.Background(), "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearch_RespectsLimit(t *testing.T) {
	idx := newTestIndex(t)
	songs := []catalog.Song{
		indexedSong("song-1", "Rain Song One", "A", "ambient", ""),
		indexedSong("song-2", "Rain Song Two", "B", "ambient", ""),
		indexedSong("song-3", "Rain Song Three", "C", "ambient", ""),
	}
	require.NoError(t, idx.Bootstrap(context.Background(), songs))

	hits, err := idx.Search(context.Background(), "rain", 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestIndexSong_ReplacesExistingDocument(t *testing.T) {
	idx := newTestIndex(t)
	song := indexedSong("song-1", "Old Title", "Artist", "rock", "")
	require.NoError(t, idx.IndexSong(context.Background(), &song))

	song.Title = "New Title"
	require.NoError(t, idx.IndexSong(context.Background(), &song))

	hits, err := idx.Search(context.Background(), "new", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)

	hits, err = idx.Search(context.Background(), "old", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearch_EmptyIndexReturnsNothing(t *testing.T) {
	idx := newTestIndex(t)

	hits, err := idx.Search(context.Background(), "anything", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

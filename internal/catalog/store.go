package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/melodia-app/melodia/internal/postgres"
)

// ErrNotFound is returned when a referenced catalog entity does not exist.
var ErrNotFound = errors.New("catalog: not found")

// Store provides read and write access to the song catalog and play history.
type Store struct {
	db postgres.Client
}

// NewStore constructs a catalog store over the relational client.
func NewStore(db postgres.Client) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the catalog tables.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.DB().WithContext(ctx).AutoMigrate(
		&Artist{},
		&Album{},
		&Song{},
		&PlayEvent{},
	)
}

// SongByID loads a song with its artist and album. Returns ErrNotFound when
// the song does not exist.
func (s *Store) SongByID(ctx context.Context, songID string) (*Song, error) {
	var song Song
	err := s.db.DB().WithContext(ctx).
		Preload("Artist").
		Preload("Album").
		First(&song, "id = ?", songID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: load song %s: %w", songID, err)
	}
	return &song, nil
}

// SongsByIDs loads songs by ID, keyed by songID. Missing IDs are simply absent
// from the result; callers decide whether that matters.
func (s *Store) SongsByIDs(ctx context.Context, songIDs []string) (map[string]Song, error) {
	if len(songIDs) == 0 {
		return map[string]Song{}, nil
	}

	var songs []Song
	err := s.db.DB().WithContext(ctx).
		Preload("Artist").
		Preload("Album").
		Find(&songs, "id IN ?", songIDs).Error
	if err != nil {
		return nil, fmt.Errorf("catalog: load songs: %w", err)
	}

	byID := make(map[string]Song, len(songs))
	for _, song := range songs {
		byID[song.ID] = song
	}
	return byID, nil
}

// SongsByArtist returns up to limit songs by the given artist, most recent
// first, excluding the given songIDs.
func (s *Store) SongsByArtist(ctx context.Context, artistID string, exclude []string, limit int) ([]Song, error) {
	return s.candidateSongs(ctx, "artist_id = ?", artistID, exclude, limit)
}

// SongsByGenre returns up to limit songs in the given genre, most recent
// first, excluding the given songIDs.
func (s *Store) SongsByGenre(ctx context.Context, genre string, exclude []string, limit int) ([]Song, error) {
	return s.candidateSongs(ctx, "genre = ?", genre, exclude, limit)
}

func (s *Store) candidateSongs(ctx context.Context, condition string, value any, exclude []string, limit int) ([]Song, error) {
	query := s.db.DB().WithContext(ctx).
		Preload("Artist").
		Where(condition, value).
		Order("created_at DESC").
		Limit(limit)

	if len(exclude) > 0 {
		query = query.Where("id NOT IN ?", exclude)
	}

	var songs []Song
	if err := query.Find(&songs).Error; err != nil {
		return nil, fmt.Errorf("catalog: load candidate songs: %w", err)
	}
	return songs, nil
}

// AllSongs returns the full catalog with artist metadata. Used by the bulk
// indexing backfill and the lexical index bootstrap.
func (s *Store) AllSongs(ctx context.Context) ([]Song, error) {
	var songs []Song
	err := s.db.DB().WithContext(ctx).
		Preload("Artist").
		Preload("Album").
		Order("created_at ASC").
		Find(&songs).Error
	if err != nil {
		return nil, fmt.Errorf("catalog: load all songs: %w", err)
	}
	return songs, nil
}

// PopularSongs ranks songs by total play count across all users; songs that
// were never played rank with zero plays. Ties break by recency.
func (s *Store) PopularSongs(ctx context.Context, limit int) ([]Song, error) {
	var songs []Song
	err := s.db.DB().WithContext(ctx).
		Model(&Song{}).
		Select("songs.*").
		Joins("LEFT JOIN play_events ON play_events.song_id = songs.id").
		Group("songs.id").
		Order("COUNT(play_events.id) DESC, songs.created_at DESC").
		Limit(limit).
		Preload("Artist").
		Find(&songs).Error
	if err != nil {
		return nil, fmt.Errorf("catalog: load popular songs: %w", err)
	}
	return songs, nil
}

// PlayedSongIDs returns the distinct set of songs a user has played.
func (s *Store) PlayedSongIDs(ctx context.Context, userID string) ([]string, error) {
	var songIDs []string
	err := s.db.DB().WithContext(ctx).
		Model(&PlayEvent{}).
		Distinct("song_id").
		Where("user_id = ?", userID).
		Pluck("song_id", &songIDs).Error
	if err != nil {
		return nil, fmt.Errorf("catalog: load play history for user %s: %w", userID, err)
	}
	return songIDs, nil
}

// AppendPlay records a play event.
func (s *Store) AppendPlay(ctx context.Context, userID, songID string, playedAt time.Time) error {
	event := PlayEvent{UserID: userID, SongID: songID, PlayedAt: playedAt}
	if err := s.db.DB().WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("catalog: append play: %w", err)
	}
	return nil
}

// SaveDescription persists a generated description onto a song record.
func (s *Store) SaveDescription(ctx context.Context, songID, description string) error {
	result := s.db.DB().WithContext(ctx).
		Model(&Song{}).
		Where("id = ?", songID).
		Update("description", description)
	if result.Error != nil {
		return fmt.Errorf("catalog: save description for song %s: %w", songID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

package preference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/melodia-app/melodia/internal/postgres"
)

// Store persists preference rows.
type Store struct {
	db postgres.Client
}

// NewStore constructs a preference store over the relational client.
func NewStore(db postgres.Client) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the preference table.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.DB().WithContext(ctx).AutoMigrate(&UserPreference{})
}

// Bump upserts the preference rows for the given axes in a single transaction:
// score += increment (capped at 1.0), playCount += 1, lastPlayedAt = playedAt.
// The lookup for each axis carries the exclusivity predicate so an artist-axis
// update can never touch a genre row and vice versa.
func (s *Store) Bump(ctx context.Context, userID string, axes []Axis, increment float64, playedAt time.Time) error {
	return s.db.Transaction(ctx, func(tx *gorm.DB) error {
		for _, axis := range axes {
			if err := bumpAxis(tx, userID, axis, increment, playedAt); err != nil {
				return err
			}
		}
		return nil
	})
}

func bumpAxis(tx *gorm.DB, userID string, axis Axis, increment float64, playedAt time.Time) error {
	var row UserPreference
	// Lock the row for the duration of the transaction so two concurrent
	// plays of the same song cannot both miss the lookup and create
	// duplicate axis rows, or overwrite each other's increment.
	query := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID)

	switch axis.Kind() {
	case ArtistAxis:
		query = query.Where("artist_id = ? AND genre IS NULL", axis.ArtistID())
	case GenreAxis:
		query = query.Where("genre = ? AND artist_id IS NULL", axis.Genre())
	default:
		return fmt.Errorf("preference: unknown axis kind %d", axis.Kind())
	}

	err := query.First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = UserPreference{
			UserID:       userID,
			Score:        bumpScore(0, increment),
			PlayCount:    1,
			LastPlayedAt: playedAt,
		}
		if axis.Kind() == ArtistAxis {
			artistID := axis.ArtistID()
			row.ArtistID = &artistID
		} else {
			genre := axis.Genre()
			row.Genre = &genre
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("preference: create row: %w", err)
		}
		return nil

	case err != nil:
		return fmt.Errorf("preference: load row: %w", err)

	default:
		updates := map[string]interface{}{
			"score":          bumpScore(row.Score, increment),
			"play_count":     row.PlayCount + 1,
			"last_played_at": playedAt,
		}
		if err := tx.Model(&UserPreference{}).Where("id = ?", row.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("preference: update row: %w", err)
		}
		return nil
	}
}

// Top returns the user's strongest preferences ordered by score, then play
// count, both descending.
func (s *Store) Top(ctx context.Context, userID string, limit int) ([]Preference, error) {
	var rows []UserPreference
	err := s.db.DB().WithContext(ctx).
		Where("user_id = ?", userID).
		Order("score DESC, play_count DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("preference: load top preferences: %w", err)
	}

	prefs := make([]Preference, len(rows))
	for i, row := range rows {
		prefs[i] = row.toPreference()
	}
	return prefs, nil
}

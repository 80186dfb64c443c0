package recommender

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/melodia-app/melodia/internal/postgres"
)

// CacheStore persists the recommendation cache rows.
type CacheStore struct {
	db postgres.Client
}

// NewCacheStore constructs a cache store over the relational client.
func NewCacheStore(db postgres.Client) *CacheStore {
	return &CacheStore{db: db}
}

// Migrate creates or updates the recommendation cache table.
func (s *CacheStore) Migrate(ctx context.Context) error {
	return s.db.DB().WithContext(ctx).AutoMigrate(&Recommendation{})
}

// ReplaceForUser atomically swaps the user's cache rows: delete-all,
// insert-new, inside one transaction so readers never see the cache
// empty-then-repopulating mid-rebuild.
func (s *CacheStore) ReplaceForUser(ctx context.Context, userID string, entries []Recommendation) error {
	return s.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&Recommendation{}).Error; err != nil {
			return fmt.Errorf("recommender: clear cache for user %s: %w", userID, err)
		}
		if len(entries) == 0 {
			return nil
		}
		if err := tx.Create(&entries).Error; err != nil {
			return fmt.Errorf("recommender: insert cache for user %s: %w", userID, err)
		}
		return nil
	})
}

// ListForUser returns up to limit cache rows ordered by score descending,
// then by most recent rebuild. Within one rebuild computed_at is constant,
// so the final id tiebreak keeps insertion order, which encodes preference
// rank.
func (s *CacheStore) ListForUser(ctx context.Context, userID string, limit int) ([]Recommendation, error) {
	var rows []Recommendation
	err := s.db.DB().WithContext(ctx).
		Where("user_id = ?", userID).
		Order("score DESC, computed_at DESC, id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("recommender: list cache for user %s: %w", userID, err)
	}
	return rows, nil
}

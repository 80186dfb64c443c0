// Package recommender produces and caches a ranked set of song
// recommendations per user, derived from the user's preference rows. The
// cache is fully owned by this package: every rebuild replaces the whole
// per-user set inside one transaction, so readers never observe a partially
// rebuilt list.
package recommender

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/melodia-app/melodia/internal/catalog"
)

// Recommendation is one cached recommendation row. Score is derived state,
// safe to erase and rebuild at any time.
type Recommendation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"type:uuid;index;not null" json:"user_id"`
	SongID     string    `gorm:"type:uuid;index;not null" json:"song_id"`
	Score      float64   `gorm:"not null" json:"score"`
	Reason     string    `gorm:"type:varchar(255)" json:"reason"`
	ComputedAt time.Time `json:"computed_at"`
}

func (Recommendation) TableName() string { return "recommendations" }

// RecommendedSong is a cache row hydrated with song metadata, as served to
// the read API.
type RecommendedSong struct {
	Song   catalog.Song `json:"song"`
	Score  float64      `json:"score"`
	Reason string       `json:"reason"`
}

const (
	// PopularReason is the provenance string for the zero-history fallback.
	PopularReason = "popular songs"

	maxPreferences          = 10
	candidatesPerPreference = 5
	cacheSize               = 20
	popularScore            = 0.5
)

// Config holds the recommendation scoring constants. The multipliers are
// configuration, not structural law, but the artist multiplier must always
// exceed the genre multiplier: direct-artist affinity is the stronger signal.
type Config struct {
	ArtistMultiplier float64 `yaml:"artist_multiplier" env:"RECOMMENDER_ARTIST_MULTIPLIER"`
	GenreMultiplier  float64 `yaml:"genre_multiplier" env:"RECOMMENDER_GENRE_MULTIPLIER"`
}

// NewConfig reads the recommender configuration from environment variables.
func NewConfig() Config {
	cfg := Config{
		ArtistMultiplier: 0.8,
		GenreMultiplier:  0.6,
	}
	if v := os.Getenv("RECOMMENDER_ARTIST_MULTIPLIER"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.ArtistMultiplier = f
		}
	}
	if v := os.Getenv("RECOMMENDER_GENRE_MULTIPLIER"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.GenreMultiplier = f
		}
	}
	return cfg
}

// Validate enforces the artist > genre ordering.
func (c Config) Validate() error {
	if c.ArtistMultiplier <= c.GenreMultiplier {
		return fmt.Errorf("recommender: artist multiplier (%v) must exceed genre multiplier (%v)",
			c.ArtistMultiplier, c.GenreMultiplier)
	}
	return nil
}

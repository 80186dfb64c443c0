// Package preference converts play events into weighted per-user listening
// preferences. A preference row is keyed by user and exactly one taste axis:
// either an artist or a genre, never both. The axis is modelled as a tagged
// variant so the mutual-exclusion rule cannot be violated in code; the
// persistence layer maps it onto two nullable columns and every query carries
// the exclusivity predicate.
package preference

import (
	"time"
)

// AxisKind discriminates the taste axis of a preference row.
type AxisKind int

const (
	// ArtistAxis marks a preference keyed by artist.
	ArtistAxis AxisKind = iota
	// GenreAxis marks a preference keyed by genre.
	GenreAxis
)

// Axis is the tagged variant identifying what a preference row is about.
type Axis struct {
	kind     AxisKind
	artistID string
	genre    string
}

// ForArtist returns an artist-axis value.
func ForArtist(artistID string) Axis {
	return Axis{kind: ArtistAxis, artistID: artistID}
}

// ForGenre returns a genre-axis value.
func ForGenre(genre string) Axis {
	return Axis{kind: GenreAxis, genre: genre}
}

// Kind returns the axis discriminator.
func (a Axis) Kind() AxisKind { return a.kind }

// ArtistID returns the artist for an artist-axis value, empty otherwise.
func (a Axis) ArtistID() string { return a.artistID }

// Genre returns the genre for a genre-axis value, empty otherwise.
func (a Axis) Genre() string { return a.genre }

// Preference is one weighted taste signal for a user.
type Preference struct {
	UserID       string
	Axis         Axis
	Score        float64
	PlayCount    int
	LastPlayedAt time.Time
}

// UserPreference is the relational shape of a Preference. Exactly one of
// ArtistID/Genre is non-null per row.
type UserPreference struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       string    `gorm:"type:uuid;index:idx_pref_user;not null" json:"user_id"`
	ArtistID     *string   `gorm:"type:uuid;index" json:"artist_id,omitempty"`
	Genre        *string   `gorm:"type:varchar(100);index" json:"genre,omitempty"`
	Score        float64   `gorm:"not null" json:"score"`
	PlayCount    int       `gorm:"not null" json:"play_count"`
	LastPlayedAt time.Time `json:"last_played_at"`
}

func (UserPreference) TableName() string { return "user_preferences" }

// toPreference converts a row into the domain shape.
func (p UserPreference) toPreference() Preference {
	pref := Preference{
		UserID:       p.UserID,
		Score:        p.Score,
		PlayCount:    p.PlayCount,
		LastPlayedAt: p.LastPlayedAt,
	}
	if p.ArtistID != nil {
		pref.Axis = ForArtist(*p.ArtistID)
	} else if p.Genre != nil {
		pref.Axis = ForGenre(*p.Genre)
	}
	return pref
}

// bumpScore applies one play's worth of signal: a fixed increment, capped at 1.
// Scores never decay and are never decreased by this pipeline.
func bumpScore(current, increment float64) float64 {
	next := current + increment
	if next > 1.0 {
		return 1.0
	}
	return next
}

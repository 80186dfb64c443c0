package preference

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/melodia-app/melodia/internal/catalog"
	"github.com/melodia-app/melodia/internal/logger"
)

// DefaultScoreIncrement is the per-play score bump applied to each touched axis.
const DefaultScoreIncrement = 0.1

// SongResolver is the slice of the catalog the tracker needs.
type SongResolver interface {
	SongByID(ctx context.Context, songID string) (*catalog.Song, error)
	AppendPlay(ctx context.Context, userID, songID string, playedAt time.Time) error
}

// PreferenceWriter persists axis bumps.
type PreferenceWriter interface {
	Bump(ctx context.Context, userID string, axes []Axis, increment float64, playedAt time.Time) error
}

// Rebuilder regenerates the recommendation cache for a user. Implemented by
// the recommender package; declared here so the dependency points outward.
type Rebuilder interface {
	Generate(ctx context.Context, userID string) error
}

// TrackerConfig holds tuning for the play tracker.
type TrackerConfig struct {
	// ScoreIncrement is added to the touched axis on each play, capped at 1.0.
	ScoreIncrement float64 `yaml:"score_increment" env:"PREFERENCE_SCORE_INCREMENT"`
}

// NewTrackerConfig reads the tracker configuration from environment variables.
func NewTrackerConfig() TrackerConfig {
	increment := DefaultScoreIncrement
	if v := os.Getenv("PREFERENCE_SCORE_INCREMENT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= 1 {
			increment = f
		}
	}
	return TrackerConfig{ScoreIncrement: increment}
}

// PlayObserver counts recorded plays. Nil observers are ignored.
type PlayObserver interface {
	IncrementPlaysRecorded()
}

// Tracker converts play events into preference updates and triggers the
// recommendation rebuild for the affected user.
type Tracker struct {
	cfg       TrackerConfig
	songs     SongResolver
	prefs     PreferenceWriter
	rebuilder Rebuilder
	log       *logger.Logger
	observer  PlayObserver
}

// NewTracker constructs a Tracker.
func NewTracker(cfg TrackerConfig, songs SongResolver, prefs PreferenceWriter, rebuilder Rebuilder, log *logger.Logger) *Tracker {
	return &Tracker{
		cfg:       cfg,
		songs:     songs,
		prefs:     prefs,
		rebuilder: rebuilder,
		log:       log,
	}
}

// SetPlayObserver registers a counter for recorded plays.
func (t *Tracker) SetPlayObserver(obs PlayObserver) {
	t.observer = obs
}

// RecordPlay handles one play event: it appends the play to the history,
// bumps the artist-axis preference (and the genre axis when the song has a
// genre), then synchronously rebuilds the user's recommendations.
//
// A play for an unknown song is a no-op, not an error.
func (t *Tracker) RecordPlay(ctx context.Context, userID, songID string) error {
	song, err := t.songs.SongByID(ctx, songID)
	if errors.Is(err, catalog.ErrNotFound) {
		t.log.Debug("ignoring play for unknown song", nil, map[string]interface{}{
			"user_id": userID,
			"song_id": songID,
		})
		return nil
	}
	if err != nil {
		return fmt.Errorf("tracker: resolve song: %w", err)
	}

	now := time.Now().UTC()
	if err := t.songs.AppendPlay(ctx, userID, songID, now); err != nil {
		return fmt.Errorf("tracker: append play: %w", err)
	}

	axes := []Axis{ForArtist(song.ArtistID)}
	if song.Genre != "" {
		axes = append(axes, ForGenre(song.Genre))
	}

	if err := t.prefs.Bump(ctx, userID, axes, t.cfg.ScoreIncrement, now); err != nil {
		return fmt.Errorf("tracker: bump preferences: %w", err)
	}
	if t.observer != nil {
		t.observer.IncrementPlaysRecorded()
	}

	// Preference update happens-before the rebuild for the same user.
	if err := t.rebuilder.Generate(ctx, userID); err != nil {
		return fmt.Errorf("tracker: rebuild recommendations: %w", err)
	}

	return nil
}

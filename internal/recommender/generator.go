package recommender

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/melodia-app/melodia/internal/catalog"
	"github.com/melodia-app/melodia/internal/logger"
	"github.com/melodia-app/melodia/internal/preference"
)

// PreferenceSource is the slice of the preference store the generator needs.
type PreferenceSource interface {
	Top(ctx context.Context, userID string, limit int) ([]preference.Preference, error)
}

// CandidateSource is the slice of the catalog the generator needs. The
// generator's only external dependency is the relational store; a degraded
// embedding or vector service can never block a recommendation refresh.
type CandidateSource interface {
	SongsByArtist(ctx context.Context, artistID string, exclude []string, limit int) ([]catalog.Song, error)
	SongsByGenre(ctx context.Context, genre string, exclude []string, limit int) ([]catalog.Song, error)
	PlayedSongIDs(ctx context.Context, userID string) ([]string, error)
	PopularSongs(ctx context.Context, limit int) ([]catalog.Song, error)
	SongsByIDs(ctx context.Context, songIDs []string) (map[string]catalog.Song, error)
}

// Cache is the persistence boundary for the derived recommendation rows.
type Cache interface {
	ReplaceForUser(ctx context.Context, userID string, entries []Recommendation) error
	ListForUser(ctx context.Context, userID string, limit int) ([]Recommendation, error)
}

// Generator rebuilds and serves per-user recommendation caches.
type Generator struct {
	cfg     Config
	prefs   PreferenceSource
	catalog CandidateSource
	cache   Cache
	log     *logger.Logger
	group   singleflight.Group
}

// NewGenerator constructs a Generator.
func NewGenerator(cfg Config, prefs PreferenceSource, songs CandidateSource, cache Cache, log *logger.Logger) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		cfg:     cfg,
		prefs:   prefs,
		catalog: songs,
		cache:   cache,
		log:     log,
	}, nil
}

// Generate performs a full idempotent rebuild of the user's recommendation
// cache. Concurrent calls for the same user are collapsed into one rebuild;
// rebuilds for different users proceed independently.
func (g *Generator) Generate(ctx context.Context, userID string) error {
	_, err, _ := g.group.Do(userID, func() (interface{}, error) {
		return nil, g.rebuild(ctx, userID)
	})
	return err
}

func (g *Generator) rebuild(ctx context.Context, userID string) error {
	prefs, err := g.prefs.Top(ctx, userID, maxPreferences)
	if err != nil {
		return fmt.Errorf("recommender: load preferences: %w", err)
	}

	var entries []Recommendation
	if len(prefs) == 0 {
		entries, err = g.popularEntries(ctx, userID)
	} else {
		entries, err = g.preferenceEntries(ctx, userID, prefs)
	}
	if err != nil {
		return err
	}

	if err := g.cache.ReplaceForUser(ctx, userID, entries); err != nil {
		return err
	}

	g.log.Debug("recommendation cache rebuilt", nil, map[string]interface{}{
		"user_id": userID,
		"count":   len(entries),
	})
	return nil
}

// preferenceEntries scores candidate songs per preference row. Preferences
// arrive in rank order, so first-seen wins when two rows surface the same
// song: the kept score approximates the highest one.
func (g *Generator) preferenceEntries(ctx context.Context, userID string, prefs []preference.Preference) ([]Recommendation, error) {
	played, err := g.catalog.PlayedSongIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("recommender: load play history: %w", err)
	}

	now := time.Now().UTC()
	seen := make(map[string]bool)
	var entries []Recommendation

	for _, pref := range prefs {
		var (
			candidates []catalog.Song
			multiplier float64
		)

		switch pref.Axis.Kind() {
		case preference.ArtistAxis:
			candidates, err = g.catalog.SongsByArtist(ctx, pref.Axis.ArtistID(), played, candidatesPerPreference)
			multiplier = g.cfg.ArtistMultiplier
		case preference.GenreAxis:
			candidates, err = g.catalog.SongsByGenre(ctx, pref.Axis.Genre(), played, candidatesPerPreference)
			multiplier = g.cfg.GenreMultiplier
		}
		if err != nil {
			return nil, fmt.Errorf("recommender: load candidates: %w", err)
		}

		for _, song := range candidates {
			if seen[song.ID] {
				continue
			}
			seen[song.ID] = true
			entries = append(entries, Recommendation{
				UserID:     userID,
				SongID:     song.ID,
				Score:      pref.Score * multiplier,
				Reason:     reasonFor(pref, song),
				ComputedAt: now,
			})
		}
	}

	// Stable sort: ties keep preference order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if len(entries) > cacheSize {
		entries = entries[:cacheSize]
	}
	return entries, nil
}

// popularEntries ranks the whole catalog by total play count across users so
// every user receives a non-empty recommendation set even with zero history.
func (g *Generator) popularEntries(ctx context.Context, userID string) ([]Recommendation, error) {
	songs, err := g.catalog.PopularSongs(ctx, cacheSize)
	if err != nil {
		return nil, fmt.Errorf("recommender: load popular songs: %w", err)
	}

	now := time.Now().UTC()
	entries := make([]Recommendation, len(songs))
	for i, song := range songs {
		entries[i] = Recommendation{
			UserID:     userID,
			SongID:     song.ID,
			Score:      popularScore,
			Reason:     PopularReason,
			ComputedAt: now,
		}
	}
	return entries, nil
}

func reasonFor(pref preference.Preference, song catalog.Song) string {
	if pref.Axis.Kind() == preference.ArtistAxis {
		if song.Artist.Name != "" {
			return fmt.Sprintf("because you listen to %s", song.Artist.Name)
		}
		return "because you listen to this artist"
	}
	return fmt.Sprintf("because you like %s", pref.Axis.Genre())
}

// GetRecommendations returns up to limit cached recommendations hydrated with
// song metadata, highest score first. Pure read, no side effects.
func (g *Generator) GetRecommendations(ctx context.Context, userID string, limit int) ([]RecommendedSong, error) {
	rows, err := g.cache.ListForUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	songIDs := make([]string, len(rows))
	for i, row := range rows {
		songIDs[i] = row.SongID
	}

	songs, err := g.catalog.SongsByIDs(ctx, songIDs)
	if err != nil {
		return nil, fmt.Errorf("recommender: hydrate recommendations: %w", err)
	}

	results := make([]RecommendedSong, 0, len(rows))
	for _, row := range rows {
		song, ok := songs[row.SongID]
		if !ok {
			// Song vanished from the catalog since the rebuild; skip it.
			continue
		}
		results = append(results, RecommendedSong{
			Song:   song,
			Score:  row.Score,
			Reason: row.Reason,
		})
	}
	return results, nil
}

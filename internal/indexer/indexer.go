// Package indexer feeds songs into the vector and lexical indexes. Jobs are
// accepted fire-and-forget on a bounded queue and processed by a single
// background worker; indexing failures are logged and counted but never
// surfaced to the caller.
package indexer

import (
	"context"
	"strings"
	"sync"
	"time"

	traceSpan "go.opentelemetry.io/otel/trace"

	"github.com/melodia-app/melodia/internal/catalog"
	"github.com/melodia-app/melodia/internal/logger"
	"github.com/melodia-app/melodia/internal/metrics"
	"github.com/melodia-app/melodia/internal/tracer"
	"github.com/melodia-app/melodia/internal/vectorindex"
)

// Indexer runs the async song indexing pipeline.
type Indexer struct {
	cfg      Config
	source   SongSource
	describe Describer
	embedder Embedder
	vectors  VectorWriter
	lexical  LexicalWriter
	metrics  *metrics.Metrics
	tracer   *tracer.Tracer
	log      *logger.Logger

	jobs   chan string
	done   chan struct{}
	wg     sync.WaitGroup
	closed sync.Once
}

// NewIndexer constructs the indexer. Start must be called before Enqueue has
// any effect.
func NewIndexer(
	cfg Config,
	source SongSource,
	describe Describer,
	embedder Embedder,
	vectors VectorWriter,
	lex LexicalWriter,
	m *metrics.Metrics,
	t *tracer.Tracer,
	log *logger.Logger,
) *Indexer {
	return &Indexer{
		cfg:      cfg,
		source:   source,
		describe: describe,
		embedder: embedder,
		vectors:  vectors,
		lexical:  lex,
		metrics:  m,
		tracer:   t,
		log:      log,
		jobs:     make(chan string, cfg.QueueSize),
		done:     make(chan struct{}),
	}
}

// Start launches the background worker.
func (i *Indexer) Start() {
	i.wg.Add(1)
	go i.worker()
}

// Stop closes the queue and waits for in-flight work to finish.
func (i *Indexer) Stop() {
	i.closed.Do(func() {
		close(i.done)
	})
	i.wg.Wait()
}

// Enqueue schedules a song for indexing. It never blocks: when the queue is
// full the job is dropped and counted, on the assumption that a later play or
// backfill will pick the song up again.
func (i *Indexer) Enqueue(songID string) {
	select {
	case i.jobs <- songID:
	default:
		i.metrics.IncrementIndexJobs("dropped")
		i.log.Warn("index queue full, dropping job", nil, map[string]interface{}{
			"song_id": songID,
		})
	}
}

func (i *Indexer) worker() {
	defer i.wg.Done()

	for {
		select {
		case <-i.done:
			// Drain whatever is already queued before exiting.
			for {
				select {
				case songID := <-i.jobs:
					i.process(context.Background(), songID)
				default:
					return
				}
			}
		case songID := <-i.jobs:
			i.process(context.Background(), songID)
		}
	}
}

// process runs the full pipeline for one song: description, embedding, vector
// upsert, lexical update. Any failure ends the job; nothing retries.
func (i *Indexer) process(ctx context.Context, songID string) {
	ctx, span := i.tracer.StartSpan(ctx, "indexer.process")
	defer span.End()
	i.tracer.SetAttributes(span, map[string]interface{}{"song_id": songID})

	song, err := i.source.SongByID(ctx, songID)
	if err != nil {
		i.fail(span, songID, "failed to load song", err)
		return
	}

	description, generated := i.describe.EnsureDescription(ctx, song)
	if generated {
		if err := i.source.SaveDescription(ctx, song.ID, description); err != nil {
			i.fail(span, songID, "failed to save description", err)
			return
		}
		song.Description = description
	}

	vector := i.embedder.Embed(ctx, songText(song))

	if err := i.vectors.UpsertSong(ctx, songProperties(song), vector); err != nil {
		i.fail(span, songID, "failed to upsert vector", err)
		return
	}

	if err := i.lexical.IndexSong(ctx, song); err != nil {
		i.fail(span, songID, "failed to update lexical index", err)
		return
	}

	i.metrics.IncrementIndexJobs("indexed")
	i.log.Debug("song indexed", nil, map[string]interface{}{"song_id": songID})
}

func (i *Indexer) fail(span traceSpan.Span, songID, msg string, err error) {
	i.metrics.IncrementIndexJobs("failed")
	i.tracer.RecordErrorOnSpan(span, err)
	i.log.Error(msg, err, map[string]interface{}{"song_id": songID})
}

// IndexAll reindexes the whole catalog sequentially, pausing between songs.
// It is meant for manual backfills and startup reconciliation, not the hot
// path.
func (i *Indexer) IndexAll(ctx context.Context) error {
	songs, err := i.source.AllSongs(ctx)
	if err != nil {
		return err
	}

	i.log.Info("starting catalog backfill", nil, map[string]interface{}{
		"songs": len(songs),
	})

	for n := range songs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		i.process(ctx, songs[n].ID)

		if i.cfg.BackfillDelay > 0 && n < len(songs)-1 {
			time.Sleep(i.cfg.BackfillDelay)
		}
	}
	return nil
}

// songText flattens the indexable song fields into one embedding input.
func songText(song *catalog.Song) string {
	parts := make([]string, 0, 5)
	parts = append(parts, song.Title, song.Artist.Name)
	if song.Album != nil && song.Album.Title != "" {
		parts = append(parts, song.Album.Title)
	}
	if song.Genre != "" {
		parts = append(parts, song.Genre)
	}
	if song.Description != "" {
		parts = append(parts, song.Description)
	}
	return strings.Join(parts, " ")
}

func songProperties(song *catalog.Song) vectorindex.SongProperties {
	props := vectorindex.SongProperties{
		SongID:      song.ID,
		Title:       song.Title,
		ArtistName:  song.Artist.Name,
		Genre:       song.Genre,
		Description: song.Description,
	}
	if song.Album != nil {
		props.AlbumTitle = song.Album.Title
	}
	return props
}

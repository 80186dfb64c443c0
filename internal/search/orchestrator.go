// Package search answers natural-language queries over the song catalog. The
// primary path embeds the query and searches the vector index; when that path
// fails or finds nothing, a keyword search over the lexical index takes over.
// Callers always get whatever the healthier path could produce.
package search

import (
	"context"
	"strings"
	"time"

	"github.com/melodia-app/melodia/internal/logger"
	"github.com/melodia-app/melodia/internal/metrics"
	"github.com/melodia-app/melodia/internal/tracer"
)

// Orchestrator coordinates the semantic and lexical search paths.
type Orchestrator struct {
	cfg      Config
	embedder Embedder
	vectors  VectorSearcher
	lexical  LexicalSearcher
	hydrator SongHydrator
	metrics  *metrics.Metrics
	tracer   *tracer.Tracer
	log      *logger.Logger
}

// NewOrchestrator constructs the search orchestrator.
func NewOrchestrator(
	cfg Config,
	embedder Embedder,
	vectors VectorSearcher,
	lex LexicalSearcher,
	hydrator SongHydrator,
	m *metrics.Metrics,
	t *tracer.Tracer,
	log *logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		embedder: embedder,
		vectors:  vectors,
		lexical:  lex,
		hydrator: hydrator,
		metrics:  m,
		tracer:   t,
		log:      log,
	}
}

// Search runs a natural-language query and returns up to limit ranked songs.
// A limit of zero means the configured default. The semantic path is tried
// first; any failure or an empty result falls through to the lexical path
// without retrying.
func (o *Orchestrator) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	start := time.Now()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if limit <= 0 {
		limit = o.cfg.DefaultLimit
	}
	if limit > o.cfg.MaxLimit {
		limit = o.cfg.MaxLimit
	}

	ctx, span := o.tracer.StartSpan(ctx, "search")
	defer span.End()
	o.tracer.SetAttributes(span, map[string]interface{}{
		"search.query_length": len(query),
		"search.limit":        limit,
	})

	results, err := o.semanticSearch(ctx, query, limit)
	if err != nil {
		o.log.Warn("semantic search failed, falling back to lexical", err, map[string]interface{}{
			"query": query,
		})
		o.tracer.RecordErrorOnSpan(span, err)
	}
	if err == nil && len(results) > 0 {
		o.metrics.ObserveSearch(SourceSemantic, "ok", start)
		return results, nil
	}

	results, err = o.lexicalSearch(ctx, query, limit)
	if err != nil {
		o.metrics.ObserveSearch(SourceLexical, "error", start)
		o.tracer.RecordErrorOnSpan(span, err)
		return nil, err
	}

	outcome := "ok"
	if len(results) == 0 {
		outcome = "empty"
	}
	o.metrics.ObserveSearch(SourceLexical, outcome, start)
	return results, nil
}

// semanticSearch embeds the query and resolves nearest neighbours from the
// vector index.
func (o *Orchestrator) semanticSearch(ctx context.Context, query string, limit int) ([]Result, error) {
	ctx, span := o.tracer.StartSpan(ctx, "search.semantic")
	defer span.End()

	vector := o.embedder.Embed(ctx, query)

	hits, err := o.vectors.QueryNearest(ctx, vector, limit)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(hits))
	scores := make(map[string]float64, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.SongID)
		scores[hit.SongID] = float64(hit.Score)
	}

	return o.hydrate(ctx, ids, scores, SourceSemantic, limit)
}

// lexicalSearch runs the keyword fallback.
func (o *Orchestrator) lexicalSearch(ctx context.Context, query string, limit int) ([]Result, error) {
	ctx, span := o.tracer.StartSpan(ctx, "search.lexical")
	defer span.End()

	hits, err := o.lexical.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(hits))
	scores := make(map[string]float64, len(hits))
	for _, hit := range hits {
		ids = append(ids, hit.SongID)
		scores[hit.SongID] = hit.Score
	}

	return o.hydrate(ctx, ids, scores, SourceLexical, limit)
}

// hydrate loads songs for the hit IDs, preserving hit order. Songs missing
// from the catalog (deleted since indexing) are skipped silently.
func (o *Orchestrator) hydrate(ctx context.Context, ids []string, scores map[string]float64, source string, limit int) ([]Result, error) {
	songs, err := o.hydrator.SongsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		song, ok := songs[id]
		if !ok {
			continue
		}
		results = append(results, Result{
			Song:   song,
			Score:  scores[id],
			Source: source,
		})
		if len(results) == limit {
			break
		}
	}
	return results, nil
}

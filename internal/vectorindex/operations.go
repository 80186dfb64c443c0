package vectorindex

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	qdrant "github.com/qdrant/go-client/qdrant"
)

// EnsureCollection verifies the song collection exists and creates it if
// missing. Safe to call multiple times — if the collection already exists,
// the function exits early. Distance metric is fixed to cosine.
func (c *Client) EnsureCollection(ctx context.Context) error {
	if c.cfg.Collection == "" {
		return fmt.Errorf("vectorindex: collection name cannot be empty")
	}

	ctx, cancel := c.opContext(ctx)
	defer cancel()

	collections, err := c.api.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("vectorindex: failed to list collections: %w", err)
	}

	if slices.Contains(collections, c.cfg.Collection) {
		return nil
	}

	c.log.Info("creating qdrant collection", nil, map[string]interface{}{
		"collection":  c.cfg.Collection,
		"vector_size": c.cfg.VectorSize,
	})

	req := &qdrant.CreateCollection{
		CollectionName: c.cfg.Collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     c.cfg.VectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	}

	if err := c.api.CreateCollection(ctx, req); err != nil {
		return fmt.Errorf("vectorindex: failed to create collection %q: %w", c.cfg.Collection, err)
	}

	return nil
}

// UpsertSong writes a song vector keyed by its durable songID. The lookup
// before the write is mandatory: Qdrant has no uniqueness constraint on
// payload fields, and a duplicate record per songID would surface the same
// song twice in search results. When a record for the songID exists, its
// point ID is reused so the write updates in place; otherwise a fresh UUID
// point is created.
func (c *Client) UpsertSong(ctx context.Context, props SongProperties, vector []float32) error {
	if props.SongID == "" {
		return fmt.Errorf("vectorindex: song id cannot be empty")
	}
	if len(vector) == 0 {
		return fmt.Errorf("vectorindex: vector cannot be empty")
	}

	pointID, err := c.findPointID(ctx, props.SongID)
	if err != nil {
		return err
	}
	if pointID == "" {
		pointID = uuid.NewString()
	}

	ctx, cancel := c.opContext(ctx)
	defer cancel()

	wait := true
	req := &qdrant.UpsertPoints{
		CollectionName: c.cfg.Collection,
		Points: []*qdrant.PointStruct{{
			Id:      qdrant.NewID(pointID),
			Vectors: qdrant.NewVectors(vector...),
			Payload: qdrant.NewValueMap(props.payload()),
		}},
		Wait: &wait,
	}

	if _, err := c.api.Upsert(ctx, req); err != nil {
		return fmt.Errorf("vectorindex: upsert for song %s failed: %w", props.SongID, err)
	}
	return nil
}

// findPointID resolves the index-local point ID for a songID, or "" when the
// song has not been indexed yet.
func (c *Client) findPointID(ctx context.Context, songID string) (string, error) {
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	limit := uint32(1)
	points, err := c.api.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: c.cfg.Collection,
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{qdrant.NewMatch("song_id", songID)},
		},
		Limit:       &limit,
		WithPayload: qdrant.NewWithPayload(false),
	})
	if err != nil {
		return "", fmt.Errorf("vectorindex: lookup for song %s failed: %w", songID, err)
	}
	if len(points) == 0 {
		return "", nil
	}

	return pointIDString(points[0].Id)
}

// QueryNearest performs a nearest-neighbor query under cosine distance and
// returns hits in descending-similarity order.
func (c *Client) QueryNearest(ctx context.Context, vector []float32, limit int) ([]Hit, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("vectorindex: vector cannot be empty")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("vectorindex: limit must be greater than 0")
	}

	ctx, cancel := c.opContext(ctx)
	defer cancel()

	qLimit := uint64(limit)
	resp, err := c.api.Query(ctx, &qdrant.QueryPoints{
		CollectionName: c.cfg.Collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &qLimit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("vectorindex: search failed: %w", err)
	}

	hits := make([]Hit, 0, len(resp))
	for _, point := range resp {
		songID := point.Payload["song_id"].GetStringValue()
		if songID == "" {
			// Point predates the song_id payload; nothing usable to rank.
			continue
		}
		hits = append(hits, Hit{SongID: songID, Score: point.Score})
	}
	return hits, nil
}

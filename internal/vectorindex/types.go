package vectorindex

// SongProperties is the payload stored next to a song vector. The SongID is
// the durable key; everything else is denormalized metadata kept for
// inspection and filtering.
type SongProperties struct {
	SongID      string
	Title       string
	ArtistName  string
	AlbumTitle  string
	Genre       string
	Description string
}

// payload converts the properties into a Qdrant payload map. The song_id
// field is the lookup key for the dedup-on-upsert path.
func (p SongProperties) payload() map[string]any {
	return map[string]any{
		"song_id":     p.SongID,
		"title":       p.Title,
		"artist_name": p.ArtistName,
		"album_title": p.AlbumTitle,
		"genre":       p.Genre,
		"description": p.Description,
	}
}

// Hit is a single nearest-neighbor match. Score is cosine similarity, higher
// means closer.
type Hit struct {
	SongID string
	Score  float32
}

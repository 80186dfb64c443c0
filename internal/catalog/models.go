package catalog

import (
	"time"
)

// Artist is a catalog artist.
type Artist struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Album is a catalog album.
type Album struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	ArtistID  string    `gorm:"type:uuid;index;not null" json:"artist_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Song is a catalog song. Description is generated lazily by the indexing
// pipeline when missing; it feeds both the vector and lexical indexes.
type Song struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	ArtistID    string    `gorm:"type:uuid;index;not null" json:"artist_id"`
	Artist      Artist    `gorm:"foreignKey:ArtistID" json:"artist"`
	AlbumID     *string   `gorm:"type:uuid;index" json:"album_id,omitempty"`
	Album       *Album    `gorm:"foreignKey:AlbumID" json:"album,omitempty"`
	Genre       string    `gorm:"type:varchar(100);index" json:"genre"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlayEvent records a single play of a song by a user.
type PlayEvent struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   string    `gorm:"type:uuid;index;not null" json:"user_id"`
	SongID   string    `gorm:"type:uuid;index;not null" json:"song_id"`
	PlayedAt time.Time `gorm:"index" json:"played_at"`
}

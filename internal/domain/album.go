package domain

import "time"

const MaxNameLength = 120

type Album struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Subfolder struct {
	ID        string    `json:"id"`
	AlbumID   string    `json:"album_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

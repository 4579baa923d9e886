package domain

import "time"

type ShareRecord struct {
	ID           string     `json:"id"`
	AlbumID      string     `json:"album_id"`
	SubfolderID  *string    `json:"subfolder_id"` // nil means every subfolder of the album
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

// ShareSession is the capability carried inside a verified bearer token.
// It is never persisted.
type ShareSession struct {
	ShareID   string
	ExpiresAt time.Time
}

type ShareMode string

const (
	ShareModeAlbum     ShareMode = "album_all_subfolders"
	ShareModeSubfolder ShareMode = "single_subfolder"
)

// ShareScope is the public description of what a share exposes.
type ShareScope struct {
	ID          string    `json:"id"`
	AlbumID     string    `json:"album_id"`
	SubfolderID *string   `json:"subfolder_id"`
	Mode        ShareMode `json:"mode"`
	Title       string    `json:"title"`
}

func (s *ShareRecord) Scope() *ShareScope {
	scope := &ShareScope{
		ID:          s.ID,
		AlbumID:     s.AlbumID,
		SubfolderID: s.SubfolderID,
		Mode:        ShareModeAlbum,
		Title:       "All photos",
	}
	if s.SubfolderID != nil && *s.SubfolderID != "" {
		scope.Mode = ShareModeSubfolder
		scope.Title = "Selected subfolder"
	}
	return scope
}

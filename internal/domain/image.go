package domain

import "time"

// Variant names one of the stored assets of an uploaded image.
type Variant string

const (
	VariantOriginal  Variant = "original"
	VariantThumbnail Variant = "thumb"
	VariantPreview   Variant = "preview"
)

type Image struct {
	ID           string    `json:"id"`
	AlbumID      string    `json:"album_id"`
	SubfolderID  string    `json:"subfolder_id"`
	Filename     string    `json:"filename"` // as supplied by the uploader, never used for paths
	OriginalExt  string    `json:"original_ext"`
	OriginalPath string    `json:"-"`
	ThumbPath    string    `json:"-"`
	PreviewPath  string    `json:"-"` // empty for images ingested before previews existed
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	CreatedAt    time.Time `json:"created_at"`
}

package http

import (
	"encoding/json"
	"time"

	"proofflow-backend/internal/domain"
)

const (
	thumbURLPrefix    = "/media/thumb/"
	previewURLPrefix  = "/media/preview/"
	originalURLPrefix = "/media/original/"
)

type ImageResponse struct {
	ID          string    `json:"id"`
	AlbumID     string    `json:"album_id"`
	SubfolderID string    `json:"subfolder_id"`
	Filename    string    `json:"filename"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	CreatedAt   time.Time `json:"created_at"`
	ThumbURL    string    `json:"thumb_url"`
	PreviewURL  string    `json:"preview_url"`
	ImageURL    string    `json:"image_url"`
}

func MapImageToResponse(img *domain.Image) ImageResponse {
	return ImageResponse{
		ID:          img.ID,
		AlbumID:     img.AlbumID,
		SubfolderID: img.SubfolderID,
		Filename:    img.Filename,
		Width:       img.Width,
		Height:      img.Height,
		CreatedAt:   img.CreatedAt,
		ThumbURL:    thumbURLPrefix + img.ID,
		PreviewURL:  previewURLPrefix + img.ID,
		ImageURL:    originalURLPrefix + img.ID,
	}
}

func MapImagesToResponse(images []domain.Image) []ImageResponse {
	out := make([]ImageResponse, 0, len(images))
	for i := range images {
		out = append(out, MapImageToResponse(&images[i]))
	}
	return out
}

type ShareResponse struct {
	ID          string     `json:"id"`
	AlbumID     string     `json:"album_id"`
	SubfolderID *string    `json:"subfolder_id"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at"`
	URL         string     `json:"url"`
}

func MapShareToResponse(share *domain.ShareRecord, url string) ShareResponse {
	return ShareResponse{
		ID:          share.ID,
		AlbumID:     share.AlbumID,
		SubfolderID: share.SubfolderID,
		CreatedAt:   share.CreatedAt,
		ExpiresAt:   share.ExpiresAt,
		URL:         url,
	}
}

type ShareAuthResponse struct {
	Token          string    `json:"token"`
	TokenExpiresAt time.Time `json:"token_expires_at"`
}

type createAlbumRequest struct {
	Name string `json:"name"`
}

type createSubfolderRequest struct {
	AlbumID string `json:"album_id"`
	Name    string `json:"name"`
}

type createShareRequest struct {
	AlbumID        string      `json:"album_id"`
	SubfolderID    *string     `json:"subfolder_id"`
	Password       string      `json:"password"`
	ExpiresInHours optionalInt `json:"expires_in_hours"`
}

type shareAuthRequest struct {
	Password string `json:"password"`
}

// optionalInt tells an absent field from an explicit null.
type optionalInt struct {
	Set   bool
	Value *int
}

func (o *optionalInt) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	o.Value = &n
	return nil
}

// OrDefault returns def when the field was absent and the decoded value
// (possibly nil) otherwise.
func (o optionalInt) OrDefault(def int) *int {
	if !o.Set {
		return &def
	}
	return o.Value
}

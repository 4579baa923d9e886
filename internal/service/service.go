package service

import (
	"context"
	"io"
	"os"
	"time"

	"proofflow-backend/internal/domain"
	"proofflow-backend/internal/imaging"
)

type AlbumService interface {
	CreateAlbum(ctx context.Context, name string) (*domain.Album, error)
	ListAlbums(ctx context.Context) ([]domain.Album, error)
	CreateSubfolder(ctx context.Context, albumID, name string) (*domain.Subfolder, error)
	ListSubfolders(ctx context.Context, albumID string) ([]domain.Subfolder, error)
	ListImages(ctx context.Context, albumID, subfolderID string) ([]domain.Image, error)
}

// UploadFile is one part of a multipart upload, read once while ingesting.
type UploadFile struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type ImageStorageService interface {
	// ValidateTarget checks that the subfolder exists and belongs to the album.
	ValidateTarget(ctx context.Context, albumID, subfolderID string) error
	Upload(ctx context.Context, albumID, subfolderID string, file UploadFile) (*domain.Image, error)
}

type CreateShareInput struct {
	AlbumID        string
	SubfolderID    *string
	Password       string
	ExpiresInHours *int // nil means the share never expires
}

type ShareService interface {
	CreateShare(ctx context.Context, in CreateShareInput) (*domain.ShareRecord, string, error) // returns share, public URL, error
	GetShareMeta(ctx context.Context, shareID string) (*domain.ShareScope, error)
	Authenticate(ctx context.Context, shareID, password string) (string, time.Time, error) // returns token, token expiry, error
	ListShareImages(ctx context.Context, share *domain.ShareRecord) ([]domain.Image, error)
}

// MediaFile is an opened media variant. The caller closes File.
type MediaFile struct {
	File         *os.File
	ContentType  string
	DownloadName string // set only for originals
	ModTime      time.Time
}

type MediaService interface {
	GetImage(ctx context.Context, imageID string) (*domain.Image, error)
	// Open must only be called after the caller has authorized access to img.
	Open(img *domain.Image, variant domain.Variant) (*MediaFile, error)
}

// Ingester turns an upload into stored variants.
type Ingester interface {
	Ingest(ctx context.Context, r io.Reader, contentType string, paths imaging.Paths) imaging.Result
}

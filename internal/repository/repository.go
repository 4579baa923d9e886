package repository

import (
	"context"
	"time"

	"proofflow-backend/internal/domain"
)

type AlbumRepository interface {
	Create(ctx context.Context, album *domain.Album) error
	GetByID(ctx context.Context, id string) (*domain.Album, error)
	List(ctx context.Context) ([]domain.Album, error)
}

type SubfolderRepository interface {
	Create(ctx context.Context, subfolder *domain.Subfolder) error
	GetByID(ctx context.Context, id string) (*domain.Subfolder, error)
	ListByAlbum(ctx context.Context, albumID string) ([]domain.Subfolder, error)
}

type ImageRepository interface {
	Create(ctx context.Context, image *domain.Image) error
	GetByID(ctx context.Context, id string) (*domain.Image, error)
	// List returns the album's images newest first, restricted to one
	// subfolder when subfolderID is non-empty.
	List(ctx context.Context, albumID, subfolderID string) ([]domain.Image, error)
	// ExistingIDs reports which of ids have an image record.
	ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error)
}

type ShareRepository interface {
	Create(ctx context.Context, share *domain.ShareRecord) error
	GetByID(ctx context.Context, id string) (*domain.ShareRecord, error)
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

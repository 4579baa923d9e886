package service

import (
	"context"
	"errors"
	"io/fs"
	"mime"
	"path/filepath"

	"proofflow-backend/internal/domain"
	"proofflow-backend/internal/repository"
	"proofflow-backend/internal/storage"
)

var errMediaNotFound = domain.NewError(domain.ErrNotFound, "Not found")

type mediaService struct {
	imageRepo repository.ImageRepository
	store     storage.MediaStore
}

func NewMediaService(imageRepo repository.ImageRepository, store storage.MediaStore) MediaService {
	return &mediaService{
		imageRepo: imageRepo,
		store:     store,
	}
}

func (s *mediaService) GetImage(ctx context.Context, imageID string) (*domain.Image, error) {
	img, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errMediaNotFound
		}
		return nil, err
	}
	return img, nil
}

// Open picks and opens the file for a variant. Previews fall back to the
// thumbnail for images stored before previews were generated.
func (s *mediaService) Open(img *domain.Image, variant domain.Variant) (*MediaFile, error) {
	var (
		path string
		file MediaFile
	)
	switch variant {
	case domain.VariantThumbnail:
		path, file.ContentType = img.ThumbPath, "image/jpeg"
	case domain.VariantPreview:
		path, file.ContentType = img.PreviewPath, "image/jpeg"
		if path == "" {
			path = img.ThumbPath
		}
	case domain.VariantOriginal:
		path = img.OriginalPath
		file.ContentType = mime.TypeByExtension(filepath.Ext(path))
		if file.ContentType == "" {
			file.ContentType = "application/octet-stream"
		}
		file.DownloadName = img.Filename
		if file.DownloadName == "" {
			file.DownloadName = img.ID
		}
	default:
		return nil, errMediaNotFound
	}
	if path == "" {
		return nil, errMediaNotFound
	}

	f, err := s.store.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, storage.ErrOutsideRoot) {
			return nil, errMediaNotFound
		}
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	file.File = f
	file.ModTime = info.ModTime()
	return &file, nil
}

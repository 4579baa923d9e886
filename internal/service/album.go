package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"proofflow-backend/internal/domain"
	"proofflow-backend/internal/logger"
	"proofflow-backend/internal/repository"
	"proofflow-backend/internal/utils"
)

type albumService struct {
	albumRepo     repository.AlbumRepository
	subfolderRepo repository.SubfolderRepository
	imageRepo     repository.ImageRepository
	now           func() time.Time
}

func NewAlbumService(albumRepo repository.AlbumRepository, subfolderRepo repository.SubfolderRepository, imageRepo repository.ImageRepository) AlbumService {
	return &albumService{
		albumRepo:     albumRepo,
		subfolderRepo: subfolderRepo,
		imageRepo:     imageRepo,
		now:           time.Now,
	}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > domain.MaxNameLength {
		return "", domain.NewError(domain.ErrInvalidInput, "Name must be between 1 and 120 characters")
	}
	return name, nil
}

// CreateAlbum relies on the store's unique index for name uniqueness, so two
// concurrent requests for the same name resolve to one album and one conflict.
func (s *albumService) CreateAlbum(ctx context.Context, name string) (*domain.Album, error) {
	logger.EnterMethod("albumService.CreateAlbum", "name", name)

	name, err := validateName(name)
	if err != nil {
		logger.ExitMethodWithError("albumService.CreateAlbum", err)
		return nil, err
	}

	album := &domain.Album{
		ID:        utils.NewAlbumID(),
		Name:      name,
		CreatedAt: s.now().UTC(),
	}
	if err := s.albumRepo.Create(ctx, album); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			err = domain.NewError(domain.ErrConflict, "Album name already exists")
		}
		logger.ExitMethodWithError("albumService.CreateAlbum", err, "name", name)
		return nil, err
	}

	logger.ExitMethod("albumService.CreateAlbum", "albumID", album.ID)
	return album, nil
}

func (s *albumService) ListAlbums(ctx context.Context) ([]domain.Album, error) {
	return s.albumRepo.List(ctx)
}

func (s *albumService) CreateSubfolder(ctx context.Context, albumID, name string) (*domain.Subfolder, error) {
	logger.EnterMethod("albumService.CreateSubfolder", "albumID", albumID, "name", name)

	name, err := validateName(name)
	if err != nil {
		logger.ExitMethodWithError("albumService.CreateSubfolder", err)
		return nil, err
	}

	if _, err := s.albumRepo.GetByID(ctx, albumID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = domain.NewError(domain.ErrNotFound, "Album not found")
		}
		logger.ExitMethodWithError("albumService.CreateSubfolder", err, "albumID", albumID)
		return nil, err
	}

	subfolder := &domain.Subfolder{
		ID:        utils.NewSubfolderID(),
		AlbumID:   albumID,
		Name:      name,
		CreatedAt: s.now().UTC(),
	}
	if err := s.subfolderRepo.Create(ctx, subfolder); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			err = domain.NewError(domain.ErrConflict, "Subfolder name already exists in album")
		}
		logger.ExitMethodWithError("albumService.CreateSubfolder", err, "albumID", albumID)
		return nil, err
	}

	logger.ExitMethod("albumService.CreateSubfolder", "subfolderID", subfolder.ID)
	return subfolder, nil
}

func (s *albumService) ListSubfolders(ctx context.Context, albumID string) ([]domain.Subfolder, error) {
	return s.subfolderRepo.ListByAlbum(ctx, albumID)
}

func (s *albumService) ListImages(ctx context.Context, albumID, subfolderID string) ([]domain.Image, error) {
	return s.imageRepo.List(ctx, albumID, subfolderID)
}

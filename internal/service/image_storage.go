package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"proofflow-backend/internal/domain"
	"proofflow-backend/internal/imaging"
	"proofflow-backend/internal/logger"
	"proofflow-backend/internal/repository"
	"proofflow-backend/internal/storage"
	"proofflow-backend/internal/utils"
)

var (
	errNotAnImage      = domain.NewError(domain.ErrInvalidInput, "Only image uploads are supported")
	errInvalidImage    = domain.NewError(domain.ErrInvalidInput, "Invalid image file")
	errMalformedUpload = domain.NewError(domain.ErrInvalidInput, "Malformed multipart body")
)

type imageStorageService struct {
	albumRepo     repository.AlbumRepository
	subfolderRepo repository.SubfolderRepository
	imageRepo     repository.ImageRepository
	store         storage.MediaStore
	ingester      Ingester
	now           func() time.Time
}

func NewImageStorageService(
	albumRepo repository.AlbumRepository,
	subfolderRepo repository.SubfolderRepository,
	imageRepo repository.ImageRepository,
	store storage.MediaStore,
	ingester Ingester,
) ImageStorageService {
	return &imageStorageService{
		albumRepo:     albumRepo,
		subfolderRepo: subfolderRepo,
		imageRepo:     imageRepo,
		store:         store,
		ingester:      ingester,
		now:           time.Now,
	}
}

func (s *imageStorageService) ValidateTarget(ctx context.Context, albumID, subfolderID string) error {
	if _, err := s.albumRepo.GetByID(ctx, albumID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewError(domain.ErrNotFound, "Album not found")
		}
		return err
	}
	return checkSubfolder(ctx, s.subfolderRepo, albumID, subfolderID)
}

// checkSubfolder fails with "Subfolder not found" unless subfolderID exists
// and belongs to albumID.
func checkSubfolder(ctx context.Context, repo repository.SubfolderRepository, albumID, subfolderID string) error {
	sub, err := repo.GetByID(ctx, subfolderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewError(domain.ErrNotFound, "Subfolder not found")
		}
		return err
	}
	if sub.AlbumID != albumID {
		return domain.NewError(domain.ErrNotFound, "Subfolder not found")
	}
	return nil
}

// Upload ingests one file into an already validated album and subfolder.
// Files of a failed ingestion are removed on a best-effort basis.
func (s *imageStorageService) Upload(ctx context.Context, albumID, subfolderID string, file UploadFile) (*domain.Image, error) {
	logger.EnterMethod("imageStorageService.Upload", "albumID", albumID, "subfolderID", subfolderID, "filename", file.Filename)

	imageID := utils.NewImageID()
	ext := utils.GuessExtension(file.Filename)
	paths := imaging.Paths{
		Original: s.store.OriginalPath(imageID, ext),
		Thumb:    s.store.ThumbPath(imageID),
		Preview:  s.store.PreviewPath(imageID),
	}

	res := s.ingester.Ingest(ctx, file.Body, file.ContentType, paths)
	if !res.OK() {
		err := ingestError(res)
		if res.Status != imaging.StatusUnsupportedType {
			s.cleanup(paths)
		}
		logger.ExitMethodWithError("imageStorageService.Upload", err, "imageID", imageID, "status", res.Status.String(), "cause", res.Err)
		return nil, err
	}

	filename := file.Filename
	if filename == "" {
		filename = imageID + ext
	}
	img := &domain.Image{
		ID:           imageID,
		AlbumID:      albumID,
		SubfolderID:  subfolderID,
		Filename:     filename,
		OriginalExt:  ext,
		OriginalPath: paths.Original,
		ThumbPath:    paths.Thumb,
		PreviewPath:  paths.Preview,
		Width:        res.Width,
		Height:       res.Height,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.imageRepo.Create(ctx, img); err != nil {
		s.cleanup(paths)
		logger.ExitMethodWithError("imageStorageService.Upload", err, "imageID", imageID)
		return nil, err
	}

	logger.ExitMethod("imageStorageService.Upload", "imageID", imageID, "width", img.Width, "height", img.Height)
	return img, nil
}

func ingestError(res imaging.Result) error {
	switch res.Status {
	case imaging.StatusUnsupportedType:
		return errNotAnImage
	case imaging.StatusDecodeFailed:
		return errInvalidImage
	case imaging.StatusReadFailed:
		return fmt.Errorf("%w: %w", errMalformedUpload, res.Err)
	case imaging.StatusCancelled:
		return fmt.Errorf("upload abandoned: %w", res.Err)
	default:
		return fmt.Errorf("store image: %w: %w", domain.ErrUnavailable, res.Err)
	}
}

func (s *imageStorageService) cleanup(paths imaging.Paths) {
	if err := s.store.Remove(paths.Original, paths.Thumb, paths.Preview); err != nil {
		logger.Warn("failed to remove files of failed upload", "original", paths.Original, "error", err)
	}
}

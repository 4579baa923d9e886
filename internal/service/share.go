package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"proofflow-backend/internal/access"
	"proofflow-backend/internal/domain"
	"proofflow-backend/internal/logger"
	"proofflow-backend/internal/repository"
	"proofflow-backend/internal/security"
	"proofflow-backend/internal/utils"
)

const (
	MaxSessionTTL             = 12 * time.Hour
	DefaultShareLifetimeHours = 72
	MaxShareLifetimeHours     = 24 * 30

	minPasswordLength = 4
	maxPasswordLength = 200
	maxPasswordBytes  = 72
)

var errShareNotFound = domain.NewError(domain.ErrNotFound, "Share not found")

type shareService struct {
	albumRepo     repository.AlbumRepository
	subfolderRepo repository.SubfolderRepository
	shareRepo     repository.ShareRepository
	imageRepo     repository.ImageRepository
	authz         *access.Authorizer
	hasher        security.PasswordHasher
	tokens        security.ShareTokenCodec
	shareURL      func(shareID string) string
	now           func() time.Time
}

type ShareServiceConfig struct {
	AlbumRepo     repository.AlbumRepository
	SubfolderRepo repository.SubfolderRepository
	ShareRepo     repository.ShareRepository
	ImageRepo     repository.ImageRepository
	Authorizer    *access.Authorizer
	Hasher        security.PasswordHasher
	Tokens        security.ShareTokenCodec
	ShareURL      func(shareID string) string
	Now           func() time.Time // defaults to time.Now
}

func NewShareService(cfg ShareServiceConfig) ShareService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &shareService{
		albumRepo:     cfg.AlbumRepo,
		subfolderRepo: cfg.SubfolderRepo,
		shareRepo:     cfg.ShareRepo,
		imageRepo:     cfg.ImageRepo,
		authz:         cfg.Authorizer,
		hasher:        cfg.Hasher,
		tokens:        cfg.Tokens,
		shareURL:      cfg.ShareURL,
		now:           now,
	}
}

func validatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < minPasswordLength || n > maxPasswordLength {
		return domain.NewError(domain.ErrInvalidInput, "Password must be between 4 and 200 characters")
	}
	if len(password) > maxPasswordBytes {
		return domain.NewError(domain.ErrInvalidInput, "Password must be at most 72 bytes")
	}
	return nil
}

func (s *shareService) CreateShare(ctx context.Context, in CreateShareInput) (*domain.ShareRecord, string, error) {
	logger.EnterMethod("shareService.CreateShare", "albumID", in.AlbumID)

	share, err := s.createShare(ctx, in)
	if err != nil {
		logger.ExitMethodWithError("shareService.CreateShare", err, "albumID", in.AlbumID)
		return nil, "", err
	}

	logger.ExitMethod("shareService.CreateShare", "shareID", share.ID, "expiresAt", share.ExpiresAt)
	return share, s.shareURL(share.ID), nil
}

func (s *shareService) createShare(ctx context.Context, in CreateShareInput) (*domain.ShareRecord, error) {
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	if in.ExpiresInHours != nil && (*in.ExpiresInHours < 1 || *in.ExpiresInHours > MaxShareLifetimeHours) {
		return nil, domain.NewError(domain.ErrInvalidInput, "expires_in_hours must be between 1 and 720")
	}

	if _, err := s.albumRepo.GetByID(ctx, in.AlbumID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewError(domain.ErrNotFound, "Album not found")
		}
		return nil, err
	}

	var subfolderID *string
	if in.SubfolderID != nil && strings.TrimSpace(*in.SubfolderID) != "" {
		id := *in.SubfolderID
		if err := checkSubfolder(ctx, s.subfolderRepo, in.AlbumID, id); err != nil {
			return nil, err
		}
		subfolderID = &id
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	createdAt := s.now().UTC()
	share := &domain.ShareRecord{
		ID:           utils.NewShareID(),
		AlbumID:      in.AlbumID,
		SubfolderID:  subfolderID,
		PasswordHash: hash,
		CreatedAt:    createdAt,
	}
	if in.ExpiresInHours != nil {
		expiresAt := createdAt.Add(time.Duration(*in.ExpiresInHours) * time.Hour)
		share.ExpiresAt = &expiresAt
	}

	if err := s.shareRepo.Create(ctx, share); err != nil {
		return nil, err
	}
	return share, nil
}

func (s *shareService) GetShareMeta(ctx context.Context, shareID string) (*domain.ShareScope, error) {
	share, err := s.authz.LiveShare(ctx, shareID)
	if err != nil {
		return nil, shareLookupError(err)
	}
	return share.Scope(), nil
}

// Authenticate exchanges a share password for a bearer token. Missing,
// expired and wrong-password cases fail with the same error. The token
// never outlives the share.
func (s *shareService) Authenticate(ctx context.Context, shareID, password string) (string, time.Time, error) {
	logger.EnterMethod("shareService.Authenticate", "shareID", shareID)

	share, err := s.authz.LiveShare(ctx, shareID)
	if err != nil {
		err = shareLookupError(err)
		logger.ExitMethodWithError("shareService.Authenticate", err, "shareID", shareID)
		return "", time.Time{}, err
	}

	if !s.hasher.Verify(password, share.PasswordHash) {
		logger.ExitMethodWithError("shareService.Authenticate", errShareNotFound, "shareID", shareID, "reason", "password_mismatch")
		return "", time.Time{}, errShareNotFound
	}

	ttl := MaxSessionTTL
	if share.ExpiresAt != nil {
		if remaining := share.ExpiresAt.Sub(s.now()); remaining < ttl {
			ttl = remaining
		}
	}

	token, expiresAt, err := s.tokens.Issue(share.ID, ttl)
	if err != nil {
		logger.ExitMethodWithError("shareService.Authenticate", err, "shareID", shareID)
		return "", time.Time{}, err
	}

	logger.ExitMethod("shareService.Authenticate", "shareID", shareID, "tokenExpiresAt", expiresAt)
	return token, expiresAt, nil
}

// ListShareImages lists the images in scope of a share already authorized
// by the caller.
func (s *shareService) ListShareImages(ctx context.Context, share *domain.ShareRecord) ([]domain.Image, error) {
	subfolderID := ""
	if share.SubfolderID != nil {
		subfolderID = *share.SubfolderID
	}
	return s.imageRepo.List(ctx, share.AlbumID, subfolderID)
}

// shareLookupError collapses every share denial into "Share not found" and
// passes store failures through.
func shareLookupError(err error) error {
	var denied *access.DeniedError
	if errors.As(err, &denied) {
		return errShareNotFound
	}
	return err
}

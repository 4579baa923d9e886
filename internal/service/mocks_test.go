package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"proofflow-backend/internal/domain"
	"proofflow-backend/internal/imaging"
)

// MockAlbumRepo
type MockAlbumRepo struct {
	mock.Mock
}

func (m *MockAlbumRepo) Create(ctx context.Context, album *domain.Album) error {
	args := m.Called(ctx, album)
	return args.Error(0)
}
func (m *MockAlbumRepo) GetByID(ctx context.Context, id string) (*domain.Album, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Album), args.Error(1)
}
func (m *MockAlbumRepo) List(ctx context.Context) ([]domain.Album, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Album), args.Error(1)
}

// MockSubfolderRepo
type MockSubfolderRepo struct {
	mock.Mock
}

func (m *MockSubfolderRepo) Create(ctx context.Context, subfolder *domain.Subfolder) error {
	args := m.Called(ctx, subfolder)
	return args.Error(0)
}
func (m *MockSubfolderRepo) GetByID(ctx context.Context, id string) (*domain.Subfolder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subfolder), args.Error(1)
}
func (m *MockSubfolderRepo) ListByAlbum(ctx context.Context, albumID string) ([]domain.Subfolder, error) {
	args := m.Called(ctx, albumID)
	return args.Get(0).([]domain.Subfolder), args.Error(1)
}

// MockImageRepo
type MockImageRepo struct {
	mock.Mock
}

func (m *MockImageRepo) Create(ctx context.Context, image *domain.Image) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}
func (m *MockImageRepo) GetByID(ctx context.Context, id string) (*domain.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Image), args.Error(1)
}
func (m *MockImageRepo) List(ctx context.Context, albumID, subfolderID string) ([]domain.Image, error) {
	args := m.Called(ctx, albumID, subfolderID)
	return args.Get(0).([]domain.Image), args.Error(1)
}
func (m *MockImageRepo) ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(map[string]bool), args.Error(1)
}

// MockShareRepo
type MockShareRepo struct {
	mock.Mock
}

func (m *MockShareRepo) Create(ctx context.Context, share *domain.ShareRecord) error {
	args := m.Called(ctx, share)
	return args.Error(0)
}
func (m *MockShareRepo) GetByID(ctx context.Context, id string) (*domain.ShareRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareRecord), args.Error(1)
}
func (m *MockShareRepo) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockIngester
type MockIngester struct {
	mock.Mock
}

func (m *MockIngester) Ingest(ctx context.Context, r io.Reader, contentType string, paths imaging.Paths) imaging.Result {
	args := m.Called(ctx, r, contentType, paths)
	return args.Get(0).(imaging.Result)
}

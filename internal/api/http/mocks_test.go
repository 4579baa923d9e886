package http

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"proofflow-backend/internal/domain"
	"proofflow-backend/internal/service"
)

// MockAlbumService
type MockAlbumService struct {
	mock.Mock
}

func (m *MockAlbumService) CreateAlbum(ctx context.Context, name string) (*domain.Album, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Album), args.Error(1)
}
func (m *MockAlbumService) ListAlbums(ctx context.Context) ([]domain.Album, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Album), args.Error(1)
}
func (m *MockAlbumService) CreateSubfolder(ctx context.Context, albumID, name string) (*domain.Subfolder, error) {
	args := m.Called(ctx, albumID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subfolder), args.Error(1)
}
func (m *MockAlbumService) ListSubfolders(ctx context.Context, albumID string) ([]domain.Subfolder, error) {
	args := m.Called(ctx, albumID)
	return args.Get(0).([]domain.Subfolder), args.Error(1)
}
func (m *MockAlbumService) ListImages(ctx context.Context, albumID, subfolderID string) ([]domain.Image, error) {
	args := m.Called(ctx, albumID, subfolderID)
	return args.Get(0).([]domain.Image), args.Error(1)
}

// MockImageStorageService
type MockImageStorageService struct {
	mock.Mock
}

func (m *MockImageStorageService) ValidateTarget(ctx context.Context, albumID, subfolderID string) error {
	args := m.Called(ctx, albumID, subfolderID)
	return args.Error(0)
}
func (m *MockImageStorageService) Upload(ctx context.Context, albumID, subfolderID string, file service.UploadFile) (*domain.Image, error) {
	args := m.Called(ctx, albumID, subfolderID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Image), args.Error(1)
}

// MockShareService
type MockShareService struct {
	mock.Mock
}

func (m *MockShareService) CreateShare(ctx context.Context, in service.CreateShareInput) (*domain.ShareRecord, string, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.ShareRecord), args.String(1), args.Error(2)
}
func (m *MockShareService) GetShareMeta(ctx context.Context, shareID string) (*domain.ShareScope, error) {
	args := m.Called(ctx, shareID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareScope), args.Error(1)
}
func (m *MockShareService) Authenticate(ctx context.Context, shareID, password string) (string, time.Time, error) {
	args := m.Called(ctx, shareID, password)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockShareService) ListShareImages(ctx context.Context, share *domain.ShareRecord) ([]domain.Image, error) {
	args := m.Called(ctx, share)
	return args.Get(0).([]domain.Image), args.Error(1)
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

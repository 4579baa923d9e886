package jobs

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"proofflow-backend/internal/config"
	"proofflow-backend/internal/domain"
	"proofflow-backend/internal/storage"
)

type MockShareRepo struct {
	mock.Mock
}

func (m *MockShareRepo) Create(ctx context.Context, share *domain.ShareRecord) error {
	return m.Called(ctx, share).Error(0)
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

type MockImageRepo struct {
	mock.Mock
}

func (m *MockImageRepo) Create(ctx context.Context, image *domain.Image) error {
	return m.Called(ctx, image).Error(0)
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

var testNow = time.Date(2026, 5, 1, 3, 0, 0, 0, time.UTC)

func newTestRunner(t *testing.T) (*JobRunner, *MockShareRepo, *MockImageRepo, *storage.LocalMediaStore) {
	store, err := storage.NewLocalMediaStore(storage.Config{Root: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, store.EnsureLayout())

	shares := new(MockShareRepo)
	images := new(MockImageRepo)
	jr := NewJobRunner(shares, images, store, config.SchedulerConfig{
		ExpiredShareRetentionHours: 24,
		OrphanGraceMinutes:         60,
	})
	jr.now = func() time.Time { return testNow }
	return jr, shares, images, store
}

// writeAged creates a file with the given modification time.
func writeAged(t *testing.T, path string, mtime time.Time) {
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestSweepExpiredShares(t *testing.T) {
	jr, shares, _, _ := newTestRunner(t)
	shares.On("DeleteExpiredBefore", mock.Anything, testNow.Add(-24*time.Hour)).Return(int64(3), nil)

	deleted, err := jr.sweepExpiredShares(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.True(t, jr.SweepExpiredShares())
}

func TestSweepExpiredShares_StoreDown(t *testing.T) {
	jr, shares, _, _ := newTestRunner(t)
	shares.On("DeleteExpiredBefore", mock.Anything, mock.Anything).Return(int64(0), domain.ErrUnavailable)

	assert.False(t, jr.SweepExpiredShares())
}

func TestPurgeOrphanedFiles(t *testing.T) {
	jr, _, images, store := newTestRunner(t)
	old := testNow.Add(-2 * time.Hour)
	fresh := testNow.Add(-time.Minute)

	kept := []string{store.OriginalPath("known", ".jpg"), store.ThumbPath("known"), store.PreviewPath("known")}
	for _, p := range kept {
		writeAged(t, p, old)
	}
	orphans := []string{store.OriginalPath("orphan", ".png"), store.ThumbPath("orphan")}
	for _, p := range orphans {
		writeAged(t, p, old)
	}
	staleTemp := filepath.Join(filepath.Dir(store.ThumbPath("x")), ".tmp-123")
	writeAged(t, staleTemp, old)
	inFlight := store.OriginalPath("uploading", ".jpg")
	writeAged(t, inFlight, fresh)

	images.On("ExistingIDs", mock.Anything, mock.MatchedBy(func(ids []string) bool {
		return len(ids) == 2 && ((ids[0] == "known" && ids[1] == "orphan") || (ids[0] == "orphan" && ids[1] == "known"))
	})).Return(map[string]bool{"known": true}, nil)

	removed, err := jr.purgeOrphanedFiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	for _, p := range kept {
		assert.True(t, exists(p), p)
	}
	for _, p := range orphans {
		assert.False(t, exists(p), p)
	}
	assert.False(t, exists(staleTemp))
	assert.True(t, exists(inFlight))
}

func TestPurgeOrphanedFiles_LookupFails(t *testing.T) {
	jr, _, images, store := newTestRunner(t)
	path := store.ThumbPath("maybe")
	writeAged(t, path, testNow.Add(-2*time.Hour))
	images.On("ExistingIDs", mock.Anything, mock.Anything).Return(nil, domain.ErrUnavailable)

	_, err := jr.purgeOrphanedFiles(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.True(t, exists(path))
}

func TestPurgeOrphanedFiles_Batches(t *testing.T) {
	jr, _, images, store := newTestRunner(t)
	old := testNow.Add(-2 * time.Hour)
	for i := 0; i < existingIDsBatchSize+1; i++ {
		writeAged(t, store.ThumbPath("img-"+strconv.Itoa(i)), old)
	}
	images.On("ExistingIDs", mock.Anything, mock.Anything).Return(map[string]bool{}, nil)

	removed, err := jr.purgeOrphanedFiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, existingIDsBatchSize+1, removed)
	images.AssertNumberOfCalls(t, "ExistingIDs", 2)
}

func TestRun(t *testing.T) {
	jr, shares, _, _ := newTestRunner(t)
	shares.On("DeleteExpiredBefore", mock.Anything, mock.Anything).Return(int64(0), nil)

	ok, err := jr.Run(JobSweepExpiredShares)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = jr.Run(JobPurgeOrphanedFiles)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = jr.Run("mark-overdue")
	assert.Error(t, err)
}

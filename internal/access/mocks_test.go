package access_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"proofflow-backend/internal/domain"
)

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

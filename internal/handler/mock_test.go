package handler_test

import (
	"context"
	"time"

	"classcode/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockSessionService implements handler.SessionService for testing
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(ctx context.Context, label string, ttl time.Duration) (*domain.Session, error) {
	args := m.Called(ctx, label, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionService) Join(ctx context.Context, code string) (*domain.Session, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionService) GetStats(ctx context.Context, code string) (*domain.Session, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

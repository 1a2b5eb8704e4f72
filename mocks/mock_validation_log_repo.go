package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"failfast/internal/domain"
	"failfast/internal/port"
)

// MockValidationLogRepo is a mock implementation of port.ValidationLogRepository.
type MockValidationLogRepo struct {
	mock.Mock
}

func (m *MockValidationLogRepo) Create(ctx context.Context, entry *domain.ValidationLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockValidationLogRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ValidationLogEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ValidationLogEntry), args.Error(1)
}

func (m *MockValidationLogRepo) List(ctx context.Context, filter port.ValidationLogFilter, offset, limit int) ([]domain.ValidationLogEntry, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ValidationLogEntry), args.Int(1), args.Error(2)
}

func (m *MockValidationLogRepo) ListByDocument(ctx context.Context, documentID uuid.UUID, offset, limit int) ([]domain.ValidationLogEntry, int, error) {
	args := m.Called(ctx, documentID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ValidationLogEntry), args.Int(1), args.Error(2)
}

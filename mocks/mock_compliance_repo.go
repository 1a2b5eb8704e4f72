package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"failfast/internal/domain"
)

// MockComplianceRepo is a mock implementation of port.ComplianceRepository.
type MockComplianceRepo struct {
	mock.Mock
}

func (m *MockComplianceRepo) ListActiveEntities(ctx context.Context, companyID uuid.UUID, entityType domain.EntityType, entityIDs []uuid.UUID) ([]domain.Entity, error) {
	args := m.Called(ctx, companyID, entityType, entityIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entity), args.Error(1)
}

func (m *MockComplianceRepo) ListDocuments(ctx context.Context, entityIDs, typeIDs []uuid.UUID) ([]domain.Document, error) {
	args := m.Called(ctx, entityIDs, typeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

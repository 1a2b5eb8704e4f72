package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"failfast/internal/domain"
)

// MockDocumentTypeRepo is a mock implementation of port.DocumentTypeRepository.
type MockDocumentTypeRepo struct {
	mock.Mock
}

func (m *MockDocumentTypeRepo) Create(ctx context.Context, docType *domain.DocumentType) error {
	args := m.Called(ctx, docType)
	return args.Error(0)
}

func (m *MockDocumentTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentType), args.Error(1)
}

func (m *MockDocumentTypeRepo) GetByCode(ctx context.Context, code string) (*domain.DocumentType, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentType), args.Error(1)
}

func (m *MockDocumentTypeRepo) List(ctx context.Context, entityType *domain.EntityType, mandatoryOnly bool, offset, limit int) ([]domain.DocumentType, int, error) {
	args := m.Called(ctx, entityType, mandatoryOnly, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.DocumentType), args.Int(1), args.Error(2)
}

func (m *MockDocumentTypeRepo) ListMandatoryByEntityType(ctx context.Context, entityType domain.EntityType) ([]domain.DocumentType, error) {
	args := m.Called(ctx, entityType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentType), args.Error(1)
}

func (m *MockDocumentTypeRepo) Update(ctx context.Context, docType *domain.DocumentType) error {
	args := m.Called(ctx, docType)
	return args.Error(0)
}

func (m *MockDocumentTypeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentTypeRepo) CountDocuments(ctx context.Context, id uuid.UUID) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

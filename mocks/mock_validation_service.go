package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"failfast/internal/domain"
	"failfast/internal/service"
)

// MockValidationService is a mock implementation of service.ValidationService.
type MockValidationService struct {
	mock.Mock
}

func (m *MockValidationService) Approve(ctx context.Context, documentID uuid.UUID, reason, performedBy string) (*domain.Document, error) {
	args := m.Called(ctx, documentID, reason, performedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockValidationService) Reject(ctx context.Context, documentID uuid.UUID, reason, performedBy string) (*domain.Document, error) {
	args := m.Called(ctx, documentID, reason, performedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockValidationService) ProcessWorkflowCallback(ctx context.Context, input *service.WorkflowCallbackInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

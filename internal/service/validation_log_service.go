package service

import (
	"context"

	"github.com/google/uuid"

	"failfast/internal/domain"
	"failfast/internal/port"
)

// ValidationLogService is the read-only surface over the audit trail.
type ValidationLogService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ValidationLogEntry, error)
	List(ctx context.Context, filter port.ValidationLogFilter, offset, limit int) ([]domain.ValidationLogEntry, int, error)
}

type validationLogService struct {
	logRepo port.ValidationLogRepository
}

// NewValidationLogService creates a new ValidationLogService implementation.
func NewValidationLogService(logRepo port.ValidationLogRepository) ValidationLogService {
	return &validationLogService{logRepo: logRepo}
}

func (s *validationLogService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ValidationLogEntry, error) {
	return s.logRepo.GetByID(ctx, id)
}

func (s *validationLogService) List(ctx context.Context, filter port.ValidationLogFilter, offset, limit int) ([]domain.ValidationLogEntry, int, error) {
	return s.logRepo.List(ctx, filter, offset, limit)
}

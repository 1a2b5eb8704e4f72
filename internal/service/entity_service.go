package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"failfast/internal/domain"
	"failfast/internal/port"
)

// CreateEntityInput is the DTO for registering a business entity.
type CreateEntityInput struct {
	CompanyID  uuid.UUID
	EntityType domain.EntityType
	EntityCode string
	EntityName string
	Metadata   json.RawMessage
}

// UpdateEntityInput is the DTO for updating an entity. EntityType is fixed at
// creation.
type UpdateEntityInput struct {
	ID         uuid.UUID
	EntityCode string
	EntityName string
	Metadata   json.RawMessage
	IsActive   bool
}

// EntityService manages the business objects documents attach to.
type EntityService interface {
	Create(ctx context.Context, input *CreateEntityInput) (*domain.Entity, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entity, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, entityType *domain.EntityType, offset, limit int) ([]domain.Entity, int, error)
	Update(ctx context.Context, input *UpdateEntityInput) (*domain.Entity, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type entityService struct {
	companyRepo port.CompanyRepository
	entityRepo  port.EntityRepository
}

// NewEntityService creates a new EntityService implementation.
func NewEntityService(companyRepo port.CompanyRepository, entityRepo port.EntityRepository) EntityService {
	return &entityService{companyRepo: companyRepo, entityRepo: entityRepo}
}

func (s *entityService) Create(ctx context.Context, input *CreateEntityInput) (*domain.Entity, error) {
	if !domain.ValidEntityTypes[input.EntityType] {
		return nil, domain.ErrInvalidEntityType
	}
	company, err := s.companyRepo.GetByID(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}
	if !company.IsActive {
		return nil, domain.ErrCompanyInactive
	}

	entity := &domain.Entity{
		ID:         uuid.New(),
		CompanyID:  input.CompanyID,
		EntityType: input.EntityType,
		EntityCode: strings.TrimSpace(input.EntityCode),
		EntityName: strings.TrimSpace(input.EntityName),
		Metadata:   input.Metadata,
		IsActive:   true,
	}
	if err := s.entityRepo.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *entityService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entity, error) {
	return s.entityRepo.GetByID(ctx, id)
}

func (s *entityService) ListByCompany(ctx context.Context, companyID uuid.UUID, entityType *domain.EntityType, offset, limit int) ([]domain.Entity, int, error) {
	if entityType != nil && !domain.ValidEntityTypes[*entityType] {
		return nil, 0, domain.ErrInvalidEntityType
	}
	if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
		return nil, 0, err
	}
	return s.entityRepo.ListByCompany(ctx, companyID, entityType, offset, limit)
}

func (s *entityService) Update(ctx context.Context, input *UpdateEntityInput) (*domain.Entity, error) {
	entity, err := s.entityRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	entity.EntityCode = strings.TrimSpace(input.EntityCode)
	entity.EntityName = strings.TrimSpace(input.EntityName)
	entity.Metadata = input.Metadata
	entity.IsActive = input.IsActive
	if err := s.entityRepo.Update(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *entityService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.entityRepo.Delete(ctx, id)
}

package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"failfast/internal/domain"
	"failfast/internal/port"
)

// CreateCompanyInput is the DTO for registering a tenant company.
type CreateCompanyInput struct {
	Name  string
	TaxID string
}

// UpdateCompanyInput is the DTO for updating a company.
type UpdateCompanyInput struct {
	ID       uuid.UUID
	Name     string
	TaxID    string
	IsActive bool
}

// CompanyService manages tenant companies.
type CompanyService interface {
	Create(ctx context.Context, input *CreateCompanyInput) (*domain.Company, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	List(ctx context.Context, offset, limit int) ([]domain.Company, int, error)
	Update(ctx context.Context, input *UpdateCompanyInput) (*domain.Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type companyService struct {
	companyRepo port.CompanyRepository
}

// NewCompanyService creates a new CompanyService implementation.
func NewCompanyService(companyRepo port.CompanyRepository) CompanyService {
	return &companyService{companyRepo: companyRepo}
}

func (s *companyService) Create(ctx context.Context, input *CreateCompanyInput) (*domain.Company, error) {
	company := &domain.Company{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(input.Name),
		TaxID:    strings.TrimSpace(input.TaxID),
		IsActive: true,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	return s.companyRepo.GetByID(ctx, id)
}

func (s *companyService) List(ctx context.Context, offset, limit int) ([]domain.Company, int, error) {
	return s.companyRepo.List(ctx, offset, limit)
}

func (s *companyService) Update(ctx context.Context, input *UpdateCompanyInput) (*domain.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	company.Name = strings.TrimSpace(input.Name)
	company.TaxID = strings.TrimSpace(input.TaxID)
	company.IsActive = input.IsActive
	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.companyRepo.Delete(ctx, id)
}

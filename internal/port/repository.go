package port

import (
	"context"

	"github.com/google/uuid"

	"failfast/internal/domain"
)

// CompanyRepository defines the contract for company persistence.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	List(ctx context.Context, offset, limit int) ([]domain.Company, int, error)
	Update(ctx context.Context, company *domain.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// EntityRepository defines the contract for entity persistence. Query methods
// include companyID where the operation is company-scoped.
type EntityRepository interface {
	Create(ctx context.Context, entity *domain.Entity) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entity, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, entityType *domain.EntityType, offset, limit int) ([]domain.Entity, int, error)
	Update(ctx context.Context, entity *domain.Entity) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DocumentTypeRepository defines the contract for the document type catalog.
type DocumentTypeRepository interface {
	Create(ctx context.Context, docType *domain.DocumentType) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentType, error)
	GetByCode(ctx context.Context, code string) (*domain.DocumentType, error)
	List(ctx context.Context, entityType *domain.EntityType, mandatoryOnly bool, offset, limit int) ([]domain.DocumentType, int, error)
	ListMandatoryByEntityType(ctx context.Context, entityType domain.EntityType) ([]domain.DocumentType, error)
	Update(ctx context.Context, docType *domain.DocumentType) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountDocuments(ctx context.Context, id uuid.UUID) (int, error)
}

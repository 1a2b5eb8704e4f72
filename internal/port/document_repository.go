package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"failfast/internal/domain"
)

// DocumentFilter narrows document listings.
type DocumentFilter struct {
	CompanyID      *uuid.UUID
	EntityID       *uuid.UUID
	DocumentTypeID *uuid.UUID
	Status         *domain.ValidationStatus
}

// TransitionParams describes one validation state transition. The repository
// applies it as a compare-and-swap on validation_status together with the
// audit entry insert, in a single transaction: if the document is no longer in
// FromStatus, the whole operation fails with ErrDocumentAlreadyProcessed and
// nothing is written.
type TransitionParams struct {
	DocumentID  uuid.UUID
	FromStatus  domain.ValidationStatus
	ToStatus    domain.ValidationStatus
	Reason      string
	ValidatedAt time.Time
	Entry       *domain.ValidationLogEntry
}

// DocumentRepository defines the contract for document persistence.
type DocumentRepository interface {
	// CreateWithLog inserts the document row and its uploaded audit entry in
	// one transaction.
	CreateWithLog(ctx context.Context, doc *domain.Document, entry *domain.ValidationLogEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, filter DocumentFilter, offset, limit int) ([]domain.Document, int, error)
	Transition(ctx context.Context, params TransitionParams) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ValidationLogFilter narrows audit log listings.
type ValidationLogFilter struct {
	DocumentID  *uuid.UUID
	Action      *domain.LogAction
	PerformedBy *string
}

// ValidationLogRepository defines the contract for the append-only audit log.
// There are intentionally no update or delete methods.
type ValidationLogRepository interface {
	Create(ctx context.Context, entry *domain.ValidationLogEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ValidationLogEntry, error)
	List(ctx context.Context, filter ValidationLogFilter, offset, limit int) ([]domain.ValidationLogEntry, int, error)
	ListByDocument(ctx context.Context, documentID uuid.UUID, offset, limit int) ([]domain.ValidationLogEntry, int, error)
}

// ComplianceRepository provides the read-only views the bulk compliance check
// evaluates. Both methods are point-in-time queries with no side effects.
type ComplianceRepository interface {
	// ListActiveEntities returns the active entities of entityType under the
	// company, optionally restricted to entityIDs.
	ListActiveEntities(ctx context.Context, companyID uuid.UUID, entityType domain.EntityType, entityIDs []uuid.UUID) ([]domain.Entity, error)
	// ListDocuments returns every document of the given types for the given
	// entities, ordered by uploaded_at ascending.
	ListDocuments(ctx context.Context, entityIDs, typeIDs []uuid.UUID) ([]domain.Document, error)
}

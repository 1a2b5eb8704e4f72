package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"failfast/internal/domain"
	"failfast/internal/port"
)

type complianceRepo struct {
	db *sqlx.DB
}

// NewComplianceRepo creates the read-only repository backing the bulk
// compliance check.
func NewComplianceRepo(db *sqlx.DB) port.ComplianceRepository {
	return &complianceRepo{db: db}
}

func (r *complianceRepo) ListActiveEntities(ctx context.Context, companyID uuid.UUID, entityType domain.EntityType, entityIDs []uuid.UUID) ([]domain.Entity, error) {
	var entities []domain.Entity

	if len(entityIDs) == 0 {
		err := r.db.SelectContext(ctx, &entities,
			`SELECT * FROM entities
			 WHERE company_id = $1 AND entity_type = $2 AND is_active = TRUE
			 ORDER BY entity_code`,
			companyID, entityType)
		if err != nil {
			return nil, fmt.Errorf("complianceRepo.ListActiveEntities: %w", err)
		}
		return entities, nil
	}

	query, args, err := sqlx.In(
		`SELECT * FROM entities
		 WHERE company_id = ? AND entity_type = ? AND is_active = TRUE AND id IN (?)
		 ORDER BY entity_code`,
		companyID, entityType, entityIDs)
	if err != nil {
		return nil, fmt.Errorf("complianceRepo.ListActiveEntities in: %w", err)
	}
	query = r.db.Rebind(query)
	if err := r.db.SelectContext(ctx, &entities, query, args...); err != nil {
		return nil, fmt.Errorf("complianceRepo.ListActiveEntities: %w", err)
	}
	return entities, nil
}

func (r *complianceRepo) ListDocuments(ctx context.Context, entityIDs, typeIDs []uuid.UUID) ([]domain.Document, error) {
	if len(entityIDs) == 0 || len(typeIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(
		`SELECT * FROM documents
		 WHERE entity_id IN (?) AND document_type_id IN (?)
		 ORDER BY uploaded_at ASC`,
		entityIDs, typeIDs)
	if err != nil {
		return nil, fmt.Errorf("complianceRepo.ListDocuments in: %w", err)
	}
	query = r.db.Rebind(query)

	var docs []domain.Document
	if err := r.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, fmt.Errorf("complianceRepo.ListDocuments: %w", err)
	}
	return docs, nil
}

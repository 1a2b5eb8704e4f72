package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"failfast/internal/domain"
	"failfast/internal/port"
)

type documentTypeRepo struct {
	db *sqlx.DB
}

// NewDocumentTypeRepo creates a new PostgreSQL-backed DocumentTypeRepository.
func NewDocumentTypeRepo(db *sqlx.DB) port.DocumentTypeRepository {
	return &documentTypeRepo{db: db}
}

func (r *documentTypeRepo) Create(ctx context.Context, docType *domain.DocumentType) error {
	docType.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO document_types (
			id, code, name, is_mandatory, requires_issue_date, requires_expiration_date,
			uses_n8n_workflow, n8n_webhook_url, entity_type, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		docType.ID, docType.Code, docType.Name, docType.IsMandatory,
		docType.RequiresIssueDate, docType.RequiresExpirationDate,
		docType.UsesN8NWorkflow, docType.N8NWebhookURL, docType.EntityType, docType.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "code") {
			return domain.ErrDuplicateTypeCode
		}
		return fmt.Errorf("documentTypeRepo.Create: %w", err)
	}
	return nil
}

func (r *documentTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentType, error) {
	var docType domain.DocumentType
	err := r.db.GetContext(ctx, &docType, "SELECT * FROM document_types WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentTypeNotFound
		}
		return nil, fmt.Errorf("documentTypeRepo.GetByID: %w", err)
	}
	return &docType, nil
}

func (r *documentTypeRepo) GetByCode(ctx context.Context, code string) (*domain.DocumentType, error) {
	var docType domain.DocumentType
	err := r.db.GetContext(ctx, &docType, "SELECT * FROM document_types WHERE code = $1", code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentTypeNotFound
		}
		return nil, fmt.Errorf("documentTypeRepo.GetByCode: %w", err)
	}
	return &docType, nil
}

func (r *documentTypeRepo) List(ctx context.Context, entityType *domain.EntityType, mandatoryOnly bool, offset, limit int) ([]domain.DocumentType, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	if entityType != nil {
		args = append(args, *entityType)
		where += fmt.Sprintf(" AND entity_type = $%d", len(args))
	}
	if mandatoryOnly {
		where += " AND is_mandatory = TRUE"
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM document_types "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("documentTypeRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM document_types %s ORDER BY entity_type, name LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var docTypes []domain.DocumentType
	if err := r.db.SelectContext(ctx, &docTypes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("documentTypeRepo.List: %w", err)
	}
	return docTypes, total, nil
}

func (r *documentTypeRepo) ListMandatoryByEntityType(ctx context.Context, entityType domain.EntityType) ([]domain.DocumentType, error) {
	var docTypes []domain.DocumentType
	err := r.db.SelectContext(ctx, &docTypes,
		`SELECT * FROM document_types
		 WHERE entity_type = $1 AND is_mandatory = TRUE
		 ORDER BY name`, entityType)
	if err != nil {
		return nil, fmt.Errorf("documentTypeRepo.ListMandatoryByEntityType: %w", err)
	}
	return docTypes, nil
}

func (r *documentTypeRepo) Update(ctx context.Context, docType *domain.DocumentType) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE document_types SET
			code = $1, name = $2, is_mandatory = $3, requires_issue_date = $4,
			requires_expiration_date = $5, uses_n8n_workflow = $6, n8n_webhook_url = $7,
			entity_type = $8
		 WHERE id = $9`,
		docType.Code, docType.Name, docType.IsMandatory, docType.RequiresIssueDate,
		docType.RequiresExpirationDate, docType.UsesN8NWorkflow, docType.N8NWebhookURL,
		docType.EntityType, docType.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "code") {
			return domain.ErrDuplicateTypeCode
		}
		return fmt.Errorf("documentTypeRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentTypeNotFound
	}
	return nil
}

func (r *documentTypeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM document_types WHERE id = $1", id)
	if err != nil {
		// Documents reference types with ON DELETE RESTRICT.
		if strings.Contains(err.Error(), "violates foreign key constraint") {
			return domain.ErrDocumentTypeInUse
		}
		return fmt.Errorf("documentTypeRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentTypeNotFound
	}
	return nil
}

func (r *documentTypeRepo) CountDocuments(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM documents WHERE document_type_id = $1", id)
	if err != nil {
		return 0, fmt.Errorf("documentTypeRepo.CountDocuments: %w", err)
	}
	return count, nil
}

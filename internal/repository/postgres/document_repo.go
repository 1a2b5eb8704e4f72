package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"failfast/internal/domain"
	"failfast/internal/port"
)

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

const insertLogQuery = `INSERT INTO document_validation_logs (
	id, document_id, action, previous_status, new_status, reason, performed_by, metadata, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func insertLogArgs(entry *domain.ValidationLogEntry) []interface{} {
	if entry.Metadata == nil {
		entry.Metadata = []byte("{}")
	}
	return []interface{}{
		entry.ID, entry.DocumentID, entry.Action, entry.PreviousStatus,
		entry.NewStatus, entry.Reason, entry.PerformedBy, entry.Metadata, entry.CreatedAt,
	}
}

func (r *documentRepo) CreateWithLog(ctx context.Context, doc *domain.Document, entry *domain.ValidationLogEntry) error {
	now := time.Now().UTC()
	doc.UploadedAt = now
	entry.CreatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("documentRepo.CreateWithLog begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (
			id, company_id, entity_id, document_type_id,
			file_name, file_size, mime_type, s3_bucket, s3_key, s3_region,
			issue_date, expiration_date, validation_status, validation_reason,
			uploaded_by, uploaded_at, validated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14,
			$15, $16, $17
		)`,
		doc.ID, doc.CompanyID, doc.EntityID, doc.DocumentTypeID,
		doc.FileName, doc.FileSize, doc.MimeType, doc.S3Bucket, doc.S3Key, doc.S3Region,
		doc.IssueDate, doc.ExpirationDate, doc.ValidationStatus, doc.ValidationReason,
		doc.UploadedBy, doc.UploadedAt, doc.ValidatedAt)
	if err != nil {
		return fmt.Errorf("documentRepo.CreateWithLog insert document: %w", err)
	}

	if _, err = tx.ExecContext(ctx, insertLogQuery, insertLogArgs(entry)...); err != nil {
		return fmt.Errorf("documentRepo.CreateWithLog insert log: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("documentRepo.CreateWithLog commit: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc, "SELECT * FROM documents WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) List(ctx context.Context, filter port.DocumentFilter, offset, limit int) ([]domain.Document, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	add := func(clause string, value interface{}) {
		args = append(args, value)
		where += fmt.Sprintf(" AND %s = $%d", clause, len(args))
	}
	if filter.CompanyID != nil {
		add("company_id", *filter.CompanyID)
	}
	if filter.EntityID != nil {
		add("entity_id", *filter.EntityID)
	}
	if filter.DocumentTypeID != nil {
		add("document_type_id", *filter.DocumentTypeID)
	}
	if filter.Status != nil {
		add("validation_status", *filter.Status)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM documents "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM documents %s ORDER BY uploaded_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var docs []domain.Document
	if err := r.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.List: %w", err)
	}
	return docs, total, nil
}

// Transition applies a validation state transition as a compare-and-swap on
// validation_status and appends the audit entry in the same transaction. When
// the document is not in FromStatus anymore (a concurrent transition won the
// race) nothing is written and ErrDocumentAlreadyProcessed is returned.
func (r *documentRepo) Transition(ctx context.Context, params port.TransitionParams) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("documentRepo.Transition begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		`UPDATE documents SET
			validation_status = $1, validation_reason = $2, validated_at = $3
		 WHERE id = $4 AND validation_status = $5`,
		params.ToStatus, params.Reason, params.ValidatedAt,
		params.DocumentID, params.FromStatus)
	if err != nil {
		return fmt.Errorf("documentRepo.Transition update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentAlreadyProcessed
	}

	entry := params.Entry
	entry.CreatedAt = time.Now().UTC()
	if _, err = tx.ExecContext(ctx, insertLogQuery, insertLogArgs(entry)...); err != nil {
		return fmt.Errorf("documentRepo.Transition insert log: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("documentRepo.Transition commit: %w", err)
	}
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

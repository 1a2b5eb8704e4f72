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

type validationLogRepo struct {
	db *sqlx.DB
}

// NewValidationLogRepo creates a new PostgreSQL-backed ValidationLogRepository.
// The table is append-only; this repository exposes no update or delete.
func NewValidationLogRepo(db *sqlx.DB) port.ValidationLogRepository {
	return &validationLogRepo{db: db}
}

func (r *validationLogRepo) Create(ctx context.Context, entry *domain.ValidationLogEntry) error {
	entry.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, insertLogQuery, insertLogArgs(entry)...)
	if err != nil {
		return fmt.Errorf("validationLogRepo.Create: %w", err)
	}
	return nil
}

func (r *validationLogRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ValidationLogEntry, error) {
	var entry domain.ValidationLogEntry
	err := r.db.GetContext(ctx, &entry, "SELECT * FROM document_validation_logs WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrLogEntryNotFound
		}
		return nil, fmt.Errorf("validationLogRepo.GetByID: %w", err)
	}
	return &entry, nil
}

func (r *validationLogRepo) List(ctx context.Context, filter port.ValidationLogFilter, offset, limit int) ([]domain.ValidationLogEntry, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	add := func(column string, value interface{}) {
		args = append(args, value)
		where += fmt.Sprintf(" AND %s = $%d", column, len(args))
	}
	if filter.DocumentID != nil {
		add("document_id", *filter.DocumentID)
	}
	if filter.Action != nil {
		add("action", *filter.Action)
	}
	if filter.PerformedBy != nil {
		add("performed_by", *filter.PerformedBy)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM document_validation_logs "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("validationLogRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM document_validation_logs %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var entries []domain.ValidationLogEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("validationLogRepo.List: %w", err)
	}
	return entries, total, nil
}

func (r *validationLogRepo) ListByDocument(ctx context.Context, documentID uuid.UUID, offset, limit int) ([]domain.ValidationLogEntry, int, error) {
	docID := documentID
	return r.List(ctx, port.ValidationLogFilter{DocumentID: &docID}, offset, limit)
}

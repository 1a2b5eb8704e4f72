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

type entityRepo struct {
	db *sqlx.DB
}

// NewEntityRepo creates a new PostgreSQL-backed EntityRepository.
func NewEntityRepo(db *sqlx.DB) port.EntityRepository {
	return &entityRepo{db: db}
}

func (r *entityRepo) Create(ctx context.Context, entity *domain.Entity) error {
	entity.CreatedAt = time.Now().UTC()
	if entity.Metadata == nil {
		entity.Metadata = []byte("{}")
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO entities (id, company_id, entity_type, entity_code, entity_name, metadata, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entity.ID, entity.CompanyID, entity.EntityType, entity.EntityCode,
		entity.EntityName, entity.Metadata, entity.IsActive, entity.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateEntityCode
		}
		return fmt.Errorf("entityRepo.Create: %w", err)
	}
	return nil
}

func (r *entityRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entity, error) {
	var entity domain.Entity
	err := r.db.GetContext(ctx, &entity, "SELECT * FROM entities WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEntityNotFound
		}
		return nil, fmt.Errorf("entityRepo.GetByID: %w", err)
	}
	return &entity, nil
}

func (r *entityRepo) ListByCompany(ctx context.Context, companyID uuid.UUID, entityType *domain.EntityType, offset, limit int) ([]domain.Entity, int, error) {
	where := "WHERE company_id = $1"
	args := []interface{}{companyID}
	if entityType != nil {
		where += " AND entity_type = $2"
		args = append(args, *entityType)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM entities "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("entityRepo.ListByCompany count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM entities %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var entities []domain.Entity
	if err := r.db.SelectContext(ctx, &entities, query, args...); err != nil {
		return nil, 0, fmt.Errorf("entityRepo.ListByCompany: %w", err)
	}
	return entities, total, nil
}

func (r *entityRepo) Update(ctx context.Context, entity *domain.Entity) error {
	if entity.Metadata == nil {
		entity.Metadata = []byte("{}")
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE entities SET entity_code = $1, entity_name = $2, metadata = $3, is_active = $4
		 WHERE id = $5`,
		entity.EntityCode, entity.EntityName, entity.Metadata, entity.IsActive, entity.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateEntityCode
		}
		return fmt.Errorf("entityRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrEntityNotFound
	}
	return nil
}

func (r *entityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM entities WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("entityRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrEntityNotFound
	}
	return nil
}

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

type companyRepo struct {
	db *sqlx.DB
}

// NewCompanyRepo creates a new PostgreSQL-backed CompanyRepository.
func NewCompanyRepo(db *sqlx.DB) port.CompanyRepository {
	return &companyRepo{db: db}
}

func (r *companyRepo) Create(ctx context.Context, company *domain.Company) error {
	company.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO companies (id, name, tax_id, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		company.ID, company.Name, company.TaxID, company.IsActive, company.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "tax_id") {
			return domain.ErrDuplicateTaxID
		}
		return fmt.Errorf("companyRepo.Create: %w", err)
	}
	return nil
}

func (r *companyRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	var company domain.Company
	err := r.db.GetContext(ctx, &company, "SELECT * FROM companies WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("companyRepo.GetByID: %w", err)
	}
	return &company, nil
}

func (r *companyRepo) List(ctx context.Context, offset, limit int) ([]domain.Company, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM companies"); err != nil {
		return nil, 0, fmt.Errorf("companyRepo.List count: %w", err)
	}

	var companies []domain.Company
	err := r.db.SelectContext(ctx, &companies,
		"SELECT * FROM companies ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("companyRepo.List: %w", err)
	}
	return companies, total, nil
}

func (r *companyRepo) Update(ctx context.Context, company *domain.Company) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE companies SET name = $1, tax_id = $2, is_active = $3 WHERE id = $4",
		company.Name, company.TaxID, company.IsActive, company.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "tax_id") {
			return domain.ErrDuplicateTaxID
		}
		return fmt.Errorf("companyRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

func (r *companyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM companies WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("companyRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

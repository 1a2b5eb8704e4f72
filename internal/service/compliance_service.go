package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"failfast/internal/domain"
	"failfast/internal/port"
)

// CheckComplianceInput scopes a bulk compliance check. An empty EntityIDs
// means every active entity of EntityType under the company.
type CheckComplianceInput struct {
	CompanyID  uuid.UUID
	EntityType domain.EntityType
	EntityIDs  []uuid.UUID
}

// ComplianceService evaluates entities against the mandatory document type
// catalog. The check is a point-in-time read with no side effects.
type ComplianceService interface {
	CheckCompliance(ctx context.Context, input *CheckComplianceInput) (*domain.ComplianceReport, error)
}

type complianceService struct {
	companyRepo    port.CompanyRepository
	typeRepo       port.DocumentTypeRepository
	complianceRepo port.ComplianceRepository
}

// NewComplianceService creates a new ComplianceService implementation.
func NewComplianceService(
	companyRepo port.CompanyRepository,
	typeRepo port.DocumentTypeRepository,
	complianceRepo port.ComplianceRepository,
) ComplianceService {
	return &complianceService{
		companyRepo:    companyRepo,
		typeRepo:       typeRepo,
		complianceRepo: complianceRepo,
	}
}

func (s *complianceService) CheckCompliance(ctx context.Context, input *CheckComplianceInput) (*domain.ComplianceReport, error) {
	if !domain.ValidEntityTypes[input.EntityType] {
		return nil, domain.ErrInvalidEntityType
	}
	if _, err := s.companyRepo.GetByID(ctx, input.CompanyID); err != nil {
		return nil, err
	}

	mandatoryTypes, err := s.typeRepo.ListMandatoryByEntityType(ctx, input.EntityType)
	if err != nil {
		return nil, fmt.Errorf("listing mandatory types: %w", err)
	}

	entities, err := s.complianceRepo.ListActiveEntities(ctx, input.CompanyID, input.EntityType, input.EntityIDs)
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}

	report := &domain.ComplianceReport{Errors: []domain.ComplianceIssue{}}
	if len(mandatoryTypes) == 0 || len(entities) == 0 {
		return report, nil
	}

	entityIDs := make([]uuid.UUID, len(entities))
	for i, e := range entities {
		entityIDs[i] = e.ID
	}
	typeIDs := make([]uuid.UUID, len(mandatoryTypes))
	for i, t := range mandatoryTypes {
		typeIDs[i] = t.ID
	}

	docs, err := s.complianceRepo.ListDocuments(ctx, entityIDs, typeIDs)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	// Documents arrive ordered by uploaded_at ascending, so the last element
	// of each group is the most recent upload.
	type pair struct {
		entityID uuid.UUID
		typeID   uuid.UUID
	}
	grouped := map[pair][]domain.Document{}
	for _, d := range docs {
		k := pair{d.EntityID, d.DocumentTypeID}
		grouped[k] = append(grouped[k], d)
	}

	now := time.Now().UTC()
	flagged := map[uuid.UUID]bool{}
	for _, entity := range entities {
		for _, docType := range mandatoryTypes {
			issues := evaluate(&entity, &docType, grouped[pair{entity.ID, docType.ID}], now)
			if len(issues) > 0 {
				flagged[entity.ID] = true
				report.Errors = append(report.Errors, issues...)
			}
		}
	}

	report.ValidatedEntities = len(flagged)
	report.TotalErrors = len(report.Errors)
	return report, nil
}

// evaluate checks one entity against one mandatory type. docs are that pair's
// documents ordered by uploaded_at ascending.
func evaluate(entity *domain.Entity, docType *domain.DocumentType, docs []domain.Document, now time.Time) []domain.ComplianceIssue {
	issue := func(errType domain.ComplianceErrorType, msg string) domain.ComplianceIssue {
		return domain.ComplianceIssue{
			EntityID:     entity.ID,
			EntityCode:   entity.EntityCode,
			DocumentType: docType.Code,
			ErrorType:    errType,
			Message:      msg,
		}
	}

	var issues []domain.ComplianceIssue

	if len(docs) == 0 {
		return append(issues, issue(domain.ComplianceMissing,
			fmt.Sprintf("no %s document on file", docType.Code)))
	}

	allRejected := true
	var latestApproved *domain.Document
	for i := range docs {
		d := &docs[i]
		if d.ValidationStatus != domain.ValidationStatusRejected {
			allRejected = false
		}
		if d.ValidationStatus == domain.ValidationStatusApproved {
			latestApproved = d
		}
		if d.IssueDate != nil && d.IssueDate.After(now) {
			issues = append(issues, issue(domain.ComplianceFutureIssueDate,
				fmt.Sprintf("%s has an issue date in the future (%s)", docType.Code, d.IssueDate.Format("2006-01-02"))))
		}
	}

	if allRejected {
		issues = append(issues, issue(domain.ComplianceMissing,
			fmt.Sprintf("every %s document on file was rejected", docType.Code)))
	}

	latest := &docs[len(docs)-1]
	if latest.ValidationStatus == domain.ValidationStatusRejected {
		issues = append(issues, issue(domain.ComplianceRejectedActive,
			fmt.Sprintf("most recent %s document was rejected", docType.Code)))
	}

	if latestApproved != nil && latestApproved.ExpirationDate != nil && latestApproved.ExpirationDate.Before(now) {
		issues = append(issues, issue(domain.ComplianceExpired,
			fmt.Sprintf("%s expired on %s", docType.Code, latestApproved.ExpirationDate.Format("2006-01-02"))))
	}

	return issues
}

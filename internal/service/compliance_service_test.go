package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"failfast/internal/domain"
	"failfast/internal/service"
	"failfast/mocks"
)

type complianceMocks struct {
	companyRepo    *mocks.MockCompanyRepo
	typeRepo       *mocks.MockDocumentTypeRepo
	complianceRepo *mocks.MockComplianceRepo
}

func setupComplianceService() (service.ComplianceService, *complianceMocks) {
	m := &complianceMocks{
		companyRepo:    new(mocks.MockCompanyRepo),
		typeRepo:       new(mocks.MockDocumentTypeRepo),
		complianceRepo: new(mocks.MockComplianceRepo),
	}
	svc := service.NewComplianceService(m.companyRepo, m.typeRepo, m.complianceRepo)
	return svc, m
}

type complianceFixture struct {
	companyID uuid.UUID
	soat      domain.DocumentType
	vehicle   domain.Entity
}

func newComplianceFixture() *complianceFixture {
	companyID := uuid.New()
	return &complianceFixture{
		companyID: companyID,
		soat: domain.DocumentType{
			ID:                     uuid.New(),
			Code:                   "SOAT",
			EntityType:             domain.EntityTypeVehicle,
			IsMandatory:            true,
			RequiresExpirationDate: true,
		},
		vehicle: domain.Entity{
			ID:         uuid.New(),
			CompanyID:  companyID,
			EntityType: domain.EntityTypeVehicle,
			EntityCode: "ABC-123",
			IsActive:   true,
		},
	}
}

func (f *complianceFixture) expectScope(m *complianceMocks, docs []domain.Document) {
	m.companyRepo.On("GetByID", mock.Anything, f.companyID).Return(&domain.Company{ID: f.companyID, IsActive: true}, nil)
	m.typeRepo.On("ListMandatoryByEntityType", mock.Anything, domain.EntityTypeVehicle).
		Return([]domain.DocumentType{f.soat}, nil)
	m.complianceRepo.On("ListActiveEntities", mock.Anything, f.companyID, domain.EntityTypeVehicle, mock.Anything).
		Return([]domain.Entity{f.vehicle}, nil)
	m.complianceRepo.On("ListDocuments", mock.Anything, mock.Anything, mock.Anything).Return(docs, nil)
}

func (f *complianceFixture) doc(status domain.ValidationStatus, uploadedAt time.Time) domain.Document {
	return domain.Document{
		ID:               uuid.New(),
		CompanyID:        f.companyID,
		EntityID:         f.vehicle.ID,
		DocumentTypeID:   f.soat.ID,
		ValidationStatus: status,
		UploadedAt:       uploadedAt,
	}
}

func TestComplianceService_InvalidEntityType(t *testing.T) {
	svc, m := setupComplianceService()

	_, err := svc.CheckCompliance(context.Background(), &service.CheckComplianceInput{
		CompanyID:  uuid.New(),
		EntityType: "warehouse",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidEntityType)
	m.companyRepo.AssertNotCalled(t, "GetByID")
}

func TestComplianceService_MissingDocument(t *testing.T) {
	svc, m := setupComplianceService()
	f := newComplianceFixture()
	f.expectScope(m, []domain.Document{})

	report, err := svc.CheckCompliance(context.Background(), &service.CheckComplianceInput{
		CompanyID:  f.companyID,
		EntityType: domain.EntityTypeVehicle,
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.TotalErrors)
	assert.Equal(t, 1, report.ValidatedEntities)
	assert.Equal(t, domain.ComplianceMissing, report.Errors[0].ErrorType)
	assert.Equal(t, "ABC-123", report.Errors[0].EntityCode)
	assert.Equal(t, "SOAT", report.Errors[0].DocumentType)
}

func TestComplianceService_ExpiredDocument(t *testing.T) {
	svc, m := setupComplianceService()
	f := newComplianceFixture()

	expired := time.Now().UTC().AddDate(0, -1, 0)
	doc := f.doc(domain.ValidationStatusApproved, time.Now().UTC().AddDate(-1, 0, 0))
	doc.ExpirationDate = &expired
	f.expectScope(m, []domain.Document{doc})

	report, err := svc.CheckCompliance(context.Background(), &service.CheckComplianceInput{
		CompanyID:  f.companyID,
		EntityType: domain.EntityTypeVehicle,
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.TotalErrors)
	assert.Equal(t, domain.ComplianceExpired, report.Errors[0].ErrorType)
}

func TestComplianceService_AllRejected(t *testing.T) {
	svc, m := setupComplianceService()
	f := newComplianceFixture()

	// Every upload rejected counts as missing, and the most recent one also
	// surfaces as rejected_active.
	base := time.Now().UTC().AddDate(0, -2, 0)
	f.expectScope(m, []domain.Document{
		f.doc(domain.ValidationStatusRejected, base),
		f.doc(domain.ValidationStatusRejected, base.AddDate(0, 1, 0)),
	})

	report, err := svc.CheckCompliance(context.Background(), &service.CheckComplianceInput{
		CompanyID:  f.companyID,
		EntityType: domain.EntityTypeVehicle,
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, report.TotalErrors)
	assert.Equal(t, 1, report.ValidatedEntities)
	types := []domain.ComplianceErrorType{report.Errors[0].ErrorType, report.Errors[1].ErrorType}
	assert.Contains(t, types, domain.ComplianceMissing)
	assert.Contains(t, types, domain.ComplianceRejectedActive)
}

func TestComplianceService_RejectedSupersededByApproval(t *testing.T) {
	svc, m := setupComplianceService()
	f := newComplianceFixture()

	future := time.Now().UTC().AddDate(1, 0, 0)
	old := f.doc(domain.ValidationStatusRejected, time.Now().UTC().AddDate(0, -2, 0))
	current := f.doc(domain.ValidationStatusApproved, time.Now().UTC().AddDate(0, -1, 0))
	current.ExpirationDate = &future
	f.expectScope(m, []domain.Document{old, current})

	report, err := svc.CheckCompliance(context.Background(), &service.CheckComplianceInput{
		CompanyID:  f.companyID,
		EntityType: domain.EntityTypeVehicle,
	})

	assert.NoError(t, err)
	assert.Equal(t, 0, report.TotalErrors)
	assert.Equal(t, 0, report.ValidatedEntities)
}

func TestComplianceService_FutureIssueDate(t *testing.T) {
	svc, m := setupComplianceService()
	f := newComplianceFixture()

	issue := time.Now().UTC().AddDate(0, 0, 30)
	expiration := time.Now().UTC().AddDate(1, 0, 0)
	doc := f.doc(domain.ValidationStatusApproved, time.Now().UTC())
	doc.IssueDate = &issue
	doc.ExpirationDate = &expiration
	f.expectScope(m, []domain.Document{doc})

	report, err := svc.CheckCompliance(context.Background(), &service.CheckComplianceInput{
		CompanyID:  f.companyID,
		EntityType: domain.EntityTypeVehicle,
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, report.TotalErrors)
	assert.Equal(t, domain.ComplianceFutureIssueDate, report.Errors[0].ErrorType)
}

func TestComplianceService_PendingIsNotCompliant(t *testing.T) {
	svc, m := setupComplianceService()
	f := newComplianceFixture()

	// A lone pending document is neither approved nor rejected: no issue is
	// raised for it, the entity simply is not flagged.
	f.expectScope(m, []domain.Document{f.doc(domain.ValidationStatusPending, time.Now().UTC())})

	report, err := svc.CheckCompliance(context.Background(), &service.CheckComplianceInput{
		CompanyID:  f.companyID,
		EntityType: domain.EntityTypeVehicle,
	})

	assert.NoError(t, err)
	assert.Equal(t, 0, report.TotalErrors)
}

func TestComplianceService_NoMandatoryTypes(t *testing.T) {
	svc, m := setupComplianceService()
	f := newComplianceFixture()

	m.companyRepo.On("GetByID", mock.Anything, f.companyID).Return(&domain.Company{ID: f.companyID, IsActive: true}, nil)
	m.typeRepo.On("ListMandatoryByEntityType", mock.Anything, domain.EntityTypeSupplier).
		Return([]domain.DocumentType{}, nil)
	m.complianceRepo.On("ListActiveEntities", mock.Anything, f.companyID, domain.EntityTypeSupplier, mock.Anything).
		Return([]domain.Entity{f.vehicle}, nil)

	report, err := svc.CheckCompliance(context.Background(), &service.CheckComplianceInput{
		CompanyID:  f.companyID,
		EntityType: domain.EntityTypeSupplier,
	})

	assert.NoError(t, err)
	assert.Equal(t, 0, report.TotalErrors)
	m.complianceRepo.AssertNotCalled(t, "ListDocuments")
}

package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"failfast/internal/config"
	"failfast/internal/domain"
	"failfast/internal/port"
	"failfast/internal/service"
	"failfast/mocks"
)

type uploadMocks struct {
	companyRepo *mocks.MockCompanyRepo
	entityRepo  *mocks.MockEntityRepo
	typeRepo    *mocks.MockDocumentTypeRepo
	docRepo     *mocks.MockDocumentRepo
	logRepo     *mocks.MockValidationLogRepo
	storage     *mocks.MockObjectStorage
	workflow    *mocks.MockWorkflowTrigger
}

func setupUploadService() (service.UploadService, *uploadMocks) {
	m := &uploadMocks{
		companyRepo: new(mocks.MockCompanyRepo),
		entityRepo:  new(mocks.MockEntityRepo),
		typeRepo:    new(mocks.MockDocumentTypeRepo),
		docRepo:     new(mocks.MockDocumentRepo),
		logRepo:     new(mocks.MockValidationLogRepo),
		storage:     new(mocks.MockObjectStorage),
		workflow:    new(mocks.MockWorkflowTrigger),
	}
	svc := service.NewUploadService(
		m.companyRepo, m.entityRepo, m.typeRepo, m.docRepo, m.logRepo,
		m.storage, m.workflow,
		&config.S3Config{Region: "us-east-1", Bucket: "failfast-docs", WorkflowExpiry: 3600, DownloadExpiry: 300},
		&config.UploadConfig{MaxFileSizeMB: 10},
		"http://localhost:8080",
	)
	return svc, m
}

type uploadFixture struct {
	company *domain.Company
	entity  *domain.Entity
	docType *domain.DocumentType
	input   *service.UploadDocumentInput
}

func newUploadFixture() *uploadFixture {
	companyID := uuid.New()
	entityID := uuid.New()
	typeID := uuid.New()
	issue := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	expiration := time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC)
	return &uploadFixture{
		company: &domain.Company{ID: companyID, Name: "Transportes Demo", IsActive: true},
		entity: &domain.Entity{
			ID:         entityID,
			CompanyID:  companyID,
			EntityType: domain.EntityTypeVehicle,
			EntityCode: "ABC-123",
			IsActive:   true,
		},
		docType: &domain.DocumentType{
			ID:                     typeID,
			Code:                   "SOAT",
			EntityType:             domain.EntityTypeVehicle,
			RequiresIssueDate:      true,
			RequiresExpirationDate: true,
		},
		input: &service.UploadDocumentInput{
			CompanyID:      companyID,
			EntityID:       entityID,
			DocumentTypeID: typeID,
			FileName:       "soat_2026.pdf",
			FileSize:       512 * 1024,
			MimeType:       "application/pdf",
			Body:           strings.NewReader("%PDF-1.4"),
			IssueDate:      &issue,
			ExpirationDate: &expiration,
			UploadedBy:     "admin",
		},
	}
}

func (f *uploadFixture) expectPreconditions(m *uploadMocks) {
	m.companyRepo.On("GetByID", mock.Anything, f.company.ID).Return(f.company, nil)
	m.entityRepo.On("GetByID", mock.Anything, f.entity.ID).Return(f.entity, nil)
	m.typeRepo.On("GetByID", mock.Anything, f.docType.ID).Return(f.docType, nil)
}

func TestUploadService_Upload_Success(t *testing.T) {
	svc, m := setupUploadService()
	f := newUploadFixture()
	f.expectPreconditions(m)

	m.storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "failfast-docs" &&
			strings.HasPrefix(in.Key, "companies/"+f.company.ID.String()+"/vehicles/"+f.entity.ID.String()+"/SOAT_") &&
			strings.HasSuffix(in.Key, ".pdf") &&
			in.ContentType == "application/pdf"
	})).Return(&port.UploadOutput{Location: "s3://failfast-docs"}, nil)
	m.docRepo.On("CreateWithLog", mock.Anything, mock.MatchedBy(func(doc *domain.Document) bool {
		return doc.ValidationStatus == domain.ValidationStatusPending &&
			doc.S3Bucket == "failfast-docs" &&
			doc.UploadedBy == "admin"
	}), mock.MatchedBy(func(entry *domain.ValidationLogEntry) bool {
		return entry.Action == domain.LogActionUploaded &&
			entry.PreviousStatus == nil &&
			entry.NewStatus == domain.ValidationStatusPending
	})).Return(nil)

	result, err := svc.Upload(context.Background(), f.input)

	assert.NoError(t, err)
	assert.False(t, result.N8NTriggered)
	assert.Equal(t, domain.ValidationStatusPending, result.Document.ValidationStatus)
	m.storage.AssertExpectations(t)
	m.docRepo.AssertExpectations(t)
	m.workflow.AssertNotCalled(t, "Invoke")
}

func TestUploadService_Upload_InactiveCompany(t *testing.T) {
	svc, m := setupUploadService()
	f := newUploadFixture()
	f.company.IsActive = false
	m.companyRepo.On("GetByID", mock.Anything, f.company.ID).Return(f.company, nil)

	_, err := svc.Upload(context.Background(), f.input)

	assert.ErrorIs(t, err, domain.ErrCompanyInactive)
	m.storage.AssertNotCalled(t, "Upload")
}

func TestUploadService_Upload_EntityCompanyMismatch(t *testing.T) {
	svc, m := setupUploadService()
	f := newUploadFixture()
	f.entity.CompanyID = uuid.New()
	m.companyRepo.On("GetByID", mock.Anything, f.company.ID).Return(f.company, nil)
	m.entityRepo.On("GetByID", mock.Anything, f.entity.ID).Return(f.entity, nil)

	_, err := svc.Upload(context.Background(), f.input)

	assert.ErrorIs(t, err, domain.ErrEntityCompanyMismatch)
	m.storage.AssertNotCalled(t, "Upload")
}

func TestUploadService_Upload_EntityTypeMismatch(t *testing.T) {
	svc, m := setupUploadService()
	f := newUploadFixture()
	f.docType.EntityType = domain.EntityTypeEmployee
	f.expectPreconditions(m)

	_, err := svc.Upload(context.Background(), f.input)

	assert.ErrorIs(t, err, domain.ErrEntityTypeMismatch)
	m.storage.AssertNotCalled(t, "Upload")
}

func TestUploadService_Upload_FileTooLarge(t *testing.T) {
	svc, m := setupUploadService()
	f := newUploadFixture()
	f.input.FileSize = 11 * 1024 * 1024
	f.expectPreconditions(m)

	_, err := svc.Upload(context.Background(), f.input)

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	m.storage.AssertNotCalled(t, "Upload")
}

func TestUploadService_Upload_UnsupportedMimeType(t *testing.T) {
	svc, m := setupUploadService()
	f := newUploadFixture()
	f.input.MimeType = "application/x-msdownload"
	f.expectPreconditions(m)

	_, err := svc.Upload(context.Background(), f.input)

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	m.storage.AssertNotCalled(t, "Upload")
}

func TestUploadService_Upload_MissingExpirationDate(t *testing.T) {
	svc, m := setupUploadService()
	f := newUploadFixture()
	f.input.ExpirationDate = nil
	f.expectPreconditions(m)

	_, err := svc.Upload(context.Background(), f.input)

	assert.ErrorIs(t, err, domain.ErrExpirationDateRequired)
	m.storage.AssertNotCalled(t, "Upload")
}

func TestUploadService_Upload_DBFailureCompensatesBlob(t *testing.T) {
	svc, m := setupUploadService()
	f := newUploadFixture()
	f.expectPreconditions(m)

	m.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	m.docRepo.On("CreateWithLog", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection reset"))
	m.storage.On("Delete", mock.Anything, "failfast-docs", mock.AnythingOfType("string")).Return(nil)

	_, err := svc.Upload(context.Background(), f.input)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	m.storage.AssertCalled(t, "Delete", mock.Anything, "failfast-docs", mock.AnythingOfType("string"))
}

func TestUploadService_Upload_DispatchesWorkflow(t *testing.T) {
	svc, m := setupUploadService()
	f := newUploadFixture()
	f.docType.Code = "LICENCIA_CONDUCIR"
	f.docType.UsesN8NWorkflow = true
	f.docType.N8NWebhookURL = "http://n8n.local/webhook/license"
	f.docType.RequiresIssueDate = false
	f.expectPreconditions(m)

	m.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	m.docRepo.On("CreateWithLog", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.storage.On("GetPresignedURL", mock.Anything, "failfast-docs", mock.AnythingOfType("string"), int64(3600)).
		Return("https://s3.example.com/presigned", nil)
	m.workflow.On("Invoke", mock.Anything, "http://n8n.local/webhook/license", mock.MatchedBy(func(payload map[string]interface{}) bool {
		callback, _ := payload["callback_url"].(string)
		return payload["presigned_url"] == "https://s3.example.com/presigned" &&
			payload["document_type_code"] == "LICENCIA_CONDUCIR" &&
			payload["entity_code"] == "ABC-123" &&
			strings.HasPrefix(callback, "http://localhost:8080/api/v1/documents/") &&
			strings.HasSuffix(callback, "/n8n-callback")
	})).Return(map[string]interface{}{"accepted": true}, nil)
	m.logRepo.On("Create", mock.Anything, mock.MatchedBy(func(entry *domain.ValidationLogEntry) bool {
		return entry.Action == domain.LogActionN8NSent &&
			entry.PerformedBy == domain.ActorSystem &&
			entry.NewStatus == domain.ValidationStatusPending
	})).Return(nil)

	result, err := svc.Upload(context.Background(), f.input)

	assert.NoError(t, err)
	assert.True(t, result.N8NTriggered)
	m.workflow.AssertExpectations(t)
	m.logRepo.AssertExpectations(t)
}

func TestUploadService_Upload_WorkflowFailureDoesNotFailUpload(t *testing.T) {
	svc, m := setupUploadService()
	f := newUploadFixture()
	f.docType.UsesN8NWorkflow = true
	f.docType.N8NWebhookURL = "http://n8n.local/webhook/license"
	f.expectPreconditions(m)

	m.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	m.docRepo.On("CreateWithLog", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.storage.On("GetPresignedURL", mock.Anything, mock.Anything, mock.Anything, int64(3600)).
		Return("https://s3.example.com/presigned", nil)
	m.workflow.On("Invoke", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("webhook returned status 502"))
	m.logRepo.On("Create", mock.Anything, mock.MatchedBy(func(entry *domain.ValidationLogEntry) bool {
		return entry.Action == domain.LogActionN8NSent &&
			strings.Contains(string(entry.Metadata), "webhook returned status 502")
	})).Return(nil)

	result, err := svc.Upload(context.Background(), f.input)

	assert.NoError(t, err)
	assert.False(t, result.N8NTriggered)
	m.logRepo.AssertExpectations(t)
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"failfast/internal/config"
	"failfast/internal/domain"
	"failfast/internal/port"
)

// UploadDocumentInput is the DTO for uploading a compliance document.
type UploadDocumentInput struct {
	CompanyID      uuid.UUID
	EntityID       uuid.UUID
	DocumentTypeID uuid.UUID
	FileName       string
	FileSize       int64
	MimeType       string
	Body           io.Reader
	IssueDate      *time.Time
	ExpirationDate *time.Time
	UploadedBy     string
}

// UploadDocumentResult carries the created document plus whether the upload
// handed the file to the n8n validation workflow.
type UploadDocumentResult struct {
	Document     *domain.Document
	N8NTriggered bool
}

// UploadService coordinates blob storage, document creation, and conditional
// workflow dispatch as one unit of work.
type UploadService interface {
	Upload(ctx context.Context, input *UploadDocumentInput) (*UploadDocumentResult, error)
}

type uploadService struct {
	companyRepo port.CompanyRepository
	entityRepo  port.EntityRepository
	typeRepo    port.DocumentTypeRepository
	docRepo     port.DocumentRepository
	logRepo     port.ValidationLogRepository
	storage     port.ObjectStorage
	workflow    port.WorkflowTrigger
	s3Cfg       *config.S3Config
	maxFileSize int64
	callbackURL string
}

// NewUploadService creates a new UploadService implementation.
func NewUploadService(
	companyRepo port.CompanyRepository,
	entityRepo port.EntityRepository,
	typeRepo port.DocumentTypeRepository,
	docRepo port.DocumentRepository,
	logRepo port.ValidationLogRepository,
	storage port.ObjectStorage,
	workflow port.WorkflowTrigger,
	s3Cfg *config.S3Config,
	uploadCfg *config.UploadConfig,
	callbackBaseURL string,
) UploadService {
	return &uploadService{
		companyRepo: companyRepo,
		entityRepo:  entityRepo,
		typeRepo:    typeRepo,
		docRepo:     docRepo,
		logRepo:     logRepo,
		storage:     storage,
		workflow:    workflow,
		s3Cfg:       s3Cfg,
		maxFileSize: uploadCfg.MaxFileSizeMB * 1024 * 1024,
		callbackURL: strings.TrimRight(callbackBaseURL, "/"),
	}
}

// Upload runs the full orchestration: preconditions, blob put, transactional
// document + audit insert, then fire-and-forget workflow dispatch. No blob is
// written unless every precondition passes; a database failure after a
// successful put triggers a best-effort compensating delete.
func (s *uploadService) Upload(ctx context.Context, input *UploadDocumentInput) (*UploadDocumentResult, error) {
	entity, docType, err := s.checkPreconditions(ctx, input)
	if err != nil {
		return nil, err
	}

	key := s.buildKey(input.CompanyID, entity, docType, input.FileName)

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        input.Body,
		ContentType: input.MimeType,
		Size:        input.FileSize,
		Metadata: map[string]string{
			"company-id":  input.CompanyID.String(),
			"entity-id":   input.EntityID.String(),
			"uploaded-by": input.UploadedBy,
		},
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	doc := &domain.Document{
		ID:               uuid.New(),
		CompanyID:        input.CompanyID,
		EntityID:         input.EntityID,
		DocumentTypeID:   input.DocumentTypeID,
		FileName:         input.FileName,
		FileSize:         input.FileSize,
		MimeType:         input.MimeType,
		S3Bucket:         s.s3Cfg.Bucket,
		S3Key:            key,
		S3Region:         s.s3Cfg.Region,
		IssueDate:        input.IssueDate,
		ExpirationDate:   input.ExpirationDate,
		ValidationStatus: domain.ValidationStatusPending,
		UploadedBy:       input.UploadedBy,
	}
	entry := &domain.ValidationLogEntry{
		ID:          uuid.New(),
		DocumentID:  doc.ID,
		Action:      domain.LogActionUploaded,
		NewStatus:   domain.ValidationStatusPending,
		Reason:      "document uploaded",
		PerformedBy: input.UploadedBy,
	}

	if err := s.docRepo.CreateWithLog(ctx, doc, entry); err != nil {
		// Compensate the orphaned blob. Its failure is logged and never masks
		// the original error.
		if delErr := s.storage.Delete(ctx, s.s3Cfg.Bucket, key); delErr != nil {
			log.Printf("uploadService.Upload: compensating delete of %s failed: %v", key, delErr)
		}
		return nil, fmt.Errorf("creating document: %w", err)
	}

	log.Printf("uploadService.Upload: document %s created for entity %s (%s)", doc.ID, entity.ID, docType.Code)

	triggered := false
	if docType.UsesN8NWorkflow && docType.N8NWebhookURL != "" {
		triggered = s.dispatchWorkflow(ctx, doc, entity, docType)
	}

	return &UploadDocumentResult{Document: doc, N8NTriggered: triggered}, nil
}

func (s *uploadService) checkPreconditions(ctx context.Context, input *UploadDocumentInput) (*domain.Entity, *domain.DocumentType, error) {
	company, err := s.companyRepo.GetByID(ctx, input.CompanyID)
	if err != nil {
		return nil, nil, err
	}
	if !company.IsActive {
		return nil, nil, domain.ErrCompanyInactive
	}

	entity, err := s.entityRepo.GetByID(ctx, input.EntityID)
	if err != nil {
		return nil, nil, err
	}
	if entity.CompanyID != input.CompanyID {
		return nil, nil, domain.ErrEntityCompanyMismatch
	}
	if !entity.IsActive {
		return nil, nil, domain.ErrEntityInactive
	}

	docType, err := s.typeRepo.GetByID(ctx, input.DocumentTypeID)
	if err != nil {
		return nil, nil, err
	}
	if docType.EntityType != entity.EntityType {
		return nil, nil, domain.ErrEntityTypeMismatch
	}

	if input.FileSize > s.maxFileSize {
		return nil, nil, domain.ErrFileTooLarge
	}
	if !domain.AllowedMimeTypes[strings.ToLower(input.MimeType)] {
		return nil, nil, domain.ErrUnsupportedFileType
	}

	if docType.RequiresIssueDate && input.IssueDate == nil {
		return nil, nil, domain.ErrIssueDateRequired
	}
	if docType.RequiresExpirationDate && input.ExpirationDate == nil {
		return nil, nil, domain.ErrExpirationDateRequired
	}

	return entity, docType, nil
}

// buildKey derives the S3 object key. The timestamp avoids collisions between
// repeat uploads of the same type for the same entity.
func (s *uploadService) buildKey(companyID uuid.UUID, entity *domain.Entity, docType *domain.DocumentType, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("companies/%s/%ss/%s/%s_%s%s",
		companyID, entity.EntityType, entity.ID,
		docType.Code, time.Now().UTC().Format("20060102_150405"), ext)
}

// dispatchWorkflow hands the document to n8n after the transaction committed.
// The outcome is audited either way and never fails the upload.
func (s *uploadService) dispatchWorkflow(ctx context.Context, doc *domain.Document, entity *domain.Entity, docType *domain.DocumentType) bool {
	presignedURL, err := s.storage.GetPresignedURL(ctx, doc.S3Bucket, doc.S3Key, s.s3Cfg.WorkflowExpiry)
	if err != nil {
		log.Printf("uploadService.dispatchWorkflow: presigning %s failed: %v", doc.S3Key, err)
		s.auditDispatch(ctx, doc, docType, err)
		return false
	}

	payload := map[string]interface{}{
		"document_id":        doc.ID.String(),
		"company_id":         doc.CompanyID.String(),
		"entity_id":          entity.ID.String(),
		"entity_code":        entity.EntityCode,
		"entity_type":        string(entity.EntityType),
		"document_type_code": docType.Code,
		"file_name":          doc.FileName,
		"mime_type":          doc.MimeType,
		"s3_bucket":          doc.S3Bucket,
		"s3_key":             doc.S3Key,
		"presigned_url":      presignedURL,
		"callback_url":       fmt.Sprintf("%s/api/v1/documents/%s/n8n-callback", s.callbackURL, doc.ID),
	}
	if doc.IssueDate != nil {
		payload["issue_date"] = doc.IssueDate.Format("2006-01-02")
	}
	if doc.ExpirationDate != nil {
		payload["expiration_date"] = doc.ExpirationDate.Format("2006-01-02")
	}

	_, err = s.workflow.Invoke(ctx, docType.N8NWebhookURL, payload)
	if err != nil {
		log.Printf("uploadService.dispatchWorkflow: webhook for document %s failed: %v", doc.ID, err)
	} else {
		log.Printf("uploadService.dispatchWorkflow: document %s sent to workflow %s", doc.ID, docType.Code)
	}
	s.auditDispatch(ctx, doc, docType, err)
	return err == nil
}

func (s *uploadService) auditDispatch(ctx context.Context, doc *domain.Document, docType *domain.DocumentType, dispatchErr error) {
	meta := map[string]interface{}{"webhook_url": docType.N8NWebhookURL}
	reason := "document sent to validation workflow"
	if dispatchErr != nil {
		meta["error"] = dispatchErr.Error()
		reason = "validation workflow dispatch failed"
	}
	metaJSON, _ := json.Marshal(meta)

	prev := domain.ValidationStatusPending
	entry := &domain.ValidationLogEntry{
		ID:             uuid.New(),
		DocumentID:     doc.ID,
		Action:         domain.LogActionN8NSent,
		PreviousStatus: &prev,
		NewStatus:      domain.ValidationStatusPending,
		Reason:         reason,
		PerformedBy:    domain.ActorSystem,
		Metadata:       metaJSON,
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		log.Printf("uploadService.auditDispatch: failed to write n8n_sent entry for %s: %v", doc.ID, err)
	}
}

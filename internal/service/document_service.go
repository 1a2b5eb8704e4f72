package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"failfast/internal/config"
	"failfast/internal/domain"
	"failfast/internal/port"
)

// DocumentService exposes the read and delete surface over documents. All
// state transitions go through ValidationService; all creation goes through
// UploadService.
type DocumentService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, filter port.DocumentFilter, offset, limit int) ([]domain.Document, int, error)
	GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error)
	ListLogs(ctx context.Context, documentID uuid.UUID, offset, limit int) ([]domain.ValidationLogEntry, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	docRepo port.DocumentRepository
	logRepo port.ValidationLogRepository
	storage port.ObjectStorage
	s3Cfg   *config.S3Config
}

// NewDocumentService creates a new DocumentService implementation.
func NewDocumentService(
	docRepo port.DocumentRepository,
	logRepo port.ValidationLogRepository,
	storage port.ObjectStorage,
	s3Cfg *config.S3Config,
) DocumentService {
	return &documentService{docRepo: docRepo, logRepo: logRepo, storage: storage, s3Cfg: s3Cfg}
}

func (s *documentService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	return s.docRepo.GetByID(ctx, id)
}

func (s *documentService) List(ctx context.Context, filter port.DocumentFilter, offset, limit int) ([]domain.Document, int, error) {
	return s.docRepo.List(ctx, filter, offset, limit)
}

func (s *documentService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, doc.S3Bucket, doc.S3Key, s.s3Cfg.DownloadExpiry)
}

func (s *documentService) ListLogs(ctx context.Context, documentID uuid.UUID, offset, limit int) ([]domain.ValidationLogEntry, int, error) {
	if _, err := s.docRepo.GetByID(ctx, documentID); err != nil {
		return nil, 0, err
	}
	return s.logRepo.ListByDocument(ctx, documentID, offset, limit)
}

// Delete removes the blob first, best effort, then the row. Audit entries
// cascade with the document.
func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, doc.S3Bucket, doc.S3Key); err != nil {
		log.Printf("documentService.Delete: blob delete for %s failed: %v", doc.S3Key, err)
	}
	return s.docRepo.Delete(ctx, id)
}

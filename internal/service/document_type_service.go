package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"failfast/internal/domain"
	"failfast/internal/port"
)

// DocumentTypeInput is the DTO shared by document type create and update.
type DocumentTypeInput struct {
	Code                   string
	Name                   string
	IsMandatory            bool
	RequiresIssueDate      bool
	RequiresExpirationDate bool
	UsesN8NWorkflow        bool
	N8NWebhookURL          string
	EntityType             domain.EntityType
}

// DocumentTypeService manages the document type catalog.
type DocumentTypeService interface {
	Create(ctx context.Context, input *DocumentTypeInput) (*domain.DocumentType, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentType, error)
	List(ctx context.Context, entityType *domain.EntityType, mandatoryOnly bool, offset, limit int) ([]domain.DocumentType, int, error)
	Update(ctx context.Context, id uuid.UUID, input *DocumentTypeInput) (*domain.DocumentType, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentTypeService struct {
	typeRepo port.DocumentTypeRepository
}

// NewDocumentTypeService creates a new DocumentTypeService implementation.
func NewDocumentTypeService(typeRepo port.DocumentTypeRepository) DocumentTypeService {
	return &documentTypeService{typeRepo: typeRepo}
}

func validateDocumentTypeInput(input *DocumentTypeInput) error {
	if !domain.ValidEntityTypes[input.EntityType] {
		return domain.ErrInvalidEntityType
	}
	// The webhook URL is meaningful iff the type delegates to n8n.
	if input.UsesN8NWorkflow && strings.TrimSpace(input.N8NWebhookURL) == "" {
		return domain.ErrWebhookURLRequired
	}
	return nil
}

func (s *documentTypeService) Create(ctx context.Context, input *DocumentTypeInput) (*domain.DocumentType, error) {
	if err := validateDocumentTypeInput(input); err != nil {
		return nil, err
	}
	webhookURL := input.N8NWebhookURL
	if !input.UsesN8NWorkflow {
		webhookURL = ""
	}
	docType := &domain.DocumentType{
		ID:                     uuid.New(),
		Code:                   strings.ToUpper(strings.TrimSpace(input.Code)),
		Name:                   strings.TrimSpace(input.Name),
		IsMandatory:            input.IsMandatory,
		RequiresIssueDate:      input.RequiresIssueDate,
		RequiresExpirationDate: input.RequiresExpirationDate,
		UsesN8NWorkflow:        input.UsesN8NWorkflow,
		N8NWebhookURL:          webhookURL,
		EntityType:             input.EntityType,
	}
	if err := s.typeRepo.Create(ctx, docType); err != nil {
		return nil, err
	}
	return docType, nil
}

func (s *documentTypeService) GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentType, error) {
	return s.typeRepo.GetByID(ctx, id)
}

func (s *documentTypeService) List(ctx context.Context, entityType *domain.EntityType, mandatoryOnly bool, offset, limit int) ([]domain.DocumentType, int, error) {
	if entityType != nil && !domain.ValidEntityTypes[*entityType] {
		return nil, 0, domain.ErrInvalidEntityType
	}
	return s.typeRepo.List(ctx, entityType, mandatoryOnly, offset, limit)
}

func (s *documentTypeService) Update(ctx context.Context, id uuid.UUID, input *DocumentTypeInput) (*domain.DocumentType, error) {
	if err := validateDocumentTypeInput(input); err != nil {
		return nil, err
	}
	docType, err := s.typeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	docType.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	docType.Name = strings.TrimSpace(input.Name)
	docType.IsMandatory = input.IsMandatory
	docType.RequiresIssueDate = input.RequiresIssueDate
	docType.RequiresExpirationDate = input.RequiresExpirationDate
	docType.UsesN8NWorkflow = input.UsesN8NWorkflow
	docType.N8NWebhookURL = input.N8NWebhookURL
	docType.EntityType = input.EntityType
	if !docType.UsesN8NWorkflow {
		docType.N8NWebhookURL = ""
	}
	if err := s.typeRepo.Update(ctx, docType); err != nil {
		return nil, err
	}
	return docType, nil
}

func (s *documentTypeService) Delete(ctx context.Context, id uuid.UUID) error {
	count, err := s.typeRepo.CountDocuments(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrDocumentTypeInUse
	}
	return s.typeRepo.Delete(ctx, id)
}

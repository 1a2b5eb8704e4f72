package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"failfast/internal/domain"
	"failfast/internal/port"
)

// WorkflowCallbackInput is the DTO for the verdict posted back by the n8n
// validation workflow.
type WorkflowCallbackInput struct {
	DocumentID uuid.UUID
	Status     domain.CallbackStatus
	Reason     string
	Metadata   map[string]interface{}
}

// ValidationService owns the document validation state machine. Pending is the
// only state transitions leave; Approved and Rejected are terminal.
type ValidationService interface {
	Approve(ctx context.Context, documentID uuid.UUID, reason, performedBy string) (*domain.Document, error)
	Reject(ctx context.Context, documentID uuid.UUID, reason, performedBy string) (*domain.Document, error)
	ProcessWorkflowCallback(ctx context.Context, input *WorkflowCallbackInput) (*domain.Document, error)
}

type validationService struct {
	docRepo  port.DocumentRepository
	typeRepo port.DocumentTypeRepository
}

// NewValidationService creates a new ValidationService implementation.
func NewValidationService(docRepo port.DocumentRepository, typeRepo port.DocumentTypeRepository) ValidationService {
	return &validationService{docRepo: docRepo, typeRepo: typeRepo}
}

func (s *validationService) Approve(ctx context.Context, documentID uuid.UUID, reason, performedBy string) (*domain.Document, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrReasonRequired
	}

	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	docType, err := s.typeRepo.GetByID(ctx, doc.DocumentTypeID)
	if err != nil {
		return nil, err
	}
	if docType.UsesN8NWorkflow {
		return nil, domain.ErrWorkflowManaged
	}

	return s.transition(ctx, doc, domain.ValidationStatusApproved, reason, domain.LogActionApproved, performedBy, nil)
}

func (s *validationService) Reject(ctx context.Context, documentID uuid.UUID, reason, performedBy string) (*domain.Document, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrReasonRequired
	}

	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, doc, domain.ValidationStatusRejected, reason, domain.LogActionRejected, performedBy, nil)
}

func (s *validationService) ProcessWorkflowCallback(ctx context.Context, input *WorkflowCallbackInput) (*domain.Document, error) {
	var toStatus domain.ValidationStatus
	switch input.Status {
	case domain.CallbackStatusApproved:
		toStatus = domain.ValidationStatusApproved
	case domain.CallbackStatusRejected:
		toStatus = domain.ValidationStatusRejected
	default:
		return nil, domain.ErrInvalidCallbackStatus
	}

	doc, err := s.docRepo.GetByID(ctx, input.DocumentID)
	if err != nil {
		return nil, err
	}

	var metadata json.RawMessage
	if len(input.Metadata) > 0 {
		if metadata, err = json.Marshal(input.Metadata); err != nil {
			log.Printf("validationService.ProcessWorkflowCallback: dropping unmarshalable metadata for %s: %v", doc.ID, err)
			metadata = nil
		}
	}

	return s.transition(ctx, doc, toStatus, input.Reason, domain.LogActionN8NCallback, domain.ActorN8N, metadata)
}

// transition applies one Pending -> terminal move. The repository enforces the
// compare-and-swap against Pending; the early status check only short-circuits
// the obvious conflict without a transaction.
func (s *validationService) transition(ctx context.Context, doc *domain.Document, toStatus domain.ValidationStatus, reason string, action domain.LogAction, performedBy string, metadata json.RawMessage) (*domain.Document, error) {
	if doc.ValidationStatus != domain.ValidationStatusPending {
		return nil, domain.ErrDocumentAlreadyProcessed
	}

	now := time.Now().UTC()
	prev := domain.ValidationStatusPending
	entry := &domain.ValidationLogEntry{
		ID:             uuid.New(),
		DocumentID:     doc.ID,
		Action:         action,
		PreviousStatus: &prev,
		NewStatus:      toStatus,
		Reason:         reason,
		PerformedBy:    performedBy,
		Metadata:       metadata,
	}

	err := s.docRepo.Transition(ctx, port.TransitionParams{
		DocumentID:  doc.ID,
		FromStatus:  domain.ValidationStatusPending,
		ToStatus:    toStatus,
		Reason:      reason,
		ValidatedAt: now,
		Entry:       entry,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("validationService.transition: document %s %s -> %s by %s", doc.ID, prev, toStatus, performedBy)

	doc.ValidationStatus = toStatus
	doc.ValidationReason = &reason
	doc.ValidatedAt = &now
	return doc, nil
}

package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Company is a tenant company that owns entities and documents.
type Company struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	TaxID     string    `db:"tax_id" json:"tax_id"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Entity is a business object (vehicle, employee, supplier, asset) that
// documents are attached to. (company_id, entity_type, entity_code) is unique.
type Entity struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	CompanyID  uuid.UUID       `db:"company_id" json:"company_id"`
	EntityType EntityType      `db:"entity_type" json:"entity_type"`
	EntityCode string          `db:"entity_code" json:"entity_code"`
	EntityName string          `db:"entity_name" json:"entity_name"`
	Metadata   json.RawMessage `db:"metadata" json:"metadata"`
	IsActive   bool            `db:"is_active" json:"is_active"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// DocumentType is immutable reference data describing a kind of compliance
// document: whether it is mandatory, which dates it requires, and whether its
// validation verdict arrives asynchronously from an n8n workflow.
type DocumentType struct {
	ID                     uuid.UUID  `db:"id" json:"id"`
	Code                   string     `db:"code" json:"code"`
	Name                   string     `db:"name" json:"name"`
	IsMandatory            bool       `db:"is_mandatory" json:"is_mandatory"`
	RequiresIssueDate      bool       `db:"requires_issue_date" json:"requires_issue_date"`
	RequiresExpirationDate bool       `db:"requires_expiration_date" json:"requires_expiration_date"`
	UsesN8NWorkflow        bool       `db:"uses_n8n_workflow" json:"uses_n8n_workflow"`
	N8NWebhookURL          string     `db:"n8n_webhook_url" json:"n8n_webhook_url"`
	EntityType             EntityType `db:"entity_type" json:"entity_type"`
	CreatedAt              time.Time  `db:"created_at" json:"created_at"`
}

// Document is a compliance document uploaded for an entity. The entity must
// belong to the same company and the document type must match the entity's
// entity_type.
type Document struct {
	ID               uuid.UUID        `db:"id" json:"id"`
	CompanyID        uuid.UUID        `db:"company_id" json:"company_id"`
	EntityID         uuid.UUID        `db:"entity_id" json:"entity_id"`
	DocumentTypeID   uuid.UUID        `db:"document_type_id" json:"document_type_id"`
	FileName         string           `db:"file_name" json:"file_name"`
	FileSize         int64            `db:"file_size" json:"file_size"`
	MimeType         string           `db:"mime_type" json:"mime_type"`
	S3Bucket         string           `db:"s3_bucket" json:"s3_bucket"`
	S3Key            string           `db:"s3_key" json:"s3_key"`
	S3Region         string           `db:"s3_region" json:"s3_region"`
	IssueDate        *time.Time       `db:"issue_date" json:"issue_date"`
	ExpirationDate   *time.Time       `db:"expiration_date" json:"expiration_date"`
	ValidationStatus ValidationStatus `db:"validation_status" json:"validation_status"`
	ValidationReason *string          `db:"validation_reason" json:"validation_reason"`
	UploadedBy       string           `db:"uploaded_by" json:"uploaded_by"`
	UploadedAt       time.Time        `db:"uploaded_at" json:"uploaded_at"`
	ValidatedAt      *time.Time       `db:"validated_at" json:"validated_at"`
}

// ValidationLogEntry is one immutable row of the document audit trail. Entries
// are never updated or deleted; ordered by created_at ascending they
// reconstruct the exact status history of the document, starting with an
// uploaded entry whose previous_status is null.
type ValidationLogEntry struct {
	ID             uuid.UUID         `db:"id" json:"id"`
	DocumentID     uuid.UUID         `db:"document_id" json:"document_id"`
	Action         LogAction         `db:"action" json:"action"`
	PreviousStatus *ValidationStatus `db:"previous_status" json:"previous_status"`
	NewStatus      ValidationStatus  `db:"new_status" json:"new_status"`
	Reason         string            `db:"reason" json:"reason"`
	PerformedBy    string            `db:"performed_by" json:"performed_by"`
	Metadata       json.RawMessage   `db:"metadata" json:"metadata"`
	CreatedAt      time.Time         `db:"created_at" json:"created_at"`
}

// ComplianceIssue is a single gap found by the bulk compliance check.
type ComplianceIssue struct {
	EntityID     uuid.UUID           `db:"entity_id" json:"entity_id"`
	EntityCode   string              `db:"entity_code" json:"entity_code"`
	DocumentType string              `db:"document_type" json:"document_type"`
	ErrorType    ComplianceErrorType `db:"error_type" json:"error_type"`
	Message      string              `db:"message" json:"message"`
}

// ComplianceReport aggregates the result of a bulk compliance check.
// ValidatedEntities counts the distinct entities with at least one issue.
type ComplianceReport struct {
	ValidatedEntities int               `json:"validated_entities"`
	TotalErrors       int               `json:"total_errors"`
	Errors            []ComplianceIssue `json:"errors"`
}

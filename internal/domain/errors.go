package domain

import "errors"

var (
	ErrCompanyNotFound       = errors.New("company not found")
	ErrCompanyInactive       = errors.New("company is not active")
	ErrEntityNotFound        = errors.New("entity not found")
	ErrEntityInactive        = errors.New("entity is not active")
	ErrEntityCompanyMismatch = errors.New("entity does not belong to the given company")
	ErrDocumentTypeNotFound  = errors.New("document type not found")
	ErrEntityTypeMismatch    = errors.New("document type does not apply to the entity's type")
	ErrDocumentNotFound      = errors.New("document not found")
	ErrLogEntryNotFound      = errors.New("validation log entry not found")

	ErrUnsupportedFileType    = errors.New("unsupported file type")
	ErrFileTooLarge           = errors.New("file exceeds maximum allowed size")
	ErrIssueDateRequired      = errors.New("document type requires an issue date")
	ErrExpirationDateRequired = errors.New("document type requires an expiration date")
	ErrReasonRequired         = errors.New("a non-empty reason is required")
	ErrInvalidCallbackStatus  = errors.New("callback status must be approved or rejected")
	ErrInvalidEntityType      = errors.New("invalid entity type")
	ErrWebhookURLRequired     = errors.New("document types using n8n must set a webhook url")

	// ErrWorkflowManaged rejects manual approval of documents whose type
	// delegates validation to the external workflow.
	ErrWorkflowManaged = errors.New("document type is validated by the n8n workflow")

	// ErrDocumentAlreadyProcessed is observed by the loser of a transition
	// race: the document is no longer pending.
	ErrDocumentAlreadyProcessed = errors.New("document has already been processed")

	ErrDocumentTypeInUse   = errors.New("document type is referenced by existing documents")
	ErrDuplicateTaxID      = errors.New("tax id already exists")
	ErrDuplicateEntityCode = errors.New("entity code already exists for this company and type")
	ErrDuplicateTypeCode   = errors.New("document type code already exists")

	ErrUploadFailed = errors.New("file upload to storage failed")
)

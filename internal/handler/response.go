package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"failfast/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrCompanyNotFound):
		return http.StatusNotFound, "COMPANY_NOT_FOUND", "company not found"
	case errors.Is(err, domain.ErrEntityNotFound):
		return http.StatusNotFound, "ENTITY_NOT_FOUND", "entity not found"
	case errors.Is(err, domain.ErrDocumentTypeNotFound):
		return http.StatusNotFound, "DOCUMENT_TYPE_NOT_FOUND", "document type not found"
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound, "DOCUMENT_NOT_FOUND", "document not found"
	case errors.Is(err, domain.ErrLogEntryNotFound):
		return http.StatusNotFound, "LOG_ENTRY_NOT_FOUND", "validation log entry not found"
	case errors.Is(err, domain.ErrCompanyInactive):
		return http.StatusBadRequest, "COMPANY_INACTIVE", "company is not active"
	case errors.Is(err, domain.ErrEntityInactive):
		return http.StatusBadRequest, "ENTITY_INACTIVE", "entity is not active"
	case errors.Is(err, domain.ErrEntityCompanyMismatch):
		return http.StatusBadRequest, "ENTITY_COMPANY_MISMATCH", "entity does not belong to the given company"
	case errors.Is(err, domain.ErrEntityTypeMismatch):
		return http.StatusBadRequest, "ENTITY_TYPE_MISMATCH", "document type does not apply to this entity type"
	case errors.Is(err, domain.ErrInvalidEntityType):
		return http.StatusBadRequest, "INVALID_ENTITY_TYPE", "entity type must be one of: vehicle, employee, supplier, asset"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png, doc, docx, xls, xlsx"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrIssueDateRequired):
		return http.StatusBadRequest, "ISSUE_DATE_REQUIRED", "this document type requires an issue date"
	case errors.Is(err, domain.ErrExpirationDateRequired):
		return http.StatusBadRequest, "EXPIRATION_DATE_REQUIRED", "this document type requires an expiration date"
	case errors.Is(err, domain.ErrReasonRequired):
		return http.StatusBadRequest, "REASON_REQUIRED", "a non-empty reason is required"
	case errors.Is(err, domain.ErrInvalidCallbackStatus):
		return http.StatusBadRequest, "INVALID_CALLBACK_STATUS", "status must be 'approved' or 'rejected'"
	case errors.Is(err, domain.ErrWebhookURLRequired):
		return http.StatusBadRequest, "WEBHOOK_URL_REQUIRED", "document types using the n8n workflow must set a webhook url"
	case errors.Is(err, domain.ErrWorkflowManaged):
		return http.StatusBadRequest, "WORKFLOW_MANAGED", "this document type is validated by the n8n workflow; manual approval is not allowed"
	case errors.Is(err, domain.ErrDocumentAlreadyProcessed):
		return http.StatusConflict, "ALREADY_PROCESSED", "document has already been approved or rejected"
	case errors.Is(err, domain.ErrDocumentTypeInUse):
		return http.StatusConflict, "DOCUMENT_TYPE_IN_USE", "document type is referenced by existing documents"
	case errors.Is(err, domain.ErrDuplicateTaxID):
		return http.StatusConflict, "DUPLICATE_TAX_ID", "a company with this tax id already exists"
	case errors.Is(err, domain.ErrDuplicateEntityCode):
		return http.StatusConflict, "DUPLICATE_ENTITY_CODE", "an entity with this code already exists for this company and type"
	case errors.Is(err, domain.ErrDuplicateTypeCode):
		return http.StatusConflict, "DUPLICATE_TYPE_CODE", "a document type with this code already exists"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

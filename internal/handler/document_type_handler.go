package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"failfast/internal/domain"
	"failfast/internal/service"
)

// DocumentTypeHandler handles document type catalog endpoints.
type DocumentTypeHandler struct {
	typeService service.DocumentTypeService
}

// NewDocumentTypeHandler creates a new DocumentTypeHandler.
func NewDocumentTypeHandler(typeService service.DocumentTypeService) *DocumentTypeHandler {
	return &DocumentTypeHandler{typeService: typeService}
}

type documentTypeRequest struct {
	Code                   string `json:"code" binding:"required"`
	Name                   string `json:"name" binding:"required"`
	IsMandatory            bool   `json:"is_mandatory"`
	RequiresIssueDate      bool   `json:"requires_issue_date"`
	RequiresExpirationDate bool   `json:"requires_expiration_date"`
	UsesN8NWorkflow        bool   `json:"uses_n8n_workflow"`
	N8NWebhookURL          string `json:"n8n_webhook_url"`
	EntityType             string `json:"entity_type" binding:"required"`
}

func (r *documentTypeRequest) toInput() *service.DocumentTypeInput {
	return &service.DocumentTypeInput{
		Code:                   r.Code,
		Name:                   r.Name,
		IsMandatory:            r.IsMandatory,
		RequiresIssueDate:      r.RequiresIssueDate,
		RequiresExpirationDate: r.RequiresExpirationDate,
		UsesN8NWorkflow:        r.UsesN8NWorkflow,
		N8NWebhookURL:          r.N8NWebhookURL,
		EntityType:             domain.EntityType(r.EntityType),
	}
}

// Create handles POST /api/v1/document-types
func (h *DocumentTypeHandler) Create(c *gin.Context) {
	var req documentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "code, name, and entity_type are required")
		return
	}

	docType, err := h.typeService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, docType)
}

// GetByID handles GET /api/v1/document-types/:id
func (h *DocumentTypeHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document type ID")
		return
	}
	docType, err := h.typeService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, docType)
}

// List handles GET /api/v1/document-types?entity_type=...&mandatory=true
func (h *DocumentTypeHandler) List(c *gin.Context) {
	var entityType *domain.EntityType
	if et := c.Query("entity_type"); et != "" {
		parsed := domain.EntityType(et)
		entityType = &parsed
	}
	mandatoryOnly := c.Query("mandatory") == "true"

	offset, limit := parsePagination(c)
	docTypes, total, err := h.typeService.List(c.Request.Context(), entityType, mandatoryOnly, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, docTypes, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/document-types/:id
func (h *DocumentTypeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document type ID")
		return
	}

	var req documentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "code, name, and entity_type are required")
		return
	}

	docType, err := h.typeService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, docType)
}

// Delete handles DELETE /api/v1/document-types/:id
// @Summary Delete a document type
// @Description Rejected with 409 while any document references the type
// @Tags document-types
// @Router /document-types/{id} [delete]
func (h *DocumentTypeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document type ID")
		return
	}
	if err := h.typeService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "document type deleted"})
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"failfast/internal/domain"
	"failfast/internal/service"
)

// EntityHandler handles business entity endpoints.
type EntityHandler struct {
	entityService service.EntityService
}

// NewEntityHandler creates a new EntityHandler.
func NewEntityHandler(entityService service.EntityService) *EntityHandler {
	return &EntityHandler{entityService: entityService}
}

// Create handles POST /api/v1/entities
// @Summary Register an entity
// @Tags entities
// @Accept json
// @Produce json
// @Success 201 {object} APIResponse
// @Failure 409 {object} APIResponse "Duplicate entity code"
// @Router /entities [post]
func (h *EntityHandler) Create(c *gin.Context) {
	var req struct {
		CompanyID  uuid.UUID       `json:"company_id" binding:"required"`
		EntityType string          `json:"entity_type" binding:"required"`
		EntityCode string          `json:"entity_code" binding:"required"`
		EntityName string          `json:"entity_name" binding:"required"`
		Metadata   json.RawMessage `json:"metadata"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "company_id, entity_type, entity_code, and entity_name are required")
		return
	}

	entity, err := h.entityService.Create(c.Request.Context(), &service.CreateEntityInput{
		CompanyID:  req.CompanyID,
		EntityType: domain.EntityType(req.EntityType),
		EntityCode: req.EntityCode,
		EntityName: req.EntityName,
		Metadata:   req.Metadata,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, entity)
}

// GetByID handles GET /api/v1/entities/:id
func (h *EntityHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid entity ID")
		return
	}
	entity, err := h.entityService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entity)
}

// List handles GET /api/v1/entities?company_id=...&entity_type=...
func (h *EntityHandler) List(c *gin.Context) {
	companyID, err := uuid.Parse(c.Query("company_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "company_id query parameter is required")
		return
	}

	var entityType *domain.EntityType
	if et := c.Query("entity_type"); et != "" {
		parsed := domain.EntityType(et)
		entityType = &parsed
	}

	offset, limit := parsePagination(c)
	entities, total, err := h.entityService.ListByCompany(c.Request.Context(), companyID, entityType, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, entities, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/entities/:id
func (h *EntityHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid entity ID")
		return
	}

	var req struct {
		EntityCode string          `json:"entity_code" binding:"required"`
		EntityName string          `json:"entity_name" binding:"required"`
		Metadata   json.RawMessage `json:"metadata"`
		IsActive   *bool           `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "entity_code, entity_name, and is_active are required")
		return
	}

	entity, err := h.entityService.Update(c.Request.Context(), &service.UpdateEntityInput{
		ID:         id,
		EntityCode: req.EntityCode,
		EntityName: req.EntityName,
		Metadata:   req.Metadata,
		IsActive:   *req.IsActive,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entity)
}

// Delete handles DELETE /api/v1/entities/:id
func (h *EntityHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid entity ID")
		return
	}
	if err := h.entityService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "entity deleted"})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"failfast/internal/domain"
	"failfast/internal/port"
	"failfast/internal/service"
)

// ValidationLogHandler exposes the read-only audit trail.
type ValidationLogHandler struct {
	logService service.ValidationLogService
}

// NewValidationLogHandler creates a new ValidationLogHandler.
func NewValidationLogHandler(logService service.ValidationLogService) *ValidationLogHandler {
	return &ValidationLogHandler{logService: logService}
}

// List handles GET /api/v1/validation-logs?document_id=...&action=...&performed_by=...
func (h *ValidationLogHandler) List(c *gin.Context) {
	var filter port.ValidationLogFilter
	if raw := c.Query("document_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document_id")
			return
		}
		filter.DocumentID = &id
	}
	if raw := c.Query("action"); raw != "" {
		action := domain.LogAction(raw)
		filter.Action = &action
	}
	if raw := c.Query("performed_by"); raw != "" {
		performer := raw
		filter.PerformedBy = &performer
	}

	offset, limit := parsePagination(c)
	entries, total, err := h.logService.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/validation-logs/:id
func (h *ValidationLogHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid log entry ID")
		return
	}
	entry, err := h.logService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entry)
}

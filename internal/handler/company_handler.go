package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"failfast/internal/service"
)

// CompanyHandler handles tenant company endpoints.
type CompanyHandler struct {
	companyService service.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyService service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Create handles POST /api/v1/companies
// @Summary Register a company
// @Tags companies
// @Accept json
// @Produce json
// @Success 201 {object} APIResponse
// @Failure 409 {object} APIResponse "Duplicate tax id"
// @Router /companies [post]
func (h *CompanyHandler) Create(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		TaxID string `json:"tax_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name and tax_id are required")
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), &service.CreateCompanyInput{
		Name:  req.Name,
		TaxID: req.TaxID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, company)
}

// GetByID handles GET /api/v1/companies/:id
func (h *CompanyHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid company ID")
		return
	}
	company, err := h.companyService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, company)
}

// List handles GET /api/v1/companies
func (h *CompanyHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	companies, total, err := h.companyService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, companies, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/companies/:id
func (h *CompanyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid company ID")
		return
	}

	var req struct {
		Name     string `json:"name" binding:"required"`
		TaxID    string `json:"tax_id" binding:"required"`
		IsActive *bool  `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name, tax_id, and is_active are required")
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), &service.UpdateCompanyInput{
		ID:       id,
		Name:     req.Name,
		TaxID:    req.TaxID,
		IsActive: *req.IsActive,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, company)
}

// Delete handles DELETE /api/v1/companies/:id
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid company ID")
		return
	}
	if err := h.companyService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "company deleted"})
}

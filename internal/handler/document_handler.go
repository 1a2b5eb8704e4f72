package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"failfast/internal/domain"
	"failfast/internal/port"
	"failfast/internal/service"
)

// DocumentHandler handles document lifecycle endpoints: upload, listing,
// download, manual and workflow-driven validation, and bulk compliance.
type DocumentHandler struct {
	uploadService     service.UploadService
	documentService   service.DocumentService
	validationService service.ValidationService
	complianceService service.ComplianceService
	reportService     service.ReportService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(
	uploadService service.UploadService,
	documentService service.DocumentService,
	validationService service.ValidationService,
	complianceService service.ComplianceService,
	reportService service.ReportService,
) *DocumentHandler {
	return &DocumentHandler{
		uploadService:     uploadService,
		documentService:   documentService,
		validationService: validationService,
		complianceService: complianceService,
		reportService:     reportService,
	}
}

func parseDateField(c *gin.Context, field string) (*time.Time, bool) {
	raw := c.PostForm(field)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_DATE", field+" must be formatted as YYYY-MM-DD")
		return nil, false
	}
	return &t, true
}

// Upload handles POST /api/v1/documents/upload
// @Summary Upload a compliance document
// @Description Stores the file, creates the document as pending, and hands it to the n8n workflow when the type delegates validation
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document file"
// @Param company_id formData string true "Company ID (UUID)"
// @Param entity_id formData string true "Entity ID (UUID)"
// @Param document_type_id formData string true "Document type ID (UUID)"
// @Param issue_date formData string false "Issue date (YYYY-MM-DD)"
// @Param expiration_date formData string false "Expiration date (YYYY-MM-DD)"
// @Param uploaded_by formData string false "Uploader identifier"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse "Precondition failed"
// @Failure 413 {object} APIResponse "File too large"
// @Router /documents/upload [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	companyID, err := uuid.Parse(c.PostForm("company_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid company_id")
		return
	}
	entityID, err := uuid.Parse(c.PostForm("entity_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid entity_id")
		return
	}
	typeID, err := uuid.Parse(c.PostForm("document_type_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document_type_id")
		return
	}

	issueDate, ok := parseDateField(c, "issue_date")
	if !ok {
		return
	}
	expirationDate, ok := parseDateField(c, "expiration_date")
	if !ok {
		return
	}

	uploadedBy := c.PostForm("uploaded_by")
	if uploadedBy == "" {
		uploadedBy = domain.ActorSystem
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.uploadService.Upload(c.Request.Context(), &service.UploadDocumentInput{
		CompanyID:      companyID,
		EntityID:       entityID,
		DocumentTypeID: typeID,
		FileName:       header.Filename,
		FileSize:       header.Size,
		MimeType:       header.Header.Get("Content-Type"),
		Body:           file,
		IssueDate:      issueDate,
		ExpirationDate: expirationDate,
		UploadedBy:     uploadedBy,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Data: gin.H{
			"document":      result.Document,
			"n8n_triggered": result.N8NTriggered,
		},
	})
}

// List handles GET /api/v1/documents
func (h *DocumentHandler) List(c *gin.Context) {
	var filter port.DocumentFilter
	for param, target := range map[string]**uuid.UUID{
		"company_id":       &filter.CompanyID,
		"entity_id":        &filter.EntityID,
		"document_type_id": &filter.DocumentTypeID,
	} {
		if raw := c.Query(param); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+param)
				return
			}
			*target = &id
		}
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.ValidationStatus(raw)
		filter.Status = &status
	}

	offset, limit := parsePagination(c)
	docs, total, err := h.documentService.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/documents/:id
func (h *DocumentHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}
	doc, err := h.documentService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// Download handles GET /api/v1/documents/:id/download
func (h *DocumentHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}
	url, err := h.documentService.GetDownloadURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"download_url": url})
}

// Delete handles DELETE /api/v1/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}
	if err := h.documentService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "document deleted"})
}

type verdictRequest struct {
	Reason      string `json:"reason" binding:"required"`
	PerformedBy string `json:"performed_by"`
}

func (r *verdictRequest) performer() string {
	if r.PerformedBy == "" {
		return domain.ActorSystem
	}
	return r.PerformedBy
}

// Approve handles POST /api/v1/documents/:id/approve
// @Summary Approve a pending document
// @Tags documents
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse "Workflow-managed type or missing reason"
// @Failure 409 {object} APIResponse "Already processed"
// @Router /documents/{id}/approve [post]
func (h *DocumentHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	var req verdictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "REASON_REQUIRED", "a non-empty reason is required")
		return
	}

	doc, err := h.validationService.Approve(c.Request.Context(), id, req.Reason, req.performer())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// Reject handles POST /api/v1/documents/:id/reject
func (h *DocumentHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	var req verdictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "REASON_REQUIRED", "a non-empty reason is required")
		return
	}

	doc, err := h.validationService.Reject(c.Request.Context(), id, req.Reason, req.performer())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// N8NCallback handles POST /api/v1/documents/:id/n8n-callback
// @Summary Receive the n8n workflow verdict
// @Description Applies the workflow's approved/rejected verdict; responds 409 when the document is no longer pending
// @Tags documents
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 409 {object} APIResponse "Already processed"
// @Router /documents/{id}/n8n-callback [post]
func (h *DocumentHandler) N8NCallback(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}

	var req struct {
		Status   string                 `json:"status" binding:"required"`
		Reason   string                 `json:"reason"`
		Metadata map[string]interface{} `json:"metadata"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "status is required")
		return
	}

	doc, err := h.validationService.ProcessWorkflowCallback(c.Request.Context(), &service.WorkflowCallbackInput{
		DocumentID: id,
		Status:     domain.CallbackStatus(req.Status),
		Reason:     req.Reason,
		Metadata:   req.Metadata,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// Logs handles GET /api/v1/documents/:id/logs
func (h *DocumentHandler) Logs(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
		return
	}
	offset, limit := parsePagination(c)
	entries, total, err := h.documentService.ListLogs(c.Request.Context(), id, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

type complianceRequest struct {
	CompanyID  uuid.UUID   `json:"company_id" binding:"required"`
	EntityType string      `json:"entity_type" binding:"required"`
	EntityIDs  []uuid.UUID `json:"entity_ids"`
}

func (r *complianceRequest) toInput() *service.CheckComplianceInput {
	return &service.CheckComplianceInput{
		CompanyID:  r.CompanyID,
		EntityType: domain.EntityType(r.EntityType),
		EntityIDs:  r.EntityIDs,
	}
}

// Validate handles POST /api/v1/documents/validate
// @Summary Bulk compliance check
// @Description Evaluates the scoped entities against the mandatory document catalog; read-only
// @Tags documents
// @Accept json
// @Produce json
// @Success 200 {object} APIResponse
// @Router /documents/validate [post]
func (h *DocumentHandler) Validate(c *gin.Context) {
	var req complianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "company_id and entity_type are required")
		return
	}

	report, err := h.complianceService.CheckCompliance(c.Request.Context(), req.toInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// ValidateExport handles POST /api/v1/documents/validate/export
func (h *DocumentHandler) ValidateExport(c *gin.Context) {
	var req complianceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "company_id and entity_type are required")
		return
	}

	data, err := h.reportService.ExportComplianceXLSX(c.Request.Context(), req.toInput())
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="compliance_report.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

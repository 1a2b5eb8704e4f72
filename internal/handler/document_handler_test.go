package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"failfast/internal/domain"
	"failfast/internal/handler"
	"failfast/internal/service"
	"failfast/mocks"
)

func setupValidationRouter() (*gin.Engine, *mocks.MockValidationService) {
	gin.SetMode(gin.TestMode)
	validationSvc := new(mocks.MockValidationService)
	h := handler.NewDocumentHandler(nil, nil, validationSvc, nil, nil)

	r := gin.New()
	r.POST("/api/v1/documents/:id/approve", h.Approve)
	r.POST("/api/v1/documents/:id/reject", h.Reject)
	r.POST("/api/v1/documents/:id/n8n-callback", h.N8NCallback)
	return r, validationSvc
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestDocumentHandler_Approve_OK(t *testing.T) {
	r, validationSvc := setupValidationRouter()

	docID := uuid.New()
	validationSvc.On("Approve", mock.Anything, docID, "verified", "admin").
		Return(&domain.Document{ID: docID, ValidationStatus: domain.ValidationStatusApproved}, nil)

	w := postJSON(r, "/api/v1/documents/"+docID.String()+"/approve",
		gin.H{"reason": "verified", "performed_by": "admin"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	validationSvc.AssertExpectations(t)
}

func TestDocumentHandler_Approve_DefaultsPerformer(t *testing.T) {
	r, validationSvc := setupValidationRouter()

	docID := uuid.New()
	validationSvc.On("Approve", mock.Anything, docID, "verified", domain.ActorSystem).
		Return(&domain.Document{ID: docID, ValidationStatus: domain.ValidationStatusApproved}, nil)

	w := postJSON(r, "/api/v1/documents/"+docID.String()+"/approve", gin.H{"reason": "verified"})

	assert.Equal(t, http.StatusOK, w.Code)
	validationSvc.AssertExpectations(t)
}

func TestDocumentHandler_Approve_MissingReason(t *testing.T) {
	r, validationSvc := setupValidationRouter()

	w := postJSON(r, "/api/v1/documents/"+uuid.NewString()+"/approve", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "REASON_REQUIRED", resp.Error.Code)
	validationSvc.AssertNotCalled(t, "Approve")
}

func TestDocumentHandler_Approve_WorkflowManaged(t *testing.T) {
	r, validationSvc := setupValidationRouter()

	docID := uuid.New()
	validationSvc.On("Approve", mock.Anything, docID, mock.Anything, mock.Anything).
		Return(nil, domain.ErrWorkflowManaged)

	w := postJSON(r, "/api/v1/documents/"+docID.String()+"/approve", gin.H{"reason": "looks fine"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "WORKFLOW_MANAGED", resp.Error.Code)
}

func TestDocumentHandler_Approve_AlreadyProcessed(t *testing.T) {
	r, validationSvc := setupValidationRouter()

	docID := uuid.New()
	validationSvc.On("Approve", mock.Anything, docID, mock.Anything, mock.Anything).
		Return(nil, domain.ErrDocumentAlreadyProcessed)

	w := postJSON(r, "/api/v1/documents/"+docID.String()+"/approve", gin.H{"reason": "verified"})

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "ALREADY_PROCESSED", resp.Error.Code)
}

func TestDocumentHandler_Approve_InvalidID(t *testing.T) {
	r, validationSvc := setupValidationRouter()

	w := postJSON(r, "/api/v1/documents/not-a-uuid/approve", gin.H{"reason": "verified"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	validationSvc.AssertNotCalled(t, "Approve")
}

func TestDocumentHandler_Reject_OK(t *testing.T) {
	r, validationSvc := setupValidationRouter()

	docID := uuid.New()
	validationSvc.On("Reject", mock.Anything, docID, "blurry scan", "reviewer").
		Return(&domain.Document{ID: docID, ValidationStatus: domain.ValidationStatusRejected}, nil)

	w := postJSON(r, "/api/v1/documents/"+docID.String()+"/reject",
		gin.H{"reason": "blurry scan", "performed_by": "reviewer"})

	assert.Equal(t, http.StatusOK, w.Code)
	validationSvc.AssertExpectations(t)
}

func TestDocumentHandler_N8NCallback_OK(t *testing.T) {
	r, validationSvc := setupValidationRouter()

	docID := uuid.New()
	validationSvc.On("ProcessWorkflowCallback", mock.Anything, mock.MatchedBy(func(in *service.WorkflowCallbackInput) bool {
		return in.DocumentID == docID &&
			in.Status == domain.CallbackStatusApproved &&
			in.Reason == "ocr match" &&
			in.Metadata["confidence"] == 0.97
	})).Return(&domain.Document{ID: docID, ValidationStatus: domain.ValidationStatusApproved}, nil)

	w := postJSON(r, "/api/v1/documents/"+docID.String()+"/n8n-callback", gin.H{
		"status":   "approved",
		"reason":   "ocr match",
		"metadata": gin.H{"confidence": 0.97},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	validationSvc.AssertExpectations(t)
}

func TestDocumentHandler_N8NCallback_Conflict(t *testing.T) {
	r, validationSvc := setupValidationRouter()

	docID := uuid.New()
	validationSvc.On("ProcessWorkflowCallback", mock.Anything, mock.Anything).
		Return(nil, domain.ErrDocumentAlreadyProcessed)

	w := postJSON(r, "/api/v1/documents/"+docID.String()+"/n8n-callback",
		gin.H{"status": "rejected", "reason": "mismatch"})

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "ALREADY_PROCESSED", resp.Error.Code)
}

func TestDocumentHandler_N8NCallback_InvalidStatus(t *testing.T) {
	r, validationSvc := setupValidationRouter()

	docID := uuid.New()
	validationSvc.On("ProcessWorkflowCallback", mock.Anything, mock.Anything).
		Return(nil, domain.ErrInvalidCallbackStatus)

	w := postJSON(r, "/api/v1/documents/"+docID.String()+"/n8n-callback",
		gin.H{"status": "maybe"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentHandler_N8NCallback_MissingStatus(t *testing.T) {
	r, validationSvc := setupValidationRouter()

	w := postJSON(r, "/api/v1/documents/"+uuid.NewString()+"/n8n-callback", gin.H{"reason": "x"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	validationSvc.AssertNotCalled(t, "ProcessWorkflowCallback")
}

package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"failfast/internal/domain"
	"failfast/internal/service"
	"failfast/mocks"
)

func setupDocumentTypeService() (service.DocumentTypeService, *mocks.MockDocumentTypeRepo) {
	typeRepo := new(mocks.MockDocumentTypeRepo)
	return service.NewDocumentTypeService(typeRepo), typeRepo
}

func TestDocumentTypeService_Create_NormalizesCode(t *testing.T) {
	svc, typeRepo := setupDocumentTypeService()

	typeRepo.On("Create", mock.Anything, mock.MatchedBy(func(dt *domain.DocumentType) bool {
		return dt.Code == "SOAT" && dt.Name == "Seguro Obligatorio"
	})).Return(nil)

	docType, err := svc.Create(context.Background(), &service.DocumentTypeInput{
		Code:       "  soat ",
		Name:       " Seguro Obligatorio ",
		EntityType: domain.EntityTypeVehicle,
	})

	assert.NoError(t, err)
	assert.Equal(t, "SOAT", docType.Code)
	typeRepo.AssertExpectations(t)
}

func TestDocumentTypeService_Create_WebhookRequiredWithWorkflow(t *testing.T) {
	svc, typeRepo := setupDocumentTypeService()

	_, err := svc.Create(context.Background(), &service.DocumentTypeInput{
		Code:            "LICENCIA_CONDUCIR",
		Name:            "Licencia de Conducir",
		EntityType:      domain.EntityTypeEmployee,
		UsesN8NWorkflow: true,
	})

	assert.ErrorIs(t, err, domain.ErrWebhookURLRequired)
	typeRepo.AssertNotCalled(t, "Create")
}

func TestDocumentTypeService_Create_ClearsWebhookWithoutWorkflow(t *testing.T) {
	svc, typeRepo := setupDocumentTypeService()

	typeRepo.On("Create", mock.Anything, mock.MatchedBy(func(dt *domain.DocumentType) bool {
		return dt.N8NWebhookURL == ""
	})).Return(nil)

	docType, err := svc.Create(context.Background(), &service.DocumentTypeInput{
		Code:          "RUT",
		Name:          "RUT",
		EntityType:    domain.EntityTypeSupplier,
		N8NWebhookURL: "http://n8n.local/stale",
	})

	assert.NoError(t, err)
	assert.Empty(t, docType.N8NWebhookURL)
}

func TestDocumentTypeService_Create_InvalidEntityType(t *testing.T) {
	svc, typeRepo := setupDocumentTypeService()

	_, err := svc.Create(context.Background(), &service.DocumentTypeInput{
		Code:       "SOAT",
		EntityType: "warehouse",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidEntityType)
	typeRepo.AssertNotCalled(t, "Create")
}

func TestDocumentTypeService_Delete_InUse(t *testing.T) {
	svc, typeRepo := setupDocumentTypeService()

	id := uuid.New()
	typeRepo.On("CountDocuments", mock.Anything, id).Return(3, nil)

	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrDocumentTypeInUse)
	typeRepo.AssertNotCalled(t, "Delete")
}

func TestDocumentTypeService_Delete_OK(t *testing.T) {
	svc, typeRepo := setupDocumentTypeService()

	id := uuid.New()
	typeRepo.On("CountDocuments", mock.Anything, id).Return(0, nil)
	typeRepo.On("Delete", mock.Anything, id).Return(nil)

	err := svc.Delete(context.Background(), id)

	assert.NoError(t, err)
	typeRepo.AssertExpectations(t)
}

// Command seed populates a development database with a demo company, a few
// entities, and the compliance document type catalog.
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"failfast/internal/config"
	"failfast/internal/domain"
	"failfast/internal/repository/postgres"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	companyRepo := postgres.NewCompanyRepo(db)
	entityRepo := postgres.NewEntityRepo(db)
	typeRepo := postgres.NewDocumentTypeRepo(db)

	company := &domain.Company{
		ID:       uuid.New(),
		Name:     "Transportes Demo S.A.S.",
		TaxID:    "900123456-7",
		IsActive: true,
	}
	if err := companyRepo.Create(ctx, company); err != nil {
		return fmt.Errorf("seeding company: %w", err)
	}
	log.Printf("seeded company %s (%s)", company.Name, company.ID)

	entities := []domain.Entity{
		{EntityType: domain.EntityTypeVehicle, EntityCode: "ABC-123", EntityName: "Kenworth T800"},
		{EntityType: domain.EntityTypeVehicle, EntityCode: "XYZ-789", EntityName: "Chevrolet NPR"},
		{EntityType: domain.EntityTypeEmployee, EntityCode: "EMP-001", EntityName: "Carlos Ramirez"},
		{EntityType: domain.EntityTypeEmployee, EntityCode: "EMP-002", EntityName: "Lucia Gomez"},
		{EntityType: domain.EntityTypeSupplier, EntityCode: "SUP-001", EntityName: "Repuestos del Norte"},
	}
	for i := range entities {
		e := &entities[i]
		e.ID = uuid.New()
		e.CompanyID = company.ID
		e.IsActive = true
		if err := entityRepo.Create(ctx, e); err != nil {
			return fmt.Errorf("seeding entity %s: %w", e.EntityCode, err)
		}
	}
	log.Printf("seeded %d entities", len(entities))

	docTypes := []domain.DocumentType{
		{
			Code: "SOAT", Name: "Seguro Obligatorio de Accidentes de Transito",
			IsMandatory: true, RequiresIssueDate: true, RequiresExpirationDate: true,
			EntityType: domain.EntityTypeVehicle,
		},
		{
			Code: "TECNOMECANICA", Name: "Revision Tecnico-Mecanica",
			IsMandatory: true, RequiresIssueDate: true, RequiresExpirationDate: true,
			EntityType: domain.EntityTypeVehicle,
		},
		{
			Code: "TARJETA_PROPIEDAD", Name: "Tarjeta de Propiedad",
			IsMandatory: true, EntityType: domain.EntityTypeVehicle,
		},
		{
			Code: "LICENCIA_CONDUCIR", Name: "Licencia de Conducir",
			IsMandatory: true, RequiresExpirationDate: true,
			UsesN8NWorkflow: true, N8NWebhookURL: "http://localhost:5678/webhook/licencia-conducir",
			EntityType: domain.EntityTypeEmployee,
		},
		{
			Code: "ARL", Name: "Afiliacion a Riesgos Laborales",
			IsMandatory: true, RequiresIssueDate: true,
			EntityType: domain.EntityTypeEmployee,
		},
		{
			Code: "RUT", Name: "Registro Unico Tributario",
			IsMandatory: true, EntityType: domain.EntityTypeSupplier,
		},
		{
			Code: "CAMARA_COMERCIO", Name: "Certificado de Camara de Comercio",
			RequiresIssueDate: true, EntityType: domain.EntityTypeSupplier,
		},
	}
	for i := range docTypes {
		t := &docTypes[i]
		t.ID = uuid.New()
		if err := typeRepo.Create(ctx, t); err != nil {
			return fmt.Errorf("seeding document type %s: %w", t.Code, err)
		}
	}
	log.Printf("seeded %d document types", len(docTypes))

	return nil
}

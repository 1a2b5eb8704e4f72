package main

import (
	"fmt"
	"log"

	"failfast/internal/config"
	"failfast/internal/handler"
	"failfast/internal/repository/postgres"
	"failfast/internal/router"
	"failfast/internal/service"
	s3storage "failfast/internal/storage/s3"
	"failfast/internal/workflow/n8n"
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

	// Initialize repositories
	companyRepo := postgres.NewCompanyRepo(db)
	entityRepo := postgres.NewEntityRepo(db)
	typeRepo := postgres.NewDocumentTypeRepo(db)
	docRepo := postgres.NewDocumentRepo(db)
	logRepo := postgres.NewValidationLogRepo(db)
	complianceRepo := postgres.NewComplianceRepo(db)

	// Initialize adapters
	storage, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	workflow := n8n.NewN8NClient(&cfg.N8N)

	// Initialize services
	companySvc := service.NewCompanyService(companyRepo)
	entitySvc := service.NewEntityService(companyRepo, entityRepo)
	typeSvc := service.NewDocumentTypeService(typeRepo)
	documentSvc := service.NewDocumentService(docRepo, logRepo, storage, &cfg.S3)
	validationSvc := service.NewValidationService(docRepo, typeRepo)
	uploadSvc := service.NewUploadService(
		companyRepo, entityRepo, typeRepo, docRepo, logRepo,
		storage, workflow, &cfg.S3, &cfg.Upload, cfg.Server.CallbackBaseURL,
	)
	complianceSvc := service.NewComplianceService(companyRepo, typeRepo, complianceRepo)
	reportSvc := service.NewReportService(complianceSvc)
	logSvc := service.NewValidationLogService(logRepo)

	// Initialize handlers
	companyH := handler.NewCompanyHandler(companySvc)
	entityH := handler.NewEntityHandler(entitySvc)
	typeH := handler.NewDocumentTypeHandler(typeSvc)
	documentH := handler.NewDocumentHandler(uploadSvc, documentSvc, validationSvc, complianceSvc, reportSvc)
	logH := handler.NewValidationLogHandler(logSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(companyH, entityH, typeH, documentH, logH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

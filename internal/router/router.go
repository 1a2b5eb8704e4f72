package router

import (
	"github.com/gin-gonic/gin"

	"failfast/internal/handler"
	"failfast/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	companyH *handler.CompanyHandler,
	entityH *handler.EntityHandler,
	typeH *handler.DocumentTypeHandler,
	documentH *handler.DocumentHandler,
	logH *handler.ValidationLogHandler,
	healthH *handler.HealthHandler,
	corsOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	companies := v1.Group("/companies")
	companies.POST("", companyH.Create)
	companies.GET("", companyH.List)
	companies.GET("/:id", companyH.GetByID)
	companies.PUT("/:id", companyH.Update)
	companies.DELETE("/:id", companyH.Delete)

	entities := v1.Group("/entities")
	entities.POST("", entityH.Create)
	entities.GET("", entityH.List)
	entities.GET("/:id", entityH.GetByID)
	entities.PUT("/:id", entityH.Update)
	entities.DELETE("/:id", entityH.Delete)

	docTypes := v1.Group("/document-types")
	docTypes.POST("", typeH.Create)
	docTypes.GET("", typeH.List)
	docTypes.GET("/:id", typeH.GetByID)
	docTypes.PUT("/:id", typeH.Update)
	docTypes.DELETE("/:id", typeH.Delete)

	documents := v1.Group("/documents")
	documents.POST("/upload", documentH.Upload)
	documents.POST("/validate", documentH.Validate)
	documents.POST("/validate/export", documentH.ValidateExport)
	documents.GET("", documentH.List)
	documents.GET("/:id", documentH.GetByID)
	documents.GET("/:id/download", documentH.Download)
	documents.GET("/:id/logs", documentH.Logs)
	documents.DELETE("/:id", documentH.Delete)
	documents.POST("/:id/approve", documentH.Approve)
	documents.POST("/:id/reject", documentH.Reject)
	documents.POST("/:id/n8n-callback", documentH.N8NCallback)

	logs := v1.Group("/validation-logs")
	logs.GET("", logH.List)
	logs.GET("/:id", logH.GetByID)

	return r
}

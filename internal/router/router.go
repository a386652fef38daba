package router

import (
	"github.com/gin-gonic/gin"

	"marksight/internal/config"
	"marksight/internal/handler"
	"marksight/internal/middleware"
)

// Setup builds the Gin engine: middleware chain, health probes, and the
// versioned API surface.
func Setup(
	cfg *config.Config,
	healthH *handler.HealthHandler,
	fileH *handler.FileHandler,
	extractionH *handler.ExtractionHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Probes are registered outside the API group and skipped by the request logger.
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	files := v1.Group("/files")
	files.POST("/upload", fileH.Upload)
	files.GET("", fileH.List)
	files.GET("/:id", fileH.GetByID)
	files.GET("/:id/download", fileH.GetDownloadURL)
	files.DELETE("/:id", fileH.Delete)

	extractions := v1.Group("/extractions")
	extractions.POST("", extractionH.Create)
	extractions.GET("", extractionH.List)
	extractions.GET("/:id", extractionH.GetByID)
	extractions.GET("/:id/csv", extractionH.DownloadCSV)
	extractions.GET("/:id/xlsx", extractionH.DownloadXLSX)

	return r
}

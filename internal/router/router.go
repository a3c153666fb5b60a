package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ALIKZH777/dgdocs/internal/handler"
	"github.com/ALIKZH777/dgdocs/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	templateH *handler.TemplateHandler,
	batchH *handler.BatchHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health check
	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")

	// Field catalog
	v1.GET("/fields", templateH.Fields)

	// Template sessions
	templates := v1.Group("/templates")
	templates.POST("", templateH.Upload)
	templates.GET("", templateH.List)
	templates.GET("/:id", templateH.GetByID)
	templates.DELETE("/:id", templateH.Delete)

	// Record queue and batch runs
	templates.POST("/:id/records", batchH.AddRecord)
	templates.POST("/:id/records/import", batchH.ImportRecords)
	templates.GET("/:id/records", batchH.ListRecords)
	templates.DELETE("/:id/records/:rid", batchH.RemoveRecord)
	templates.POST("/:id/batch", batchH.Run)
	templates.GET("/:id/batch/progress", batchH.Progress)

	return r
}

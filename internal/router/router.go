package router

import (
	"github.com/gin-gonic/gin"

	"subcheck/internal/handler"
	"subcheck/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	corsOrigins []string,
	sessionH *handler.SessionHandler,
	fileH *handler.FileHandler,
	analysisH *handler.AnalysisHandler,
	healthH *handler.HealthHandler,
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

	sessions := v1.Group("/sessions")
	sessions.POST("", sessionH.Create)
	sessions.GET("/:id", sessionH.Get)
	sessions.POST("/:id/reset", sessionH.Reset)
	sessions.DELETE("/:id", sessionH.Delete)

	// File set
	sessions.PUT("/:id/master", fileH.SetMasterList)
	sessions.POST("/:id/datasheets", fileH.AddDatasheets)
	sessions.GET("/:id/datasheets", fileH.ListDatasheets)
	sessions.DELETE("/:id/datasheets/:fileID", fileH.RemoveDatasheet)

	// Workflow phases
	sessions.POST("/:id/completeness", analysisH.CheckCompleteness)
	sessions.POST("/:id/analysis", analysisH.RunAnalysis)
	sessions.GET("/:id/analysis/export", analysisH.ExportCSV)

	return r
}

package http

import (
	"github.com/gin-gonic/gin"

	"docwhisperer/internal/bootstrap"
	"docwhisperer/internal/transport/http/handler"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.StaticFile("/", "web/index.html")
	router.GET("/healthz", healthHandler.Check)

	whisperHandler := handler.NewWhisperHandler(app.Whisper, app.DefaultProvider, app.DefaultTemplate)

	v1 := router.Group("/api/v1")
	v1.POST("/ingest", whisperHandler.Ingest)
	v1.POST("/ask", whisperHandler.Ask)
	v1.GET("/documents", whisperHandler.ListDocuments)
	v1.GET("/analysis", whisperHandler.GetAnalysis)
	v1.GET("/stats", whisperHandler.Stats)

	return router
}

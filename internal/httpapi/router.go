package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/asanchezr/gttb/internal/logging"
)

// NewRouter wires the API routes onto a gin engine.
func NewRouter(handler *Handler, logger logging.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(RequestLogger(logger), gin.Recovery())

	engine.GET("/health", handler.Health)

	api := engine.Group("/api")
	{
		api.POST("/generate", handler.Generate)
		api.GET("/history", handler.History)
		api.GET("/history/:id", handler.GetDraft)
		api.GET("/search", handler.Search)
	}

	return engine
}

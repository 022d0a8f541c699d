package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Register wires every route onto the engine. Shared by the standalone
// server and the serverless entrypoint.
func (h *Handler) Register(r *gin.Engine) {
	r.Use(h.RequestLogger())

	// Admin interface - serve static files from embedded FS
	r.StaticFS("/static", h.GetStaticFS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Casting API",
			"version": "1.0.0",
		})
	})

	r.GET("/admin", h.AdminInterface)
	r.POST("/admin/login", h.Login)

	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/cast", h.CastJSON)
		api.POST("/cast/yaml", h.CastYAML)
		api.POST("/cast/export", h.CastExport)
		api.GET("/casts/:id", h.GetCast)
		api.POST("/validate", h.ValidateDocument)
		api.GET("/usage", h.GetMyUsage)
	}
}

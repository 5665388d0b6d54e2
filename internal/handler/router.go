package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vplaza/catalogue-service-go/internal/middleware"
)

// Router bundles the handlers mounted on the HTTP server.
type Router struct {
	Videos  *VideoHandler
	Imports *ImportHandler
	Health  *HealthHandler
	Auth    *middleware.TokenAuth
}

// Build constructs the gin engine with all routes and middleware attached.
// Read endpoints are public; write endpoints require token auth.
func (r *Router) Build() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.RequestLogger(), middleware.Metrics())

	engine.GET("/health", r.Health.LivenessProbe)
	engine.GET("/ready", r.Health.ReadinessProbe)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	{
		api.GET("/articles", r.Videos.List)
		api.GET("/articles/:id", r.Videos.Get)
		api.GET("/browse", r.Videos.Browse)
		api.GET("/search", r.Videos.Search)
		api.GET("/facets", r.Videos.Facets)

		protected := api.Group("", r.Auth.Handler())
		{
			protected.POST("/articles", r.Videos.Create)
			protected.PUT("/articles/:id", r.Videos.Update)
			protected.DELETE("/articles/:id", r.Videos.Delete)
			protected.POST("/import", r.Imports.Import)
		}
	}

	return engine
}

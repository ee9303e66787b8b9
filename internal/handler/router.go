package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/adboard/internal/middleware"
)

type RouterDeps struct {
	Auth      *AuthHandler
	Ads       *AdHandler
	Health    *HealthHandler
	JWTSecret []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/register", deps.Auth.Register)
	api.POST("/login", deps.Auth.Login)

	api.GET("/ads", deps.Ads.List)
	api.GET("/ads/:id", deps.Ads.Get)
	if deps.Health != nil {
		api.GET("/healthz", deps.Health.Get)
	}

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))
	authGroup.POST("/ads", deps.Ads.Create)
	authGroup.PUT("/ads/:id", deps.Ads.Update)
	authGroup.DELETE("/ads/:id", deps.Ads.Delete)
}

// NewRouter builds a standalone engine with the given middlewares in front of
// the routes.
func NewRouter(deps RouterDeps, middlewares ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	engine.Use(middlewares...)
	RegisterRoutes(engine.Group("/"), deps)
	return engine
}

package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"cabrix/internal/handler"
	"cabrix/internal/middleware"
	"cabrix/internal/service"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthService     *service.AuthService
	AuthHandler     *handler.AuthHandler
	CompanyHandler  *handler.CompanyHandler
	UserHandler     *handler.UserHandler
	VehicleHandler  *handler.VehicleHandler
	TripHandler     *handler.TripHandler
	DispatchHandler *handler.DispatchHandler
	RedisClient     *redis.Client
	NewRelicApp     *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(cors.Default())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check and metrics.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	// Public routes: login and company self-registration.
	api.POST("/login", deps.AuthHandler.Login)
	api.POST("/companies", deps.CompanyHandler.Register)

	// Authenticated routes.
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(deps.AuthService))
	{
		authed.GET("/companies", deps.CompanyHandler.GetAll)
		authed.GET("/companies/:id", deps.CompanyHandler.GetCompany)

		authed.GET("/users", deps.UserHandler.GetAll)
		authed.POST("/users", deps.UserHandler.Create)

		authed.GET("/vehicles", deps.VehicleHandler.GetAll)
		authed.POST("/vehicles", deps.VehicleHandler.Create)
		authed.PUT("/vehicles/:id", deps.VehicleHandler.Update)

		authed.GET("/trips", deps.TripHandler.GetAll)
		authed.POST("/trips", deps.TripHandler.Create)
		authed.GET("/trips/:id", deps.TripHandler.Get)
		authed.PUT("/trips/:id", deps.TripHandler.Update)
		authed.DELETE("/trips/:id", deps.TripHandler.Delete)

		authed.POST("/drivers/assign", deps.DispatchHandler.AssignDriver)
	}

	return router
}

package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"carpool/internal/handler"
	"carpool/internal/middleware"
	"carpool/internal/service"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	UserHandler  *handler.UserHandler
	CarHandler   *handler.CarHandler
	TripHandler  *handler.TripHandler
	TokenManager *service.TokenManager
	RedisClient  *redis.Client
	NewRelicApp  *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	auth := middleware.AuthMiddleware(deps.TokenManager)

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// User routes.
		users := v1.Group("/users")
		{
			users.POST("/register", deps.UserHandler.Register)
			users.POST("/login", deps.UserHandler.Login)
			users.POST("/logout", deps.UserHandler.Logout)
			users.GET("/me", auth, deps.UserHandler.GetMe)
			users.PUT("/me", auth, deps.UserHandler.UpdateMe)
			users.DELETE("/me", auth, deps.UserHandler.DeleteMe)
		}

		// Car routes.
		cars := v1.Group("/cars", auth)
		{
			cars.POST("", deps.CarHandler.Register)
			cars.GET("/me", deps.CarHandler.GetMine)
			cars.DELETE("/me", deps.CarHandler.DeleteMine)
		}

		// Trip routes.
		trips := v1.Group("/trips", auth)
		{
			trips.POST("", deps.TripHandler.CreateTrip)
			trips.GET("", deps.TripHandler.GetAll)
			trips.GET("/my-trips", deps.TripHandler.GetMyTrips)
			trips.GET("/my-reservations", deps.TripHandler.GetMyReservations)
			trips.GET("/:id", deps.TripHandler.GetTrip)
			trips.DELETE("/:id", deps.TripHandler.Delete)
			trips.PUT("/:id/state", deps.TripHandler.SetState)
			trips.POST("/:id/reserve", deps.TripHandler.Reserve)
			trips.PUT("/:id/reservations", deps.TripHandler.Decide)
			trips.DELETE("/:id/reservations", deps.TripHandler.CancelReservation)
		}
	}

	return router
}

package api

import (
	"alcyxob/workout-builder/internal/catalog"
	"alcyxob/workout-builder/internal/metrics"
	"alcyxob/workout-builder/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	router *gin.Engine,
	sessionService service.SessionService,
	catalogService catalog.Service,
	metricsManager *metrics.Manager,
	gatherer prometheus.Gatherer,
) {
	sessionHandler := NewSessionHandler(sessionService)
	workoutHandler := NewWorkoutHandler(sessionService)
	catalogHandler := NewCatalogHandler(catalogService)

	router.Use(
		RecoveryMiddleware(metricsManager),
		RequestIDMiddleware(),
		LoggingMiddleware(),
		MetricsMiddleware(metricsManager),
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	apiV1 := router.Group("/api/v1")
	{
		// --- Live session routes ---
		sessionGroup := apiV1.Group("/sessions")
		{
			sessionGroup.POST("", sessionHandler.StartSession)
			sessionGroup.GET("/:id", sessionHandler.GetSession)
			sessionGroup.DELETE("/:id", sessionHandler.DiscardSession)
			// POST /api/v1/sessions/{id}/commands {"type": "...", "payload": {...}}
			sessionGroup.POST("/:id/commands", sessionHandler.ApplyCommand)
			sessionGroup.POST("/:id/library-exercises", sessionHandler.AddLibraryExercise)
			sessionGroup.POST("/:id/load/:workoutId", sessionHandler.LoadWorkout)
			sessionGroup.POST("/:id/complete", sessionHandler.CompleteSession)
		}

		// --- Stored workouts and templates ---
		apiV1.GET("/workouts", workoutHandler.ListHistory)
		apiV1.GET("/workouts/:id", workoutHandler.GetWorkout)
		apiV1.POST("/workouts/:id/export", workoutHandler.ExportWorkout)
		apiV1.GET("/templates", workoutHandler.ListTemplates)

		// --- Exercise catalog ---
		apiV1.GET("/catalog", catalogHandler.SearchCatalog)
		apiV1.GET("/catalog/:name", catalogHandler.GetCatalogEntry)
	}
}

package api

import (
	"net/http"

	"alcyxob/smartfit/internal/preferences"
	"alcyxob/smartfit/internal/service"
	"alcyxob/smartfit/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies is everything the HTTP layer is wired from.
type Dependencies struct {
	JWTSecret        string
	AuthService      service.AuthService
	ProfileService   service.ProfileService
	WeightService    service.WeightService
	WorkoutService   service.WorkoutService
	RoutineService   service.RoutineService
	ExerciseService  service.ExerciseService
	ReportService    service.ReportService
	Preferences      *preferences.Manager
	RateLimiter      RequestRateLimiter
	ReportsPerMinute int
	Metrics          *telemetry.Manager
	MetricsGatherer  prometheus.Gatherer
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	authHandler := NewAuthHandler(deps.AuthService)
	profileHandler := NewProfileHandler(deps.ProfileService, deps.Preferences)
	weightHandler := NewWeightHandler(deps.WeightService, deps.Preferences)
	workoutHandler := NewWorkoutHandler(deps.WorkoutService)
	routineHandler := NewRoutineHandler(deps.RoutineService)
	exerciseHandler := NewExerciseHandler(deps.ExerciseService)
	preferencesHandler := NewPreferencesHandler(deps.Preferences)
	reportHandler := NewReportHandler(deps.ReportService, deps.Preferences)

	router.Use(RequestMetrics(deps.Metrics), RequestLogger())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if deps.MetricsGatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.MetricsGatherer, promhttp.HandlerOpts{})))
	}

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(deps.JWTSecret))
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, ok := mustUserID(c)
			if !ok {
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID.Hex()})
		})

		// --- Profile ---
		profileGroup := protected.Group("/profile")
		{
			profileGroup.GET("", profileHandler.GetProfile)
			profileGroup.PUT("", profileHandler.UpdateProfile)
			profileGroup.GET("/stats", profileHandler.GetStats)
			profileGroup.POST("/onboarding", profileHandler.Onboard)
			profileGroup.POST("/avatar", profileHandler.CreateAvatarUpload)
		}

		// --- Preferences ---
		preferencesGroup := protected.Group("/preferences")
		{
			preferencesGroup.GET("", preferencesHandler.Get)
			preferencesGroup.PUT("", preferencesHandler.Update)
			preferencesGroup.POST("/toggle-weight", preferencesHandler.ToggleWeight)
			preferencesGroup.POST("/toggle-height", preferencesHandler.ToggleHeight)
		}

		// --- Weights ---
		protected.GET("/weights", weightHandler.History)
		protected.POST("/weights", weightHandler.AddWeight)

		// --- Workouts ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.POST("", workoutHandler.LogWorkout)
			workoutGroup.GET("/volume", workoutHandler.Volume)
			workoutGroup.GET("/last", workoutHandler.LastOfType)
			workoutGroup.GET("/:id/summary", workoutHandler.Summary)
		}

		// --- Routines ---
		routineGroup := protected.Group("/routines")
		{
			routineGroup.GET("", routineHandler.ListRoutines)
			routineGroup.POST("", routineHandler.CreateRoutine)
			routineGroup.GET("/splits", routineHandler.Splits)
			routineGroup.PUT("/:id", routineHandler.UpdateRoutine)
			routineGroup.GET("/:id/exercises", routineHandler.SessionExercises)
		}

		// --- Exercise catalog ---
		protected.GET("/exercises", exerciseHandler.ListExercises)
		protected.GET("/exercises/categories", exerciseHandler.ListCategories)

		// --- Coaching reports ---
		reportGroup := protected.Group("/reports")
		{
			reportGroup.GET("", reportHandler.ListReports)
			reportGroup.GET("/latest", reportHandler.LatestReport)
			generate := []gin.HandlerFunc{reportHandler.GenerateReport}
			if deps.RateLimiter != nil && deps.ReportsPerMinute > 0 {
				limit := RateLimit(deps.RateLimiter, deps.Metrics, "reports", deps.ReportsPerMinute)
				generate = append([]gin.HandlerFunc{limit}, generate...)
			}
			reportGroup.POST("", generate...)
		}
	}
}

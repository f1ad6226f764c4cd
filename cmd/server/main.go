package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/smartfit/internal/api"
	"alcyxob/smartfit/internal/coach"
	"alcyxob/smartfit/internal/config"
	"alcyxob/smartfit/internal/freshness"
	"alcyxob/smartfit/internal/logging"
	"alcyxob/smartfit/internal/preferences"
	"alcyxob/smartfit/internal/repository/mongo"
	"alcyxob/smartfit/internal/routine"
	"alcyxob/smartfit/internal/service"
	"alcyxob/smartfit/internal/storage"
	"alcyxob/smartfit/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// @title SmartFit API
// @version 1.0
// @description Weight tracking, workout logging, routines and coaching reports.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	configPath := flag.String("config", ".", "directory holding config.yaml")
	flag.Parse()

	// --- Configuration ---
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("could not load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   cfg.Log.Stdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.JSON,
	})
	log.Infoln("starting smartfit server ...")

	if cfg.JWT.Secret == "" {
		log.Fatalln("jwt secret not set, use JWT_SECRET")
	}

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("could not connect to MongoDB: %s", err)
	}
	appDB := dbClient.Database(cfg.Database.Name)

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), time.Minute)
	mongo.EnsureIndexes(indexCtx, appDB)
	cancelIndexes()

	// --- Local preferences store ---
	prefsDB, err := preferences.OpenSQLite(cfg.Preferences.DBPath)
	if err != nil {
		log.Fatalf("could not open preferences store: %s", err)
	}

	// --- Redis (rate limiting) ---
	redisClient := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warnf("redis not reachable at %s:%s, report rate limiting will fail: %s", cfg.Redis.Host, cfg.Redis.Port, err)
	}
	cancelPing()

	// --- Object storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.BucketName != "" {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3)
		if err != nil {
			log.Fatalf("failed to initialize S3 storage: %s", err)
		}
	} else {
		log.Warnln("s3 bucket not configured, avatar uploads disabled")
	}

	if cfg.OpenAI.APIKey == "" {
		log.Warnln("openai api key not set, report generation disabled")
	}
	completer := coach.NewOpenAICompleter(coach.OpenAIConfig{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.Model,
	})

	metricsManager := telemetry.NewManager("smartfit", "server", prometheus.DefaultRegisterer)

	// --- Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	weightRepo := mongo.NewMongoWeightRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	routineRepo := mongo.NewMongoRoutineRepository(appDB)
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	reportRepo := mongo.NewMongoReportRepository(appDB)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	exerciseService := service.NewExerciseService(exerciseRepo)
	routineService := service.NewRoutineService(routineRepo, routine.DefaultLibrary())
	weightService := service.NewWeightService(weightRepo, profileRepo, freshness.NewTracker(), metricsManager)
	workoutService := service.NewWorkoutService(workoutRepo, metricsManager)
	profileService := service.NewProfileService(profileRepo, weightRepo, routineService, fileStorage)
	reportService := service.NewReportService(reportRepo, profileRepo, weightRepo, workoutRepo, completer, metricsManager)

	if cfg.Server.SeedExercises {
		seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := exerciseService.SeedDefaults(seedCtx); err != nil {
			log.Errorf("failed to seed exercise catalog: %s", err)
		}
		cancelSeed()
	}

	// --- HTTP ---
	if !log.IsLevelEnabled(log.DebugLevel) {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, api.Dependencies{
		JWTSecret:        cfg.JWT.Secret,
		AuthService:      authService,
		ProfileService:   profileService,
		WeightService:    weightService,
		WorkoutService:   workoutService,
		RoutineService:   routineService,
		ExerciseService:  exerciseService,
		ReportService:    reportService,
		Preferences:      preferences.NewManager(prefsDB),
		RateLimiter:      redis_rate.NewLimiter(redisClient),
		ReportsPerMinute: cfg.RateLimit.ReportsPerMinute,
		Metrics:          metricsManager,
		MetricsGatherer:  prometheus.DefaultGatherer,
	})

	// report generation waits on the text model, hence the long write timeout
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen and serve: %s", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Infoln("shutting down server ...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	err = multierr.Combine(
		server.Shutdown(ctxShutdown),
		redisClient.Close(),
		prefsDB.Close(),
		mongo.DisconnectDB(dbClient),
	)
	if err != nil {
		log.Errorf("shutdown: %s", err)
		os.Exit(1)
	}
	log.Infoln("server exiting")
}

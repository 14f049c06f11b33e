package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/fitness-schedule/internal/api"
	"alcyxob/fitness-schedule/internal/config"
	"alcyxob/fitness-schedule/internal/logger"
	"alcyxob/fitness-schedule/internal/repository/postgres"
	"alcyxob/fitness-schedule/internal/scheduler"
	"alcyxob/fitness-schedule/internal/service"
	"alcyxob/fitness-schedule/internal/storage"

	"github.com/gin-gonic/gin"
)

// @title Fitness Schedule API
// @version 1.0
// @description API for the fitness calendar: workout/class scheduling, workout library, and member progression.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Could not load config: %v", err)
	}
	logger.Init(cfg.Log)
	logger.Log.Info("Configuration loaded")

	// --- Database Connection ---
	db, err := postgres.ConnectDB(cfg.Database.DSN)
	if err != nil {
		logger.Log.Fatalf("Could not connect to Postgres: %v", err)
	}
	if err := postgres.Migrate(db); err != nil {
		logger.Log.Fatalf("Could not migrate schema: %v", err)
	}
	logger.Log.Info("Database connection established")

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		logger.Log.Fatalf("Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	userRepo := postgres.NewUserRepository(db)
	workoutRepo := postgres.NewWorkoutRepository(db)
	classRepo := postgres.NewClassRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	scheduleService := service.NewScheduleService(scheduleRepo, cfg.Schedule.WeekStartDay())
	workoutService := service.NewWorkoutService(workoutRepo, fileStorage)
	classService := service.NewClassService(classRepo)
	rankService := service.NewRankService(userRepo, scheduleRepo)

	// --- Background Jobs ---
	rankScheduler := scheduler.NewRankScheduler(rankService, cfg.Scheduler.RankCron)
	if err := rankScheduler.Start(); err != nil {
		logger.Log.Fatalf("Could not start rank scheduler: %v", err)
	}
	defer rankScheduler.Stop()

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	api.SetupRoutes(router, cfg.JWT.Secret, authService, scheduleService, workoutService, classService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.Log.Infof("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exiting")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ironlog/workout-app/internal/advisor"
	"ironlog/workout-app/internal/api"
	"ironlog/workout-app/internal/config"
	"ironlog/workout-app/internal/repository/mongo"
	"ironlog/workout-app/internal/service"
	"ironlog/workout-app/internal/stats"
	"ironlog/workout-app/internal/storage"
	"ironlog/workout-app/internal/workout"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})
	log.Info("starting workout app server")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.WithError(err).Fatal("could not load config")
	}

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.WithError(err).Fatal("could not connect to MongoDB")
	}
	defer func() {
		log.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.WithError(err).Error("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Info("database connection established")

	// --- Ensure Indexes ---
	go func() { // Run index creation concurrently/in background
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureProfileIndexes(ctx, appDB.Collection("profiles"))
		mongo.EnsurePlanIndexes(ctx, appDB.Collection("plans"))
		mongo.EnsureHistoryIndexes(ctx, appDB.Collection("workout_history"))
		mongo.EnsureCatalogIndexes(ctx, appDB.Collection("catalog_exercises"))
		log.Info("index creation process completed")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize S3 storage")
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	historyRepo := mongo.NewMongoHistoryRepository(appDB)
	catalogRepo := mongo.NewMongoCatalogRepository(appDB)

	// --- Initialize Services ---
	adv := advisor.NewOpenAIAdvisor(cfg.Advisor)
	chatLog := service.NewChatLog()
	sessions := workout.NewManager()
	analyzer := stats.NewAnalyzer(cfg.Analytics)

	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	profileService := service.NewProfileService(profileRepo)
	planService := service.NewPlanService(planRepo, profileRepo, chatLog, adv)
	historyService := service.NewHistoryService(historyRepo)
	sessionService := service.NewSessionService(planService, historyService, sessions)
	statsService := service.NewStatsService(historyRepo, analyzer)
	catalogService := service.NewCatalogService(catalogRepo, fileStorage)
	chatService := service.NewChatService(chatLog, profileRepo, planRepo, adv)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	api.SetupRoutes(router, cfg.JWT.Secret,
		authService, profileService, planService, sessionService,
		historyService, statsService, catalogService, chatService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.WithField("address", cfg.Server.Address).Info("server starting")

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("listen and serve error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exiting")
}

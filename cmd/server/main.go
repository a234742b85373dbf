package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/OpenDAF/daf/internal/auth"
	"github.com/OpenDAF/daf/internal/config"
	"github.com/OpenDAF/daf/internal/database"
	"github.com/OpenDAF/daf/internal/middleware"
	"github.com/OpenDAF/daf/internal/photos"
	"github.com/OpenDAF/daf/internal/tracking/repository"
	"github.com/OpenDAF/daf/internal/tracking/router"
	"github.com/OpenDAF/daf/internal/tracking/service"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	slog.Info("configuration loaded successfully",
		"db_host", cfg.Database.Host,
		"db_port", cfg.Database.Port,
		"db_name", cfg.Database.Name,
		"db_sslmode", cfg.Database.SSLMode,
	)

	slog.Info("server configuration",
		"port", cfg.Server.Port,
		"storage", cfg.Storage.Type,
	)

	// Initialize database connection
	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	if err := database.HealthCheck(db); err != nil {
		log.Fatalf("database health check failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Photo binary storage
	storage, err := photos.NewStorageFromConfig(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("failed to initialize photo storage: %v", err)
	}

	// Repositories
	unitRepo := repository.NewUnitRepository()
	eventRepo := repository.NewUnitEventRepository()
	checklistRepo := repository.NewChecklistRepository()
	inspectionRepo := repository.NewInspectionRepository()
	pdiRepo := repository.NewPDIRepository()
	acceptanceRepo := repository.NewAcceptanceRepository()
	noteRepo := repository.NewItemNoteRepository()

	// Services
	register := service.NewStatusRegister(unitRepo, eventRepo)
	authService := auth.NewService(db, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	photoService := photos.NewService(db, storage)
	services := router.Services{
		Units:       service.NewUnitService(db, unitRepo, eventRepo, register),
		Inspections: service.NewInspectionService(db, inspectionRepo, unitRepo, checklistRepo, register),
		PDIs:        service.NewPDIService(db, pdiRepo, unitRepo, register),
		Acceptances: service.NewAcceptanceService(db, acceptanceRepo, unitRepo, checklistRepo, register),
		Checklists:  service.NewChecklistService(db, checklistRepo),
		Notes:       service.NewItemNoteService(db, noteRepo),
	}

	// HTTP routes
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger())
	engine.Use(middleware.CORS(&cfg.CORS))
	engine.Use(auth.Middleware(authService))

	engine.GET("/healthz", func(c *gin.Context) {
		if err := database.HealthCheck(db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	auth.NewRouter(authService).Register(api)
	photos.NewRouter(photoService).Register(api)
	router.RegisterRoutes(api, services)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: engine,
	}

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		slog.Info("starting server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	// Wait for interrupt signal
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	} else {
		slog.Info("server gracefully stopped")
	}

	slog.Info("server stopped")
}

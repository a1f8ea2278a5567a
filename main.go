package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"portal/internal/config"
	"portal/internal/database"
	"portal/internal/handlers"
	"portal/internal/logger"
	"portal/internal/repositories"
	"portal/internal/services"
	"portal/pkg/rabbitmq"

	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// --- Database ---
	db, err := database.Open(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer database.Close(db)

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	tileRepo := repositories.NewGORMTileRepository(db)

	// --- Initialize RabbitMQ Client (optional) ---
	var publisher services.EventPublisher
	if cfg.TileEventsURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.TileEventsURL, Queue: cfg.TileEventsQueue})
		if err != nil {
			zlog.Fatal("failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		publisher = mqClient
		zlog.Info("publishing tile events", zap.String("queue", mqClient.Queue()))
	}

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, services.NewTokenIssuer(cfg.JWTKey()), cfg.TokenTTL, zlog)
	tileService := services.NewTileService(tileRepo, publisher, zlog)

	created, err := services.NewMigrator(userRepo, tileRepo, cfg.BootstrapAdminPassword, zlog).BootstrapAdminIfNoUsers(context.Background())
	if err != nil {
		zlog.Fatal("failed to bootstrap admin account", zap.Error(err))
	}
	if created {
		zlog.Warn("created default admin account; change its password", zap.String("username", services.AdminUsername))
	}

	app := handlers.NewApp(cfg, handlers.Deps{Auth: authService, Tiles: tileService}, zlog)

	// --- Start HTTP Server ---
	zlog.Info("starting server", zap.String("addr", cfg.AppPort))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			zlog.Error("server stopped", zap.Error(err))
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	zlog.Info("shutting down server")

	if err := app.Shutdown(); err != nil {
		zlog.Error("error during Fiber shutdown", zap.Error(err))
	}
	zlog.Info("server gracefully stopped")
}

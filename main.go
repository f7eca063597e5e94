package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"colornotes/config"
	"colornotes/handler"
	"colornotes/repository"
	"colornotes/services"
	"colornotes/usecase"
	"colornotes/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := utils.NewLogger(os.Stdout, cfg.Log)
	slog.SetDefault(logger)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := connectStore(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.Warn("Failed to disconnect from MongoDB", "error", err)
		}
	}()

	notesRepo := repository.NewNotesRepo(client, cfg.Database.DatabaseName, cfg.Database.Collection, cfg.Database.OpTimeout)
	if err := repository.SetupIndexes(ctx, notesRepo.MongoCollection); err != nil {
		if cfg.Database.StartupPolicy == config.StartupFailFast {
			return err
		}
		logger.Warn("Continuing without indexes", "error", err)
	}

	notesService := usecase.NewNotesService(notesRepo)

	opts := handler.RouterOptions{
		NotesService:   notesService,
		Store:          notesRepo,
		IdempotencyTTL: cfg.Redis.IdempotencyTTL,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		Logger:         logger,
	}
	if cfg.Redis.URL != "" {
		idem, err := services.NewIdempotencyStore(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Warn("Idempotent creates disabled", "error", err)
		} else {
			defer idem.Close()
			opts.Idempotency = idem
		}
	}

	return serve(ctx, cfg, handler.SetupRouter(opts), logger)
}

// connectStore connects to MongoDB before the server starts listening.
// Under the degraded policy an unreachable server is logged and the client
// is kept so the driver can reconnect once it comes back.
func connectStore(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*mongo.Client, error) {
	client, err := utils.ConnectMongo(ctx, cfg)
	if err == nil {
		logger.Info("Connected to MongoDB", "database", cfg.DatabaseName, "collection", cfg.Collection)
		return client, nil
	}

	if client == nil || cfg.StartupPolicy == config.StartupFailFast {
		if client != nil {
			_ = client.Disconnect(context.Background())
		}
		return nil, fmt.Errorf("store unavailable at startup: %w", err)
	}

	logger.Error("MongoDB unreachable, serving in degraded mode", "error", err)
	return client, nil
}

package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/pageza/dishdash/backend/config"
	"github.com/pageza/dishdash/backend/internal/api"
	"github.com/pageza/dishdash/backend/internal/database"
	"github.com/pageza/dishdash/backend/internal/logger"
	"github.com/pageza/dishdash/backend/internal/router"
	"github.com/pageza/dishdash/backend/internal/server"
	"github.com/pageza/dishdash/backend/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logr := logger.New(cfg.LogLevel, cfg.LogFormat)
	logr.WithField("config", cfg.String()).Info("Configuration loaded")

	if err := run(cfg, logr); err != nil {
		logr.WithError(err).Fatal("Server error")
	}
	logr.Info("Server stopped")
}

func run(cfg *config.Config, logr *logrus.Logger) error {
	db, err := database.New(cfg, logr)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logr.WithError(err).Warn("Failed to close database")
		}
	}()

	if err := database.Migrate(db, logr); err != nil {
		return err
	}

	cache := suggestionCache(cfg, logr)

	generator, err := service.NewLLMService(service.LLMConfig{
		APIKey:      cfg.LLMAPIKey,
		APIURL:      cfg.LLMAPIURL,
		Model:       cfg.LLMModel,
		Temperature: cfg.LLMTemperature,
		Timeout:     cfg.LLMTimeout,
	}, logr)
	if err != nil {
		return err
	}
	if cfg.LLMAPIKey == "" {
		logr.Warn("MISTRAL_API_KEY is not set; recipe generation will fail")
	}

	deps, err := api.NewDependencies(cfg, db, generator, cache, logr)
	if err != nil {
		return err
	}

	srv := server.New(cfg, router.SetupRouter(cfg, deps, logr), logr)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		logr.WithField("signal", sig.String()).Info("Received signal")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

// suggestionCache prefers Redis and falls back to an in-process LRU.
func suggestionCache(cfg *config.Config, logr *logrus.Logger) service.SuggestionCache {
	client, err := database.NewRedisClient(cfg, logr)
	if err == nil {
		return service.NewRedisSuggestionCache(client, cfg.SuggestionCacheTTL, logr)
	}
	if !errors.Is(err, database.ErrRedisDisabled) {
		logr.WithError(err).Warn("Redis unavailable, using in-process suggestion cache")
	}

	lruCache, err := service.NewLRUSuggestionCache(cfg.SuggestionCacheSize, cfg.SuggestionCacheTTL)
	if err != nil {
		logr.WithError(err).Warn("Suggestion cache disabled")
		return nil
	}
	return lruCache
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/admin-console-api/internal/api"
	"github.com/admin-console-api/internal/auth"
	"github.com/admin-console-api/internal/config"
	"github.com/admin-console-api/internal/database"
	"github.com/admin-console-api/internal/repository"
	"github.com/admin-console-api/internal/service"
	"github.com/admin-console-api/internal/telemetry"
	"github.com/admin-console-api/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting Admin Console API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize tracing
	shutdownTracing := telemetry.Setup("admin-console-api", log)

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Initialize sessions and token issuing
	sessions := auth.NewMemorySessionStore()
	tokens := auth.NewTokenManager(&cfg.Auth)

	// Initialize services
	services := service.NewServices(repos, sessions, tokens, cfg, log)

	// Start audit retry flusher
	flusherCtx, stopFlusherCtx := context.WithCancel(context.Background())
	services.Audit.StartFlusher(flusherCtx)
	log.Info().Msg("Audit flusher started")

	// Initialize router
	router := api.NewRouter(services, sessions, repos, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop audit flusher and drain pending entries
	stopFlusherCtx()
	services.Audit.StopFlusher()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	if err := shutdownTracing(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to shut down tracing")
	}

	log.Info().Msg("Server exited gracefully")
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prompt2world-server/internal/blueprint"
	"prompt2world-server/internal/experience"
	"prompt2world-server/internal/middleware"
	"prompt2world-server/internal/prefab"
	"prompt2world-server/internal/server"
	"prompt2world-server/internal/session"
	"prompt2world-server/internal/shared/config"
	"prompt2world-server/internal/shared/database"
	"prompt2world-server/internal/shared/logger"
	"prompt2world-server/internal/shared/redis"
	"prompt2world-server/internal/telemetry"
	"prompt2world-server/internal/worldgen"
)

// sessionCleanupInterval is how often expired sessions get deactivated.
const sessionCleanupInterval = time.Hour

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Init(); err != nil {
		return err
	}
	logger.Init()

	cfg := config.GlobalConfig
	log := slog.Default()

	db, err := database.Connect()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return err
	}

	cache, err := redis.Connect()
	if err != nil {
		return err
	}
	defer cache.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessionRepo := session.NewRepository(db, log)
	sessionService := session.NewService(sessionRepo, cache, log)

	prefabRepo := prefab.NewRepository(db, log)
	prefabService := prefab.NewService(prefabRepo, log)

	if cfg.Worldgen.SeedCatalog {
		if err := prefab.Seed(ctx, prefabRepo, log); err != nil {
			return err
		}
	}

	generator := worldgen.NewGenerator(prefabService, worldgen.DefaultTables(), worldgenConfig(cfg), log)

	blueprintRepo := blueprint.NewRepository(db, log)
	blueprintService := blueprint.NewService(generator, blueprintRepo, log)

	experienceRepo := experience.NewRepository(db, log)
	experienceService := experience.NewService(experienceRepo, blueprintService, log)

	telemetryRepo := telemetry.NewRepository(db, log)
	telemetryService := telemetry.NewService(telemetryRepo, log)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Enabled:           cfg.RateLimit.Enabled,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.BurstSize,
	})

	router := server.NewRouter(&server.Services{
		DB:          db,
		Sessions:    sessionService,
		Prefabs:     prefabService,
		Blueprints:  blueprintService,
		Experiences: experienceService,
		Telemetry:   telemetryService,
		RateLimiter: rateLimiter,
		Logger:      log,
	})

	go cleanupSessions(ctx, sessionService, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Server listening",
			"port", cfg.Server.Port,
			"environment", cfg.Server.Environment,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutdown signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("Server stopped cleanly")
	return nil
}

func worldgenConfig(cfg *config.Config) worldgen.Config {
	wc := worldgen.DefaultConfig()
	wc.MaxSelectedPrefabs = cfg.Worldgen.MaxSelectedPrefabs
	wc.WorldBound = cfg.Worldgen.WorldBound
	wc.MinSeparation = cfg.Worldgen.MinSeparation
	wc.ClearanceRadius = cfg.Worldgen.ClearanceRadius
	wc.MaxPlacementRetries = cfg.Worldgen.MaxPlacementRetries
	wc.MaxSpawnRetries = cfg.Worldgen.MaxSpawnRetries
	wc.CatalogQueryTimeout = cfg.Worldgen.CatalogQueryTimeout
	return wc
}

// cleanupSessions periodically deactivates expired sessions until shutdown.
func cleanupSessions(ctx context.Context, sessions *session.Service, log *slog.Logger) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := sessions.CleanupExpired(ctx); err != nil {
				log.Warn("Session cleanup failed", "error", err)
			}
		}
	}
}

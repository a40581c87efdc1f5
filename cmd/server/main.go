// Package main is the entry point for the adminsuite API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"adminsuite/internal/app"
	"adminsuite/internal/config"
	v1 "adminsuite/internal/infrastructure/http/v1"
	"adminsuite/internal/infrastructure/storage/postgres"
	"adminsuite/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid configuration", "error", err)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Infow("starting adminsuite server", "env", cfg.App.Env)

	a, err := app.Open(ctx, cfg)
	if err != nil {
		log.Fatalw("failed to initialize", "error", err)
	}
	defer a.Close()

	router := v1.NewRouter(v1.RouterConfig{
		Logger:           log,
		DB:               a.Pool,
		JWTValidator:     a.JWT,
		Idempotency:      a.Idempotency,
		AuthService:      a.Auth,
		UsersService:     a.Users,
		AnalyticsService: a.Analytics,
		InventoryService: a.Inventory,
		ReportsService:   a.Reports,
		Debug:            cfg.IsDevelopment(),
	})

	var handler http.Handler = router
	if cfg.HTTP.Gzip {
		handler = gzhttp.GzipHandler(router)
	}

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.App.Port, "gzip", cfg.HTTP.Gzip)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	bgCtx, stopBackground := context.WithCancel(ctx)
	defer stopBackground()
	go runMaintenance(bgCtx, a)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

// runMaintenance logs pool statistics and drops expired idempotency keys
// every five minutes until ctx ends.
func runMaintenance(ctx context.Context, a *app.App) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			postgres.LogPoolStats(ctx, a.Pool)
			if n, err := a.Idempotency.CleanupExpired(ctx); err != nil {
				logger.Warn(ctx, "idempotency cleanup failed", "error", err)
			} else if n > 0 {
				logger.Info(ctx, "expired idempotency keys removed", "count", n)
			}
		}
	}
}

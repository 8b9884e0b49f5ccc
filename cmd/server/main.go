// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appconfig "github.com/festy23/querystudy/internal/config"
	"github.com/festy23/querystudy/internal/database/database"
	"github.com/festy23/querystudy/internal/database/migrate"
	"github.com/festy23/querystudy/internal/health"
	helloRouter "github.com/festy23/querystudy/internal/hello/router"
	memberHandler "github.com/festy23/querystudy/internal/member/handler"
	memberRouter "github.com/festy23/querystudy/internal/member/router"
	"github.com/festy23/querystudy/internal/middleware"
	statisticsRouter "github.com/festy23/querystudy/internal/statistics/router"
	teamRouter "github.com/festy23/querystudy/internal/team/router"
	"github.com/festy23/querystudy/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
	}

	cfg := appconfig.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	sugar, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	if err := run(cfg, sugar); err != nil {
		sugar.Fatalw("server stopped with error", "error", err)
	}
}

func run(cfg appconfig.Config, sugar *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, sugar, cfg.Logger.SQLLevel)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			sugar.Warnw("failed to close database", "error", err)
		}
	}()

	if err := migrate.Migrate(db); err != nil {
		return err
	}
	if version, dirty, err := migrate.Version(db); err == nil {
		sugar.Infow("schema ready", "version", version, "dirty", dirty)
	}

	router, err := newRouter(cfg, db, sugar)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		sugar.Infow("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	sugar.Infow("shutting down server", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func newRouter(cfg appconfig.Config, db *gorm.DB, sugar *zap.SugaredLogger) (*gin.Engine, error) {
	gin.SetMode(cfg.GinMode)
	if err := memberHandler.RegisterValidations(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery(sugar), middleware.Logger(sugar, "/health", "/metrics"))

	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics, err := middleware.NewMetrics(reg)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		r.Use(metrics.Handler())
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	r.GET("/health", health.New(db, sugar).Check)
	teamRouter.RegisterRoutes(r, db, sugar)
	memberRouter.RegisterRoutes(r, db, cfg.Paging, sugar)
	statisticsRouter.RegisterRoutes(r, db, sugar)
	helloRouter.RegisterRoutes(r, db, sugar)

	return r, nil
}

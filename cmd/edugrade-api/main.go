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
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/edugrade-api/api/swagger"
	"github.com/noah-isme/edugrade-api/internal/grading"
	"github.com/noah-isme/edugrade-api/internal/handler"
	"github.com/noah-isme/edugrade-api/internal/repository"
	"github.com/noah-isme/edugrade-api/internal/service"
	"github.com/noah-isme/edugrade-api/pkg/cache"
	"github.com/noah-isme/edugrade-api/pkg/config"
	"github.com/noah-isme/edugrade-api/pkg/logger"
)

// @title EduGrade API
// @version 1.0.0
// @description Grade aggregation and classification engine for teacher gradebooks
// @BasePath /api/v1
// @schemes http

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := service.NewMetricsService()
	checks := map[string]handler.Pinger{}

	var cacheRepo service.CacheRepository
	if cfg.Reports.CacheEnabled {
		client, err := cache.NewRedis(context.Background(), cfg.Redis)
		if err != nil {
			logr.Warn("report cache disabled: redis unavailable", zap.Error(err))
		} else {
			defer client.Close() //nolint:errcheck
			cacheRepo = repository.NewCacheRepository(client)
			checks["redis"] = redisPinger(client)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Reports.CacheTTL, logr, cacheRepo != nil)

	gradebookSvc := service.NewGradebookService(service.GradebookServiceParams{
		Cache:     cacheSvc,
		Metrics:   metrics,
		Validator: service.NewValidator(),
		Logger:    logr,
		Config: service.GradebookServiceConfig{
			CacheTTL: cfg.Reports.CacheTTL,
			Trend:    grading.TrendOptions{MinGrades: cfg.Trend.MinGrades, Threshold: cfg.Trend.Threshold},
		},
	})
	exportSvc := service.NewExportService(gradebookSvc, metrics, logr, nil, nil)

	r := newRouter(cfg, logr, routerDeps{
		gradebook: handler.NewGradebookHandler(gradebookSvc, exportSvc, cfg.Snapshots.MaxBytes),
		metrics:   handler.NewMetricsHandler(metrics, checks),
		registry:  metrics,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", server.Addr), zap.String("env", cfg.Env),
			zap.Bool("report_cache", cacheSvc.Enabled()))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	case sig := <-shutdown:
		logr.Info("shutdown started", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logr.Error("graceful shutdown failed", zap.Error(err))
			_ = server.Close()
		}
	}
}

func redisPinger(client *redis.Client) handler.PingerFunc {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

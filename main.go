package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"calc-hub/config"
	httpLayer "calc-hub/http"
	"calc-hub/jobs"
	"calc-hub/logging"
	"calc-hub/reference"
	"calc-hub/repository"
	"calc-hub/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(os.Stderr, cfg.App.LogLevel)
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tables, err := reference.Default()
	if err != nil {
		return fmt.Errorf("load reference tables: %w", err)
	}

	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	checks := map[string]func(context.Context) error{
		"store": store.Ping,
	}

	var cache repository.CacheRepository
	if cfg.Cache.RedisAddr != "" {
		redisCache := repository.NewRedisCache(cfg.Cache.RedisAddr)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			// calculations still work without a cache
			logger.Warn("redis unavailable", "addr", cfg.Cache.RedisAddr, "error", err)
		}
		checks["cache"] = redisCache.Ping
		cache = redisCache
	} else {
		cache = repository.NewMemoryCache()
	}

	loanService := service.NewLoanService()
	services := httpLayer.Services{
		Runner:   service.NewRunner(cache, store.Calculations(), cfg.Cache.TTL, logger),
		Loans:    loanService,
		Terms:    service.NewTermRecommendationService(loanService),
		Debts:    service.NewDebtPayoffService(logger),
		Savings:  service.NewSavingsService(tables),
		Tax:      service.NewTaxService(tables),
		Health:   service.NewHealthService(),
		DateTime: service.NewDateTimeService(),
		Math:     service.NewMathService(),
		Auth:     service.NewAuthService(store.Users(), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		History:  store.Calculations(),
		Tables:   tables,
	}

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	defer rateLimiter.Stop()

	scheduler := jobs.NewScheduler(store.Calculations(), cfg.Retention.MaxAge, logger)
	if err := scheduler.Start(cfg.Retention.Schedule); err != nil {
		return err
	}

	router := httpLayer.NewRouter(services, httpLayer.RouterConfig{
		Version:        cfg.App.Version,
		CORSOrigins:    cfg.Server.CORSOrigins,
		TrustedProxies: cfg.Server.TrustedProxies,
		Limiter:        rateLimiter,
		Checks:         checks,
	}, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr, "store", cfg.Store.Driver, "env", cfg.App.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("start server: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	scheduler.Stop(shutdownCtx)

	logger.Info("server exited")
	return nil
}

func openStore(ctx context.Context, cfg config.StoreConfig) (repository.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		store, err := repository.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	case config.DriverPostgres:
		store, err := repository.OpenPostgres(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return store, nil
	default:
		return repository.NewMemoryStore(), nil
	}
}

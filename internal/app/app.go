package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/secondbank/mobile-api/internal/api"
	"github.com/secondbank/mobile-api/internal/api/middleware"
	"github.com/secondbank/mobile-api/internal/bank"
	"github.com/secondbank/mobile-api/internal/cache"
	"github.com/secondbank/mobile-api/internal/config"
	"github.com/secondbank/mobile-api/internal/models"
	"github.com/secondbank/mobile-api/internal/notification"
	"github.com/secondbank/mobile-api/internal/observability"
	"github.com/secondbank/mobile-api/internal/prefs"
	"github.com/secondbank/mobile-api/internal/transfer"
	"github.com/secondbank/mobile-api/internal/validation"
	"github.com/secondbank/mobile-api/internal/worker"
)

// Run bootstraps the HTTP server and the janitor worker, blocking until shutdown.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	observability.Init()
	middleware.SetJWTSecret(cfg.JWTSecret)
	middleware.SetJWTValidation(cfg.JWTIssuer, cfg.JWTAudience)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	directory := bank.NewMockDirectory(cfg.LookupFailureRate, cfg.LookupLatency, nil)
	gateway := bank.NewMockGateway(cfg.TransferFailureRate, cfg.TransferLatency, nil)
	authenticator := bank.NewMockAuthenticator(
		cfg.DemoUsername,
		string(passwordHash),
		models.User{ID: uuid.NewString(), Name: cfg.DemoName},
		cfg.LoginFailureRate,
		cfg.LoginLatency,
		nil,
	)

	store := prefs.New(cfg.StateFile, logger)
	validationCache := cache.New[string](cfg.ValidationCacheTTL)
	validator := validation.NewService(ctx, directory, validationCache, cfg.DebounceWindow, cfg.LookupRetries, logger)
	submitter := transfer.NewSubmitter(gateway, logger)
	feed := notification.NewFeed()
	flow := transfer.NewFlow(submitter, store, feed, cfg.SeedBalance, logger)
	logger.Info("flow state restored",
		zap.String("balance", flow.Balance().StringFixed(2)),
		zap.Bool("dark", flow.Dark()),
	)

	janitor := worker.NewJanitor(validationCache, validator, logger).
		WithInterval(cfg.JanitorInterval).
		WithIdleTTL(cfg.SessionIdleTTL)
	stopJanitor := janitor.Run(ctx)
	logger.Info("janitor started", zap.Duration("interval", cfg.JanitorInterval))

	router := api.NewRouter(cfg, logger, flow, validator, feed, authenticator)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("port", cfg.HTTPPort))
		serverErr <- server.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	}

	logger.Info("stopping janitor")
	stopJanitor()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}

	logger.Info("shutdown complete")
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	switch strings.ToLower(level) {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info", "":
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	return cfg.Build()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"healthyledger/internal/backend"
	"healthyledger/internal/cache"
	"healthyledger/internal/cli"
	apphttp "healthyledger/internal/http"
	applog "healthyledger/internal/log"
	"healthyledger/internal/services"
	"healthyledger/internal/session"
)

const maxSessions = 10000

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation failed: %v\n", err)
		os.Exit(1)
	}
	logger := cli.SetupLogger(cfg.LogLevel, applog.ComponentApp)
	logger.Info("Starting healthyledger",
		applog.NewFields().WithOperation(applog.OpStartup).ToSlice()...)

	backendConfig, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger).CreateBackend(context.Background(), backendConfig)
	if err != nil {
		logger.Error("Failed to initialize backend", "backend", backendConfig.Type, "error", err)
		os.Exit(1)
	}

	svc := services.NewLedgerService(res.Backend, res.Publisher)
	srv, err := apphttp.NewServer(apphttp.Options{
		Addr:          ":" + cfg.Port,
		Ledger:        svc,
		Sessions:      session.NewManager(cfg.SessionTTL, maxSessions, cfg.DefaultLocale),
		Logger:        logger,
		DefaultLocale: cfg.DefaultLocale,
		Currency:      cfg.Currency,
		Caches:        []cache.Cleaner{svc.UsersCache()},
	})
	if err != nil {
		logger.Error("Failed to create server", "error", err)
		_ = res.Close()
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		logger.Info("Shutting down server", applog.NewFields().WithOperation(applog.OpShutdown).ToSlice()...)
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown failed", "error", err)
		}
		if err := res.Close(); err != nil {
			logger.Error("Backend cleanup failed", "error", err)
		}
	})

	go func() {
		logger.Info("Server listening", "addr", srv.Addr, "backend", backendConfig.Type, "locale", cfg.DefaultLocale)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	cli.WaitForShutdown(ctx, done)
}

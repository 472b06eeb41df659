package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"healthyledger/internal/amqp"
	"healthyledger/internal/backend"
	"healthyledger/internal/cli"
	applog "healthyledger/internal/log"
	"healthyledger/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation failed: %v\n", err)
		os.Exit(1)
	}
	logger := cli.SetupLogger(cfg.LogLevel, applog.ComponentWorker)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	primaryConfig, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	mirrorConfig := backend.MirrorConfig(cfg)
	if mirrorConfig.Type == primaryConfig.Type && mirrorConfig.DataDir == primaryConfig.DataDir {
		logger.Error("Mirror and primary store are the same", "backend", primaryConfig.Type, "dir", primaryConfig.DataDir)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger)
	primary, closePrimary, err := factory.CreateStore(context.Background(), primaryConfig)
	if err != nil {
		logger.Error("Failed to open primary store", "backend", primaryConfig.Type, "error", err)
		os.Exit(1)
	}
	mirror, closeMirror, err := factory.CreateStore(context.Background(), mirrorConfig)
	if err != nil {
		logger.Error("Failed to open mirror store", "backend", mirrorConfig.Type, "error", err)
		_ = backend.CloseAll(closePrimary)
		os.Exit(1)
	}

	consumer, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", "error", err)
		_ = backend.CloseAll(closeMirror, closePrimary)
		os.Exit(1)
	}

	w := worker.NewMirrorWorker(primary, mirror, cfg.ResyncConcurrency)
	logger.Info("Worker starting",
		"primary", primaryConfig.Type,
		"mirror", mirrorConfig.Type,
		"resync_interval", cfg.ResyncInterval,
		"concurrency", cfg.ResyncConcurrency)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(context.Context) {
		logger.Info("Shutting down worker", applog.NewFields().WithOperation(applog.OpShutdown).ToSlice()...)
		// The consumer goes first so no handler touches a closed store.
		if err := backend.CloseAll(consumer.Close, closeMirror, closePrimary); err != nil {
			logger.Error("Cleanup failed", "error", err)
		}
	})

	if _, err := w.ResyncAll(ctx); err != nil {
		logger.Error("Initial resync failed", applog.NewFields().WithOperation(applog.OpResync).WithError(err).ToSlice()...)
	}

	go w.RunPeriodic(ctx, cfg.ResyncInterval)
	go func() {
		if err := consumer.ConsumeLedgerSaved(ctx, w.HandleLedgerSaved); err != nil && ctx.Err() == nil {
			logger.Error("AMQP consumer stopped", "error", err)
		}
	}()

	cli.WaitForShutdown(ctx, done)
}

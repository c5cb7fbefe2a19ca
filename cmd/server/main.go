package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fabrica-backend/internal/config"
	"fabrica-backend/internal/database"
	"fabrica-backend/internal/ledger"
	"fabrica-backend/internal/logging"
	"fabrica-backend/internal/metrics"
	"fabrica-backend/internal/report"
	"fabrica-backend/internal/server"
	"fabrica-backend/internal/share"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	db, err := database.Open(cfg, logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}

	m := metrics.New()
	store := ledger.New(db, ledger.WithLogger(logger), ledger.WithObserver(m))

	ctx := context.Background()
	if cfg.SeedSampleData {
		if _, err := store.SeedSampleProducts(ctx); err != nil {
			logger.Warn("sample data not loaded", zap.Error(err))
		}
	}
	if balance, err := store.CurrentBalance(ctx); err == nil {
		m.SetBalance(balance)
	}

	reports := report.NewService(
		store,
		report.Output{Dir: cfg.ReportDir, AppTitle: cfg.AppTitle},
		cfg.ReportFormat,
		share.New(cfg, logger),
		logger,
	)

	app := server.New(server.Deps{
		Config:  cfg,
		Store:   store,
		Reports: reports,
		Metrics: m,
		Log:     logger,
	})

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	logger.Info("server listening", zap.String("port", cfg.HTTPPort), zap.String("driver", cfg.DatabaseDriver))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logger.Fatal("listen", zap.Error(err))
	}
}

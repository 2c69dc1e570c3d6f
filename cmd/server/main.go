package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/emberfall/battle-server-go/internal/config"
	"github.com/emberfall/battle-server-go/internal/game/cardpool"
	"github.com/emberfall/battle-server-go/internal/repository"
	"github.com/emberfall/battle-server-go/internal/server"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting Emberfall battle server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	catalog := cardpool.Catalog()
	logger.Info("card catalog loaded", zap.Int("definitions", catalog.Len()))

	var store server.BattleStore
	if cfg.Database.URL != "" {
		pool, err := repository.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		repo, err := repository.NewBattleRepository(ctx, pool)
		if err != nil {
			logger.Fatal("failed to initialize battle repository", zap.Error(err))
		}
		store = repo
		logger.Info("battle persistence enabled")
	} else {
		logger.Warn("no database configured; battles are held in memory only")
	}

	manager := server.NewBattleManager(catalog, cfg.Battle, store, logger)
	if store != nil {
		if err := manager.Preload(ctx); err != nil {
			logger.Warn("failed to preload stored battles", zap.Error(err))
		}
	}
	logger.Info("battle manager initialized",
		zap.Int("point_target", cfg.Battle.PointTarget),
		zap.Bool("mulligan", cfg.Battle.WithMulligan),
	)

	hub := server.NewHub(manager, logger)
	go hub.Run(ctx)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.ListenAndServe(ctx, cfg.Server.Address, hub, logger)
	}()

	logger.Info("server initialized", zap.String("address", cfg.Server.Address))

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		if err != nil {
			logger.Error("server error", zap.Error(err))
		}
	}

	logger.Info("shutting down gracefully...")
	cancel()
	logger.Info("server stopped")
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

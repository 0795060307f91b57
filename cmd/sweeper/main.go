package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-computed-properties/internal/adapter"
	"github.com/feral-file/ff-computed-properties/internal/config"
	"github.com/feral-file/ff-computed-properties/internal/lifecycle"
	"github.com/feral-file/ff-computed-properties/internal/logger"
	temporal "github.com/feral-file/ff-computed-properties/internal/providers/temporal"
	"github.com/feral-file/ff-computed-properties/internal/registry"
	"github.com/feral-file/ff-computed-properties/internal/store"
	"github.com/feral-file/ff-computed-properties/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Sweeper")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

	// Workspace listing tolerates replication lag
	if cfg.Database.ReadHost != "" {
		if err := store.UseReadReplica(db, postgres.Open(cfg.Database.ReadDSN())); err != nil {
			logger.FatalCtx(ctx, "Failed to register read replica", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Registered read replica", zap.String("read_host", cfg.Database.ReadHost))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	blocklist, err := registry.NewBlocklistLoader(adapter.NewFileSystem(), adapter.NewJSON()).Load(cfg.BlocklistPath)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load workspace blocklist", zap.Error(err), zap.String("path", cfg.BlocklistPath))
	}

	// Connect to Temporal
	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    temporal.NewZapLoggerAdapter(logger.Default()),
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
	}
	defer temporalClient.Close()
	logger.InfoCtx(ctx, "Connected to Temporal", zap.String("namespace", cfg.Temporal.Namespace))

	manager := lifecycle.NewManager(lifecycle.Config{TaskQueue: cfg.Temporal.TaskQueue}, dataStore, temporalClient, clock)

	// Initialize lifecycle reconciler
	reconcilerConfig := &sweeper.LifecycleReconcilerConfig{
		Interval:       cfg.LifecycleReconciler.Interval,
		BatchSize:      cfg.LifecycleReconciler.BatchSize,
		WorkerPoolSize: cfg.LifecycleReconciler.Worker.WorkerPoolSize,
		MaxRetries:     cfg.LifecycleReconciler.MaxRetries,
	}
	reconciler := sweeper.NewLifecycleReconciler(reconcilerConfig, dataStore, manager, blocklist, clock)

	logger.InfoCtx(ctx, "Initialized lifecycle reconciler (continuous mode)",
		zap.Duration("interval", reconcilerConfig.Interval),
		zap.Int("batch_size", reconcilerConfig.BatchSize),
		zap.Int("worker_pool_size", reconcilerConfig.WorkerPoolSize),
	)

	// Start the sweeper in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := reconciler.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the sweeper
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := reconciler.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "Sweeper stopped")
}

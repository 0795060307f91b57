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
	"github.com/feral-file/ff-computed-properties/internal/api/middleware"
	"github.com/feral-file/ff-computed-properties/internal/api/server"
	"github.com/feral-file/ff-computed-properties/internal/api/shared/executor"
	"github.com/feral-file/ff-computed-properties/internal/computation"
	"github.com/feral-file/ff-computed-properties/internal/config"
	"github.com/feral-file/ff-computed-properties/internal/emitter"
	"github.com/feral-file/ff-computed-properties/internal/lifecycle"
	"github.com/feral-file/ff-computed-properties/internal/logger"
	"github.com/feral-file/ff-computed-properties/internal/materializer"
	"github.com/feral-file/ff-computed-properties/internal/providers/jetstream"
	temporal "github.com/feral-file/ff-computed-properties/internal/providers/temporal"
	"github.com/feral-file/ff-computed-properties/internal/registry"
	"github.com/feral-file/ff-computed-properties/internal/reset"
	"github.com/feral-file/ff-computed-properties/internal/scheduler"
	"github.com/feral-file/ff-computed-properties/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Computed Properties Admin API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	// Listing and scheduling reads tolerate replication lag; computation stays on the primary
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

	// Workspace locks stay open for a whole pass, so they get their own connections
	lockDB, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to open lock pool", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(lockDB, cfg.Database.LockMaxOpenConns, 1, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure lock pool", zap.Error(err))
	}

	// Initialize store
	dataStore := store.NewPGStore(db, store.WithLockPool(lockDB))

	// Initialize adapters
	fs := adapter.NewFileSystem()
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()
	natsJS := adapter.NewNatsJetStream()

	// Connect to Temporal with logger integration
	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    temporal.NewZapLoggerAdapter(logger.Default()),
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err))
	}
	defer temporalClient.Close()
	logger.InfoCtx(ctx, "Connected to Temporal", zap.String("host_port", cfg.Temporal.HostPort))

	// Load operator blocklist
	blocklist, err := registry.NewBlocklistLoader(fs, jsonAdapter).Load(cfg.BlocklistPath)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load workspace blocklist",
			zap.Error(err),
			zap.String("path", cfg.BlocklistPath))
	}

	// Manual computation passes publish like the worker does
	publisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
		SubjectPrefix:  cfg.NATS.SubjectPrefix,
	}, natsJS, jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create change publisher", zap.Error(err))
	}
	defer publisher.Close()

	mat := materializer.NewMaterializer(materializer.Config{
		PassConcurrency: cfg.Compute.PassConcurrency,
		SubWindow:       cfg.Compute.SubWindow,
		MaxPassDuration: cfg.Compute.MaxPassDuration,
		EventBatchSize:  cfg.Compute.EventBatchSize,
	}, dataStore, clock)
	runner := computation.NewRunner(dataStore, mat,
		emitter.NewEmitter(publisher, dataStore, emitter.Config{PendingLimit: cfg.Compute.PendingLimit}, clock))

	manager := lifecycle.NewManager(lifecycle.Config{TaskQueue: cfg.Temporal.TaskQueue}, dataStore, temporalClient, clock)
	exec := executor.NewExecutor(
		dataStore,
		manager,
		reset.NewResetter(dataStore, manager),
		runner,
		scheduler.NewScheduler(dataStore, blocklist),
		clock,
	)

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}
	srv := server.New(serverConfig, exec)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
	}
	cancel()

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}

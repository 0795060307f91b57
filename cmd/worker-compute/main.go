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
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-computed-properties/internal/adapter"
	"github.com/feral-file/ff-computed-properties/internal/computation"
	"github.com/feral-file/ff-computed-properties/internal/config"
	"github.com/feral-file/ff-computed-properties/internal/emitter"
	"github.com/feral-file/ff-computed-properties/internal/logger"
	"github.com/feral-file/ff-computed-properties/internal/materializer"
	"github.com/feral-file/ff-computed-properties/internal/providers/jetstream"
	temporal "github.com/feral-file/ff-computed-properties/internal/providers/temporal"
	"github.com/feral-file/ff-computed-properties/internal/registry"
	"github.com/feral-file/ff-computed-properties/internal/scheduler"
	"github.com/feral-file/ff-computed-properties/internal/store"
	"github.com/feral-file/ff-computed-properties/internal/workflows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadWorkerComputeConfig(*configFile, *envPath)
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
			"service": "worker-compute",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Worker Compute")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
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
	logger.InfoCtx(ctx, "Connected to database", zap.Int("max_open_conns", cfg.Database.MaxOpenConns))

	// Workspace locks stay open for a whole pass, so they get their own connections
	lockDB, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to open lock pool", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(lockDB, cfg.Database.LockMaxOpenConns, 1, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure lock pool", zap.Error(err))
	}

	dataStore := store.NewPGStore(db, store.WithLockPool(lockDB))

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	clockAdapter := adapter.NewClock()
	fs := adapter.NewFileSystem()
	natsJS := adapter.NewNatsJetStream()

	// Load operator blocklist
	blocklist, err := registry.NewBlocklistLoader(fs, jsonAdapter).Load(cfg.BlocklistPath)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load workspace blocklist", zap.Error(err), zap.String("path", cfg.BlocklistPath))
	}

	// Connect the change publisher
	publisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
		SubjectPrefix:  cfg.NATS.SubjectPrefix,
	}, natsJS, jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create change publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer publisher.Close()

	// Computation pipeline
	mat := materializer.NewMaterializer(materializer.Config{
		PassConcurrency: cfg.Compute.PassConcurrency,
		SubWindow:       cfg.Compute.SubWindow,
		MaxPassDuration: cfg.Compute.MaxPassDuration,
		EventBatchSize:  cfg.Compute.EventBatchSize,
	}, dataStore, clockAdapter)
	changeEmitter := emitter.NewEmitter(publisher, dataStore, emitter.Config{PendingLimit: cfg.Compute.PendingLimit}, clockAdapter)
	runner := computation.NewRunner(dataStore, mat, changeEmitter)
	sched := scheduler.NewScheduler(dataStore, blocklist)

	// Connect to Temporal with logger integration
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

	// Initialize executor for activities
	executor := workflows.NewExecutor(
		workflows.ExecutorConfig{Interval: cfg.Compute.Interval},
		dataStore,
		runner,
		sched,
		blocklist,
		temporalClient,
		clockAdapter,
		adapter.NewActivity(),
	)

	// Create Temporal worker
	temporalWorker := worker.New(
		temporalClient,
		cfg.Temporal.TaskQueue,
		worker.Options{
			MaxConcurrentActivityExecutionSize: cfg.Temporal.MaxConcurrentActivityExecutionSize,
			WorkerActivitiesPerSecond:          cfg.Temporal.WorkerActivitiesPerSecond,
			MaxConcurrentActivityTaskPollers:   cfg.Temporal.MaxConcurrentActivityTaskPollers,
			Interceptors:                       []interceptor.WorkerInterceptor{temporal.NewSentryActivityInterceptor()},
		})
	logger.InfoCtx(ctx, "Created Temporal worker", zap.String("taskQueue", cfg.Temporal.TaskQueue))

	workerCompute := workflows.NewWorkerCompute(executor, workflows.WorkerComputeConfig{
		Interval:               cfg.Compute.Interval,
		PollingJitter:          cfg.Compute.PollingJitter,
		MaxPollingAttempts:     cfg.Compute.MaxPollingAttempts,
		ActivityTimeout:        cfg.Compute.ActivityTimeout,
		QueueCapacity:          cfg.Global.Capacity,
		QueueConcurrency:       cfg.Global.Concurrency,
		SchedulerInterval:      cfg.Global.SchedulerInterval,
		QueueRestartDelay:      cfg.Global.QueueRestartDelay,
		MaxSchedulerIterations: cfg.Global.MaxSchedulerIterations,
		MaxQueueIterations:     cfg.Global.MaxQueueIterations,
	})

	// Register workflows under the type names the lifecycle manager starts
	temporalWorker.RegisterWorkflowWithOptions(workerCompute.ComputePropertiesWorkflow,
		workflow.RegisterOptions{Name: workflows.WorkflowTypeComputeProperties})
	temporalWorker.RegisterWorkflowWithOptions(workerCompute.ComputePropertiesSchedulerWorkflow,
		workflow.RegisterOptions{Name: workflows.WorkflowTypeComputePropertiesScheduler})
	temporalWorker.RegisterWorkflowWithOptions(workerCompute.ComputePropertiesQueueWorkflow,
		workflow.RegisterOptions{Name: workflows.WorkflowTypeComputePropertiesQueue})
	logger.InfoCtx(ctx, "Registered workflows")

	// Register activities
	temporalWorker.RegisterActivity(executor.ComputePropertiesIncremental)
	temporalWorker.RegisterActivity(executor.FindDueGlobalWorkspaces)
	temporalWorker.RegisterActivity(executor.GetQueueSize)
	logger.InfoCtx(ctx, "Registered activities")

	// Start worker
	if err := temporalWorker.Start(); err != nil {
		logger.FatalCtx(ctx, "Failed to start worker", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Worker started and listening for tasks")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))

	cancel()
	temporalWorker.Stop()
	logger.Info("Worker stopped")
}

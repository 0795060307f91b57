package workflows

import (
	"time"

	"go.temporal.io/sdk/workflow"
)

// ComputePropertiesParams is the input of the per-workspace workflow
type ComputePropertiesParams struct {
	WorkspaceID string `json:"workspaceId"`
}

// SchedulerParams is the input of the global scheduler workflow
type SchedulerParams struct {
	// QueueWorkflowID is the queue the scheduler feeds
	QueueWorkflowID string `json:"queueWorkflowId"`
}

// QueueParams is the input of the global queue workflow
type QueueParams struct {
	// State is set when the queue continues as new
	State *QueueState `json:"state,omitempty"`
}

// WorkerCompute defines the computation workflows
//
//go:generate mockgen -source=worker.go -destination=../mocks/worker_compute.go -package=mocks -mock_names=WorkerCompute=MockWorkerCompute
type WorkerCompute interface {
	// ComputePropertiesWorkflow polls one workspace until stopped or no longer eligible
	ComputePropertiesWorkflow(ctx workflow.Context, params ComputePropertiesParams) error

	// ComputePropertiesSchedulerWorkflow feeds due global workspaces into the queue workflow
	ComputePropertiesSchedulerWorkflow(ctx workflow.Context, params SchedulerParams) error

	// ComputePropertiesQueueWorkflow computes queued global workspaces under a concurrency limit
	ComputePropertiesQueueWorkflow(ctx workflow.Context, params QueueParams) error
}

// WorkerComputeConfig holds the workflow settings
type WorkerComputeConfig struct {
	// Interval is the sleep between two passes of a workspace
	Interval time.Duration
	// PollingJitter is the maximum random deviation added to Interval
	PollingJitter time.Duration
	// MaxPollingAttempts is the number of passes before the workflow continues as new
	MaxPollingAttempts int
	// ActivityTimeout bounds a single computation pass
	ActivityTimeout time.Duration

	// QueueCapacity bounds the number of queued global workspaces
	QueueCapacity int
	// QueueConcurrency bounds the number of global passes in flight
	QueueConcurrency int
	// SchedulerInterval is the sleep between two scheduler polls
	SchedulerInterval time.Duration
	// QueueRestartDelay is the wait before retrying when the queue workflow is missing
	QueueRestartDelay time.Duration
	// MaxSchedulerIterations is the number of polls before the scheduler continues as new
	MaxSchedulerIterations int
	// MaxQueueIterations is the number of dispatched passes before the queue continues as new
	MaxQueueIterations int
}

// workerCompute is the concrete implementation of WorkerCompute
type workerCompute struct {
	config   WorkerComputeConfig
	executor Executor
}

// NewWorkerCompute creates a new worker instance
func NewWorkerCompute(executor Executor, config WorkerComputeConfig) WorkerCompute {
	if config.MaxPollingAttempts <= 0 {
		config.MaxPollingAttempts = 1500
	}
	if config.ActivityTimeout <= 0 {
		config.ActivityTimeout = 15 * time.Minute
	}
	if config.QueueConcurrency <= 0 {
		config.QueueConcurrency = 1
	}
	if config.MaxSchedulerIterations <= 0 {
		config.MaxSchedulerIterations = 1000
	}
	if config.MaxQueueIterations <= 0 {
		config.MaxQueueIterations = 1000
	}
	return &workerCompute{
		executor: executor,
		config:   config,
	}
}

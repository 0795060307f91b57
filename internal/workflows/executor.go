package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.uber.org/zap"

	"github.com/feral-file/ff-computed-properties/internal/adapter"
	"github.com/feral-file/ff-computed-properties/internal/computation"
	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/logger"
	temporalprovider "github.com/feral-file/ff-computed-properties/internal/providers/temporal"
	"github.com/feral-file/ff-computed-properties/internal/registry"
	"github.com/feral-file/ff-computed-properties/internal/scheduler"
	"github.com/feral-file/ff-computed-properties/internal/store"
)

// ComputePropertiesInput is the input of one incremental computation activity
type ComputePropertiesInput struct {
	WorkspaceID string             `json:"workspaceId"`
	Mode        domain.ProcessMode `json:"mode"`
}

// ComputePropertiesResult is the outcome of one incremental computation activity
type ComputePropertiesResult struct {
	// Eligible is false when the workspace may no longer compute in the calling mode
	Eligible bool `json:"eligible"`
	Changes  int  `json:"changes"`
	Emitted  int  `json:"emitted"`
	Partial  bool `json:"partial"`
}

// QueueSizeResult is the outcome of querying the global queue
type QueueSizeResult struct {
	Found bool `json:"found"`
	Size  int  `json:"size"`
}

// ExecutorConfig holds the activity settings
type ExecutorConfig struct {
	// Interval is how stale a workspace must be before the global scheduler picks it
	Interval time.Duration
}

// Executor defines the interface for executing activities
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor_compute.go -package=mocks -mock_names=Executor=MockExecutor
type Executor interface {
	// ComputePropertiesIncremental checks eligibility, then runs one computation pass of the workspace
	ComputePropertiesIncremental(ctx context.Context, input ComputePropertiesInput) (*ComputePropertiesResult, error)

	// FindDueGlobalWorkspaces returns up to limit globally computed workspaces due for recomputation
	FindDueGlobalWorkspaces(ctx context.Context, limit int) ([]QueueItem, error)

	// GetQueueSize queries the size of the global queue workflow
	GetQueueSize(ctx context.Context) (*QueueSizeResult, error)
}

// executor is the concrete implementation of Executor
type executor struct {
	config       ExecutorConfig
	store        store.Store
	runner       computation.Runner
	scheduler    scheduler.Scheduler
	blocklist    registry.WorkspaceBlocklist
	orchestrator temporalprovider.TemporalOrchestrator
	clock        adapter.Clock
	activity     adapter.Activity
}

// NewExecutor creates a new executor instance
func NewExecutor(
	config ExecutorConfig,
	st store.Store,
	runner computation.Runner,
	sched scheduler.Scheduler,
	blocklist registry.WorkspaceBlocklist,
	orchestrator temporalprovider.TemporalOrchestrator,
	clock adapter.Clock,
	activity adapter.Activity,
) Executor {
	if blocklist == nil {
		blocklist = registry.NewWorkspaceBlocklist()
	}
	return &executor{
		config:       config,
		store:        st,
		runner:       runner,
		scheduler:    sched,
		blocklist:    blocklist,
		orchestrator: orchestrator,
		clock:        clock,
		activity:     activity,
	}
}

// ComputePropertiesIncremental runs one pass when the workspace is still eligible for the calling mode.
// A stale process, for example one left behind by a mode switch, learns here that it must exit.
func (e *executor) ComputePropertiesIncremental(ctx context.Context, input ComputePropertiesInput) (*ComputePropertiesResult, error) {
	if input.WorkspaceID == "" {
		return nil, temporal.NewNonRetryableApplicationError("workspace id is required", "InvalidInput", nil)
	}

	// Eligibility is decided under the lock so a reset that finished meanwhile is seen
	var result *ComputePropertiesResult
	err := e.store.WithComputeLock(ctx, input.WorkspaceID, func(ctx context.Context) error {
		eligible, err := e.isEligible(ctx, input)
		if err != nil {
			return err
		}
		if !eligible {
			logger.InfoCtx(ctx, "Workspace is not eligible for computation",
				logger.Workspace(input.WorkspaceID),
				zap.String("mode", string(input.Mode)),
			)
			result = &ComputePropertiesResult{Eligible: false}
			return nil
		}

		e.activity.RecordHeartbeat(ctx, input.WorkspaceID)

		pass, err := e.runner.Run(ctx, input.WorkspaceID, e.clock.Now())
		if err != nil {
			return fmt.Errorf("failed to run computation pass: %w", err)
		}
		result = &ComputePropertiesResult{
			Eligible: true,
			Changes:  pass.Changes,
			Emitted:  pass.Emitted,
			Partial:  pass.Partial,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (e *executor) isEligible(ctx context.Context, input ComputePropertiesInput) (bool, error) {
	if e.blocklist.IsBlocked(input.WorkspaceID) {
		return false, nil
	}

	workspace, err := e.store.GetWorkspace(ctx, input.WorkspaceID)
	if err != nil {
		if errors.Is(err, domain.ErrWorkspaceNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get workspace: %w", err)
	}

	global, err := e.store.IsFeatureEnabled(ctx, input.WorkspaceID, domain.FeatureComputePropertiesGlobal)
	if err != nil {
		return false, fmt.Errorf("failed to check global feature: %w", err)
	}

	mode, ok := domain.DesiredMode(*workspace, global)
	if !ok || mode != input.Mode {
		return false, nil
	}

	// A stopped or terminated record holds the workspace even when its status allows computing.
	// Global passes have no workflow of their own, so they also need a running record.
	process, err := e.store.GetComputeProcess(ctx, input.WorkspaceID)
	if err != nil {
		return false, fmt.Errorf("failed to get compute process: %w", err)
	}
	if process == nil {
		return input.Mode != domain.ProcessModeGlobal, nil
	}
	if process.State != domain.ProcessStateRunning || process.Mode != input.Mode {
		return false, nil
	}

	return true, nil
}

// FindDueGlobalWorkspaces returns queue items for the global scheduler
func (e *executor) FindDueGlobalWorkspaces(ctx context.Context, limit int) ([]QueueItem, error) {
	due, err := e.scheduler.FindDueGlobalWorkspaces(ctx, e.clock.Now(), e.config.Interval, limit)
	if err != nil {
		return nil, err
	}

	items := make([]QueueItem, 0, len(due))
	for _, w := range due {
		item := QueueItem{WorkspaceID: w.WorkspaceID}
		if w.LastRecomputedAt != nil {
			ms := w.LastRecomputedAt.UnixMilli()
			item.MaxPeriod = &ms
		}
		items = append(items, item)
	}

	return items, nil
}

// GetQueueSize queries the queue workflow. A missing queue is reported, not returned as an error.
func (e *executor) GetQueueSize(ctx context.Context) (*QueueSizeResult, error) {
	value, err := e.orchestrator.QueryWorkflow(ctx, QueueWorkflowID, "", QueryGetQueueSize)
	if err != nil {
		if temporalprovider.IsNotFound(err) {
			return &QueueSizeResult{Found: false}, nil
		}
		return nil, fmt.Errorf("failed to query queue size: %w", err)
	}

	var size int
	if err := value.Get(&size); err != nil {
		return nil, fmt.Errorf("failed to decode queue size: %w", err)
	}

	return &QueueSizeResult{Found: true, Size: size}, nil
}

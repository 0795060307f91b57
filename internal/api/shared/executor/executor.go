package executor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-computed-properties/internal/adapter"
	"github.com/feral-file/ff-computed-properties/internal/api/shared/dto"
	"github.com/feral-file/ff-computed-properties/internal/computation"
	"github.com/feral-file/ff-computed-properties/internal/lifecycle"
	"github.com/feral-file/ff-computed-properties/internal/logger"
	"github.com/feral-file/ff-computed-properties/internal/reset"
	"github.com/feral-file/ff-computed-properties/internal/scheduler"
	"github.com/feral-file/ff-computed-properties/internal/store"
)

// Executor runs the admin commands behind the REST handlers
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// StartComputeProperties starts the compute process of a workspace in its desired mode
	StartComputeProperties(ctx context.Context, workspaceID string) (*dto.ComputeProcessResponse, error)

	// StopComputeProperties stops a running compute process
	StopComputeProperties(ctx context.Context, workspaceID string) (*dto.ComputeProcessResponse, error)

	// ResetComputeProperties clears the computed state and restarts a running process
	ResetComputeProperties(ctx context.Context, workspaceID string) (*dto.ComputeProcessResponse, error)

	// TerminateComputeProperties terminates the compute process
	TerminateComputeProperties(ctx context.Context, workspaceID string) (*dto.ComputeProcessResponse, error)

	// SignalComputeProperties requests an early computation cycle
	SignalComputeProperties(ctx context.Context, workspaceID string) error

	// ComputeState runs one computation pass in-process
	ComputeState(ctx context.Context, workspaceID string, now *time.Time) (*dto.ComputeStateResponse, error)

	// ResetWorkspaceData deletes every row of the workspace
	ResetWorkspaceData(ctx context.Context, workspaceID string, force bool) error

	// ListPeriods lists the watermarks of a workspace
	ListPeriods(ctx context.Context, workspaceID string) (*dto.PeriodListResponse, error)

	StartGlobal(ctx context.Context) error
	StopGlobal(ctx context.Context) error

	// FindDueWorkspaces lists workspace-mode workspaces due for recomputation
	FindDueWorkspaces(ctx context.Context, interval time.Duration, limit int) (*dto.DueWorkspaceListResponse, error)
}

type executor struct {
	store     store.Store
	lifecycle lifecycle.Manager
	resetter  reset.Resetter
	runner    computation.Runner
	scheduler scheduler.Scheduler
	clock     adapter.Clock
}

func NewExecutor(
	st store.Store,
	manager lifecycle.Manager,
	resetter reset.Resetter,
	runner computation.Runner,
	sched scheduler.Scheduler,
	clock adapter.Clock,
) Executor {
	return &executor{
		store:     st,
		lifecycle: manager,
		resetter:  resetter,
		runner:    runner,
		scheduler: sched,
		clock:     clock,
	}
}

func (e *executor) StartComputeProperties(ctx context.Context, workspaceID string) (*dto.ComputeProcessResponse, error) {
	process, err := e.lifecycle.Start(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	return dto.MapComputeProcessToDTO(process), nil
}

func (e *executor) StopComputeProperties(ctx context.Context, workspaceID string) (*dto.ComputeProcessResponse, error) {
	process, err := e.lifecycle.Stop(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	return dto.MapComputeProcessToDTO(process), nil
}

func (e *executor) ResetComputeProperties(ctx context.Context, workspaceID string) (*dto.ComputeProcessResponse, error) {
	process, err := e.lifecycle.Reset(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	return dto.MapComputeProcessToDTO(process), nil
}

func (e *executor) TerminateComputeProperties(ctx context.Context, workspaceID string) (*dto.ComputeProcessResponse, error) {
	process, err := e.lifecycle.Terminate(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	return dto.MapComputeProcessToDTO(process), nil
}

func (e *executor) SignalComputeProperties(ctx context.Context, workspaceID string) error {
	return e.lifecycle.SignalEarly(ctx, workspaceID)
}

func (e *executor) ComputeState(ctx context.Context, workspaceID string, now *time.Time) (*dto.ComputeStateResponse, error) {
	if _, err := e.store.GetWorkspace(ctx, workspaceID); err != nil {
		return nil, err
	}

	passTime := e.clock.Now()
	if now != nil {
		passTime = *now
	}

	var result *computation.PassResult
	err := e.store.WithComputeLock(ctx, workspaceID, func(ctx context.Context) error {
		var err error
		result, err = e.runner.Run(ctx, workspaceID, passTime)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute state: %w", err)
	}

	logger.InfoCtx(ctx, "Manual computation pass finished",
		logger.Workspace(workspaceID),
		zap.Time("now", passTime),
		zap.Int("changes", result.Changes),
	)

	return dto.MapPassResultToDTO(workspaceID, result), nil
}

func (e *executor) ResetWorkspaceData(ctx context.Context, workspaceID string, force bool) error {
	if _, err := e.store.GetWorkspace(ctx, workspaceID); err != nil {
		return err
	}
	return e.resetter.ResetWorkspaceData(ctx, workspaceID, force)
}

func (e *executor) ListPeriods(ctx context.Context, workspaceID string) (*dto.PeriodListResponse, error) {
	if _, err := e.store.GetWorkspace(ctx, workspaceID); err != nil {
		return nil, err
	}

	periods, err := e.store.GetPeriodsByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return dto.MapPeriodsToDTO(workspaceID, periods), nil
}

func (e *executor) StartGlobal(ctx context.Context) error {
	return e.lifecycle.StartGlobal(ctx)
}

func (e *executor) StopGlobal(ctx context.Context) error {
	return e.lifecycle.StopGlobal(ctx)
}

func (e *executor) FindDueWorkspaces(ctx context.Context, interval time.Duration, limit int) (*dto.DueWorkspaceListResponse, error) {
	due, err := e.scheduler.FindDueWorkspaces(ctx, e.clock.Now(), interval, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find due workspaces: %w", err)
	}
	return dto.MapDueWorkspacesToDTO(due), nil
}

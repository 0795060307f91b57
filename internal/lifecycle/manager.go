package lifecycle

import (
	"context"
	"fmt"

	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/feral-file/ff-computed-properties/internal/adapter"
	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/logger"
	"github.com/feral-file/ff-computed-properties/internal/providers/temporal"
	"github.com/feral-file/ff-computed-properties/internal/store"
	"github.com/feral-file/ff-computed-properties/internal/workflows"
)

// Config holds the configuration for the lifecycle manager
type Config struct {
	TaskQueue string
}

// Manager starts, stops, resets and terminates the computation processes of workspaces
//
//go:generate mockgen -source=manager.go -destination=../mocks/lifecycle_manager.go -package=mocks -mock_names=Manager=MockLifecycleManager
type Manager interface {
	// Start runs the workspace in the mode its global flag selects,
	// terminating a process left in the other mode first
	Start(ctx context.Context, workspaceID string) (*domain.ComputeProcess, error)

	// Stop asks a running process to return before its next window. State rows are kept.
	Stop(ctx context.Context, workspaceID string) (*domain.ComputeProcess, error)

	// Terminate stops the process unconditionally
	Terminate(ctx context.Context, workspaceID string) (*domain.ComputeProcess, error)

	// Reset clears the computed state of the workspace and restarts a running process from scratch
	Reset(ctx context.Context, workspaceID string) (*domain.ComputeProcess, error)

	// SignalEarly wakes the workspace's process so freshly ingested events are computed now
	SignalEarly(ctx context.Context, workspaceID string) error

	// StartGlobal starts the global scheduler and queue workflows
	StartGlobal(ctx context.Context) error

	// StopGlobal terminates the global scheduler and queue workflows
	StopGlobal(ctx context.Context) error

	// Reconcile applies the transition the workspace's status and flag call for.
	// Blocked workspaces are held like paused ones.
	Reconcile(ctx context.Context, workspace domain.Workspace, blocked bool) (Transition, error)
}

type manager struct {
	config       Config
	store        store.Store
	orchestrator temporal.TemporalOrchestrator
	clock        adapter.Clock
}

// NewManager creates a new lifecycle manager
func NewManager(config Config, st store.Store, orchestrator temporal.TemporalOrchestrator, clock adapter.Clock) Manager {
	return &manager{
		config:       config,
		store:        st,
		orchestrator: orchestrator,
		clock:        clock,
	}
}

func (m *manager) Start(ctx context.Context, workspaceID string) (*domain.ComputeProcess, error) {
	mode, err := m.desiredMode(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	current, err := m.store.GetComputeProcess(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get compute process: %w", err)
	}
	if current != nil && current.State == domain.ProcessStateRunning && current.Mode != mode {
		if err := m.terminateProcess(ctx, current, "compute mode switched"); err != nil {
			return nil, err
		}
	}

	return m.startProcess(ctx, workspaceID, mode)
}

func (m *manager) Stop(ctx context.Context, workspaceID string) (*domain.ComputeProcess, error) {
	current, err := m.store.GetComputeProcess(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get compute process: %w", err)
	}
	if current == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrWorkflowNotFound, workspaceID)
	}
	if current.State != domain.ProcessStateRunning {
		return current, nil
	}

	if err := m.stopProcess(ctx, current); err != nil {
		return nil, err
	}

	return m.saveStopped(ctx, current, domain.StopReasonOperator)
}

func (m *manager) Terminate(ctx context.Context, workspaceID string) (*domain.ComputeProcess, error) {
	current, err := m.store.GetComputeProcess(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get compute process: %w", err)
	}
	if current == nil {
		current = &domain.ComputeProcess{
			WorkspaceID: workspaceID,
			Mode:        domain.ProcessModeWorkspace,
			WorkflowID:  workflows.ComputePropertiesWorkflowID(workspaceID),
		}
	}

	if err := m.terminateProcess(ctx, current, "terminated by operator"); err != nil {
		return nil, err
	}

	return m.save(ctx, workspaceID, current.Mode, domain.ProcessStateTerminated, current.WorkflowID)
}

func (m *manager) Reset(ctx context.Context, workspaceID string) (*domain.ComputeProcess, error) {
	current, err := m.store.GetComputeProcess(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get compute process: %w", err)
	}

	running := current != nil && current.State == domain.ProcessStateRunning
	if running {
		if err := m.terminateProcess(ctx, current, "computed state reset"); err != nil {
			return nil, err
		}
	}

	// A global pass still in flight finishes before the state is cleared
	err = m.store.WithResetLock(ctx, workspaceID, func(ctx context.Context) error {
		return m.store.ResetComputedState(ctx, workspaceID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reset computed state: %w", err)
	}
	logger.InfoCtx(ctx, "Computed state reset", logger.Workspace(workspaceID))

	if !running {
		return current, nil
	}

	mode, err := m.desiredMode(ctx, workspaceID)
	if err != nil {
		if isIneligible(err) {
			logger.WarnCtx(ctx, "Workspace no longer eligible, not restarting after reset", logger.Workspace(workspaceID))
			return m.save(ctx, workspaceID, current.Mode, domain.ProcessStateTerminated, current.WorkflowID)
		}
		return nil, err
	}

	return m.startProcess(ctx, workspaceID, mode)
}

func (m *manager) SignalEarly(ctx context.Context, workspaceID string) error {
	current, err := m.store.GetComputeProcess(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to get compute process: %w", err)
	}
	if current == nil || current.State != domain.ProcessStateRunning {
		return fmt.Errorf("%w: no running process for %s", domain.ErrWorkflowNotFound, workspaceID)
	}

	switch current.Mode {
	case domain.ProcessModeGlobal:
		signal := workflows.AddWorkspacesSignal{
			Workspaces: []workflows.QueueItem{{WorkspaceID: workspaceID, Priority: workflows.PriorityHigh}},
		}
		_, err = m.orchestrator.SignalWithStartWorkflow(
			ctx,
			workflows.QueueWorkflowID,
			workflows.SignalAddWorkspaces,
			signal,
			m.globalOptions(workflows.QueueWorkflowID),
			workflows.WorkflowTypeComputePropertiesQueue,
			workflows.QueueParams{},
		)
		if err != nil {
			return fmt.Errorf("failed to add workspace to global queue: %w", err)
		}
	default:
		err = m.orchestrator.SignalWorkflow(ctx, current.WorkflowID, "", workflows.SignalComputePropertiesEarly, nil)
		if err != nil {
			if temporal.IsNotFound(err) {
				return fmt.Errorf("%w: %s", domain.ErrWorkflowNotFound, current.WorkflowID)
			}
			return fmt.Errorf("failed to signal compute properties early: %w", err)
		}
	}

	logger.DebugCtx(ctx, "Sent compute properties early signal",
		logger.Workspace(workspaceID),
		zap.String("mode", string(current.Mode)),
	)

	return nil
}

func (m *manager) StartGlobal(ctx context.Context) error {
	starts := []struct {
		id           string
		workflowType string
		params       interface{}
	}{
		{workflows.SchedulerWorkflowID, workflows.WorkflowTypeComputePropertiesScheduler, workflows.SchedulerParams{QueueWorkflowID: workflows.QueueWorkflowID}},
		{workflows.QueueWorkflowID, workflows.WorkflowTypeComputePropertiesQueue, workflows.QueueParams{}},
	}

	for _, s := range starts {
		_, err := m.orchestrator.ExecuteWorkflow(ctx, m.globalOptions(s.id), s.workflowType, s.params)
		if err != nil {
			if temporal.IsAlreadyStarted(err) {
				logger.InfoCtx(ctx, "Global workflow already started", zap.String("workflowID", s.id))
				continue
			}
			return fmt.Errorf("failed to start global workflow %s: %w", s.id, err)
		}
		logger.InfoCtx(ctx, "Started global workflow", zap.String("workflowID", s.id))
	}

	return nil
}

func (m *manager) StopGlobal(ctx context.Context) error {
	for _, id := range []string{workflows.SchedulerWorkflowID, workflows.QueueWorkflowID} {
		if err := m.orchestrator.TerminateWorkflow(ctx, id, "", "global computation stopped"); err != nil {
			if temporal.IsNotFound(err) {
				logger.InfoCtx(ctx, "Global workflow not found", zap.String("workflowID", id))
				continue
			}
			return fmt.Errorf("failed to stop global workflow %s: %w", id, err)
		}
		logger.InfoCtx(ctx, "Stopped global workflow", zap.String("workflowID", id))
	}

	return nil
}

func (m *manager) Reconcile(ctx context.Context, workspace domain.Workspace, blocked bool) (Transition, error) {
	if blocked {
		workspace.Status = domain.WorkspaceStatusPaused
	}

	current, err := m.store.GetComputeProcess(ctx, workspace.ID)
	if err != nil {
		return Transition{}, fmt.Errorf("failed to get compute process: %w", err)
	}
	global, err := m.store.IsFeatureEnabled(ctx, workspace.ID, domain.FeatureComputePropertiesGlobal)
	if err != nil {
		return Transition{}, fmt.Errorf("failed to check global feature: %w", err)
	}

	t := NextTransition(current, workspace, global)
	if t.Action == ActionNone {
		return t, nil
	}

	logger.InfoCtx(ctx, "Applying lifecycle transition",
		logger.Workspace(workspace.ID),
		zap.String("action", string(t.Action)),
		zap.String("from", string(t.From)),
		zap.String("to", string(t.To)),
		zap.String("mode", string(t.Mode)),
	)

	switch t.Action {
	case ActionStart:
		_, err = m.startProcess(ctx, workspace.ID, t.Mode)
	case ActionStop:
		if err = m.stopProcess(ctx, current); err == nil {
			_, err = m.saveStopped(ctx, current, domain.StopReasonPaused)
		}
	case ActionTerminate:
		if err = m.terminateProcess(ctx, current, fmt.Sprintf("workspace %s", workspace.Status)); err == nil {
			_, err = m.save(ctx, workspace.ID, current.Mode, t.To, current.WorkflowID)
		}
	case ActionSwitch:
		if err = m.terminateProcess(ctx, current, "compute mode switched"); err == nil {
			_, err = m.startProcess(ctx, workspace.ID, t.Mode)
		}
	}
	if err != nil {
		return t, fmt.Errorf("failed to %s compute process: %w", t.Action, err)
	}

	return t, nil
}

// desiredMode loads the workspace and returns the mode it should compute in
func (m *manager) desiredMode(ctx context.Context, workspaceID string) (domain.ProcessMode, error) {
	workspace, err := m.store.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return "", fmt.Errorf("failed to get workspace: %w", err)
	}
	global, err := m.store.IsFeatureEnabled(ctx, workspaceID, domain.FeatureComputePropertiesGlobal)
	if err != nil {
		return "", fmt.Errorf("failed to check global feature: %w", err)
	}

	mode, ok := domain.DesiredMode(*workspace, global)
	if !ok {
		return "", fmt.Errorf("%w: %s is %s %s", domain.ErrWorkspaceIneligible, workspaceID, workspace.Status, workspace.Type)
	}
	return mode, nil
}

// startProcess starts the durable process in the given mode and records it as running
func (m *manager) startProcess(ctx context.Context, workspaceID string, mode domain.ProcessMode) (*domain.ComputeProcess, error) {
	var workflowID string

	switch mode {
	case domain.ProcessModeGlobal:
		if err := m.StartGlobal(ctx); err != nil {
			return nil, err
		}
		workflowID = workflows.QueueWorkflowID
	default:
		workflowID = workflows.ComputePropertiesWorkflowID(workspaceID)
		options := client.StartWorkflowOptions{
			ID:                                       workflowID,
			TaskQueue:                                m.config.TaskQueue,
			WorkflowIDReusePolicy:                    enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
			WorkflowExecutionErrorWhenAlreadyStarted: true,
		}
		params := workflows.ComputePropertiesParams{WorkspaceID: workspaceID}

		_, err := m.orchestrator.ExecuteWorkflow(ctx, options, workflows.WorkflowTypeComputeProperties, params)
		if err != nil {
			if !temporal.IsAlreadyStarted(err) {
				return nil, fmt.Errorf("failed to start compute properties workflow: %w", err)
			}
			logger.InfoCtx(ctx, "Compute properties workflow already started", logger.Workspace(workspaceID))
		}
	}

	return m.save(ctx, workspaceID, mode, domain.ProcessStateRunning, workflowID)
}

// stopProcess signals a per-workspace workflow to return. A global process has nothing to signal:
// the activity stops picking the workspace once its record is no longer running.
func (m *manager) stopProcess(ctx context.Context, process *domain.ComputeProcess) error {
	if process.Mode == domain.ProcessModeGlobal {
		return nil
	}

	err := m.orchestrator.SignalWorkflow(ctx, process.WorkflowID, "", workflows.SignalStop, nil)
	if err != nil && !temporal.IsNotFound(err) {
		return fmt.Errorf("failed to signal stop: %w", err)
	}
	return nil
}

// terminateProcess terminates a per-workspace workflow, tolerating one that already finished
func (m *manager) terminateProcess(ctx context.Context, process *domain.ComputeProcess, reason string) error {
	if process.Mode == domain.ProcessModeGlobal {
		return nil
	}

	err := m.orchestrator.TerminateWorkflow(ctx, process.WorkflowID, "", reason)
	if err != nil {
		if temporal.IsNotFound(err) {
			logger.InfoCtx(ctx, "Compute properties workflow not found",
				logger.Workspace(process.WorkspaceID),
				zap.String("workflowID", process.WorkflowID),
			)
			return nil
		}
		return fmt.Errorf("failed to terminate workflow: %w", err)
	}
	return nil
}

func (m *manager) save(ctx context.Context, workspaceID string, mode domain.ProcessMode, state domain.ProcessState, workflowID string) (*domain.ComputeProcess, error) {
	process := domain.ComputeProcess{
		WorkspaceID: workspaceID,
		Mode:        mode,
		State:       state,
		WorkflowID:  workflowID,
		UpdatedAt:   m.clock.Now(),
	}
	if err := m.store.SaveComputeProcess(ctx, process); err != nil {
		return nil, fmt.Errorf("failed to save compute process: %w", err)
	}
	return &process, nil
}

func (m *manager) saveStopped(ctx context.Context, current *domain.ComputeProcess, reason domain.StopReason) (*domain.ComputeProcess, error) {
	process := domain.ComputeProcess{
		WorkspaceID: current.WorkspaceID,
		Mode:        current.Mode,
		State:       domain.ProcessStateStopped,
		WorkflowID:  current.WorkflowID,
		StopReason:  reason,
		UpdatedAt:   m.clock.Now(),
	}
	if err := m.store.SaveComputeProcess(ctx, process); err != nil {
		return nil, fmt.Errorf("failed to save compute process: %w", err)
	}
	return &process, nil
}

func (m *manager) globalOptions(id string) client.StartWorkflowOptions {
	return client.StartWorkflowOptions{
		ID:                                       id,
		TaskQueue:                                m.config.TaskQueue,
		WorkflowIDReusePolicy:                    enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}
}

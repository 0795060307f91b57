package workflows_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/temporal"

	"github.com/feral-file/ff-computed-properties/internal/computation"
	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/logger"
	"github.com/feral-file/ff-computed-properties/internal/mocks"
	"github.com/feral-file/ff-computed-properties/internal/registry"
	"github.com/feral-file/ff-computed-properties/internal/workflows"
)

// testExecutorMocks contains all the mocks needed for testing the executor
type testExecutorMocks struct {
	ctrl         *gomock.Controller
	store        *mocks.MockStore
	runner       *mocks.MockRunner
	scheduler    *mocks.MockScheduler
	orchestrator *mocks.MockTemporalOrchestrator
	clock        *mocks.MockClock
	activity     *mocks.MockActivity
	executor     workflows.Executor
}

var executorNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func setupTestExecutor(t *testing.T, blocked ...string) *testExecutorMocks {
	_ = logger.Initialize(logger.Config{Debug: true})

	ctrl := gomock.NewController(t)
	tm := &testExecutorMocks{
		ctrl:         ctrl,
		store:        mocks.NewMockStore(ctrl),
		runner:       mocks.NewMockRunner(ctrl),
		scheduler:    mocks.NewMockScheduler(ctrl),
		orchestrator: mocks.NewMockTemporalOrchestrator(ctrl),
		clock:        mocks.NewMockClock(ctrl),
		activity:     mocks.NewMockActivity(ctrl),
	}
	tm.clock.EXPECT().Now().Return(executorNow).AnyTimes()
	tm.activity.EXPECT().RecordHeartbeat(gomock.Any(), gomock.Any()).AnyTimes()

	tm.executor = workflows.NewExecutor(
		workflows.ExecutorConfig{Interval: 2 * time.Minute},
		tm.store,
		tm.runner,
		tm.scheduler,
		registry.NewWorkspaceBlocklist(blocked...),
		tm.orchestrator,
		tm.clock,
		tm.activity,
	)
	return tm
}

// expectComputeLock lets the shared workspace lock run its callback
func (tm *testExecutorMocks) expectComputeLock(workspaceID string) {
	tm.store.EXPECT().WithComputeLock(gomock.Any(), workspaceID, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func activeWorkspace(id string) *domain.Workspace {
	return &domain.Workspace{ID: id, Status: domain.WorkspaceStatusActive, Type: domain.WorkspaceTypeRoot}
}

func TestExecutor_ComputePropertiesIncremental(t *testing.T) {
	m := setupTestExecutor(t)
	ctx := context.Background()

	m.expectComputeLock("ws-1")
	m.store.EXPECT().GetWorkspace(ctx, "ws-1").Return(activeWorkspace("ws-1"), nil)
	m.store.EXPECT().IsFeatureEnabled(ctx, "ws-1", domain.FeatureComputePropertiesGlobal).Return(false, nil)
	m.store.EXPECT().GetComputeProcess(ctx, "ws-1").Return(&domain.ComputeProcess{
		WorkspaceID: "ws-1",
		Mode:        domain.ProcessModeWorkspace,
		State:       domain.ProcessStateRunning,
	}, nil)
	m.runner.EXPECT().Run(ctx, "ws-1", executorNow).Return(&computation.PassResult{Changes: 3, Emitted: 3, Partial: true}, nil)

	result, err := m.executor.ComputePropertiesIncremental(ctx, workflows.ComputePropertiesInput{WorkspaceID: "ws-1", Mode: domain.ProcessModeWorkspace})
	require.NoError(t, err)
	assert.Equal(t, &workflows.ComputePropertiesResult{Eligible: true, Changes: 3, Emitted: 3, Partial: true}, result)
}

func TestExecutor_ComputePropertiesIncremental_Ineligible(t *testing.T) {
	tests := []struct {
		name      string
		mode      domain.ProcessMode
		blocked   []string
		workspace *domain.Workspace
		getErr    error
		global    bool
		process   *domain.ComputeProcess
		noRecord  bool
	}{
		{name: "paused", mode: domain.ProcessModeWorkspace, workspace: &domain.Workspace{ID: "ws-1", Status: domain.WorkspaceStatusPaused, Type: domain.WorkspaceTypeRoot}},
		{name: "parent", mode: domain.ProcessModeWorkspace, workspace: &domain.Workspace{ID: "ws-1", Status: domain.WorkspaceStatusActive, Type: domain.WorkspaceTypeParent}},
		{name: "switched to global", mode: domain.ProcessModeWorkspace, workspace: activeWorkspace("ws-1"), global: true},
		{name: "switched to workspace", mode: domain.ProcessModeGlobal, workspace: activeWorkspace("ws-1")},
		{name: "deleted", mode: domain.ProcessModeWorkspace, getErr: domain.ErrWorkspaceNotFound},
		{name: "blocked", mode: domain.ProcessModeGlobal, blocked: []string{"ws-1"}},
		{
			name:      "stopped by operator",
			mode:      domain.ProcessModeGlobal,
			workspace: activeWorkspace("ws-1"),
			global:    true,
			process:   &domain.ComputeProcess{WorkspaceID: "ws-1", Mode: domain.ProcessModeGlobal, State: domain.ProcessStateStopped},
		},
		{
			name:      "terminated by reset",
			mode:      domain.ProcessModeGlobal,
			workspace: activeWorkspace("ws-1"),
			global:    true,
			process:   &domain.ComputeProcess{WorkspaceID: "ws-1", Mode: domain.ProcessModeGlobal, State: domain.ProcessStateTerminated},
		},
		{
			name:      "global without record",
			mode:      domain.ProcessModeGlobal,
			workspace: activeWorkspace("ws-1"),
			global:    true,
			noRecord:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := setupTestExecutor(t, tt.blocked...)
			ctx := context.Background()

			m.expectComputeLock("ws-1")
			if len(tt.blocked) == 0 {
				m.store.EXPECT().GetWorkspace(ctx, "ws-1").Return(tt.workspace, tt.getErr)
				if tt.getErr == nil {
					m.store.EXPECT().IsFeatureEnabled(ctx, "ws-1", domain.FeatureComputePropertiesGlobal).Return(tt.global, nil)
				}
				if tt.process != nil || tt.noRecord {
					m.store.EXPECT().GetComputeProcess(ctx, "ws-1").Return(tt.process, nil)
				}
			}

			result, err := m.executor.ComputePropertiesIncremental(ctx, workflows.ComputePropertiesInput{WorkspaceID: "ws-1", Mode: tt.mode})
			require.NoError(t, err)
			assert.False(t, result.Eligible)
		})
	}
}

func TestExecutor_ComputePropertiesIncremental_InvalidInput(t *testing.T) {
	m := setupTestExecutor(t)

	_, err := m.executor.ComputePropertiesIncremental(context.Background(), workflows.ComputePropertiesInput{})
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	assert.True(t, appErr.NonRetryable())
}

func TestExecutor_ComputePropertiesIncremental_RunError(t *testing.T) {
	m := setupTestExecutor(t)
	ctx := context.Background()

	m.expectComputeLock("ws-1")
	m.store.EXPECT().GetWorkspace(ctx, "ws-1").Return(activeWorkspace("ws-1"), nil)
	m.store.EXPECT().IsFeatureEnabled(ctx, "ws-1", domain.FeatureComputePropertiesGlobal).Return(true, nil)
	m.store.EXPECT().GetComputeProcess(ctx, "ws-1").Return(&domain.ComputeProcess{
		WorkspaceID: "ws-1",
		Mode:        domain.ProcessModeGlobal,
		State:       domain.ProcessStateRunning,
	}, nil)
	m.runner.EXPECT().Run(ctx, "ws-1", executorNow).Return(&computation.PassResult{}, errors.New("deadlock detected"))

	_, err := m.executor.ComputePropertiesIncremental(ctx, workflows.ComputePropertiesInput{WorkspaceID: "ws-1", Mode: domain.ProcessModeGlobal})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deadlock detected")
}

func TestExecutor_ComputePropertiesIncremental_WaitsForReset(t *testing.T) {
	m := setupTestExecutor(t)
	ctx := context.Background()

	// The lock is never granted, so nothing is read or computed
	m.store.EXPECT().WithComputeLock(gomock.Any(), "ws-1", gomock.Any()).Return(context.DeadlineExceeded)

	_, err := m.executor.ComputePropertiesIncremental(ctx, workflows.ComputePropertiesInput{WorkspaceID: "ws-1", Mode: domain.ProcessModeGlobal})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExecutor_FindDueGlobalWorkspaces(t *testing.T) {
	m := setupTestExecutor(t)
	ctx := context.Background()

	last := executorNow.Add(-time.Hour)
	m.scheduler.EXPECT().FindDueGlobalWorkspaces(ctx, executorNow, 2*time.Minute, 5).Return([]domain.DueWorkspace{
		{WorkspaceID: "ws-new"},
		{WorkspaceID: "ws-old", LastRecomputedAt: &last},
	}, nil)

	items, err := m.executor.FindDueGlobalWorkspaces(ctx, 5)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Nil(t, items[0].MaxPeriod)
	require.NotNil(t, items[1].MaxPeriod)
	assert.Equal(t, last.UnixMilli(), *items[1].MaxPeriod)
}

// encodedInt is a query result holding an int
type encodedInt int

func (e encodedInt) HasValue() bool { return true }

func (e encodedInt) Get(valuePtr interface{}) error {
	*(valuePtr.(*int)) = int(e)
	return nil
}

func TestExecutor_GetQueueSize(t *testing.T) {
	m := setupTestExecutor(t)
	ctx := context.Background()

	m.orchestrator.EXPECT().QueryWorkflow(ctx, workflows.QueueWorkflowID, "", workflows.QueryGetQueueSize).Return(encodedInt(42), nil)

	result, err := m.executor.GetQueueSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, &workflows.QueueSizeResult{Found: true, Size: 42}, result)
}

func TestExecutor_GetQueueSize_NotFound(t *testing.T) {
	m := setupTestExecutor(t)
	ctx := context.Background()

	m.orchestrator.EXPECT().QueryWorkflow(ctx, workflows.QueueWorkflowID, "", workflows.QueryGetQueueSize).
		Return(nil, serviceerror.NewNotFound("workflow not found"))

	result, err := m.executor.GetQueueSize(ctx)
	require.NoError(t, err)
	assert.False(t, result.Found)
}

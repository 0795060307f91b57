package workflows_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/logger"
	"github.com/feral-file/ff-computed-properties/internal/mocks"
	"github.com/feral-file/ff-computed-properties/internal/workflows"
)

// ComputePropertiesWorkflowTestSuite is the test suite for the per-workspace polling workflow
type ComputePropertiesWorkflowTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite

	env      *testsuite.TestWorkflowEnvironment
	ctrl     *gomock.Controller
	executor *mocks.MockExecutor
	worker   workflows.WorkerCompute
}

// SetupTest is called before each test
func (s *ComputePropertiesWorkflowTestSuite) SetupTest() {
	// Initialize logger for tests
	_ = logger.Initialize(logger.Config{
		Debug: true,
	})

	s.env = s.NewTestWorkflowEnvironment()
	s.ctrl = gomock.NewController(s.T())
	s.executor = mocks.NewMockExecutor(s.ctrl)
	s.worker = workflows.NewWorkerCompute(s.executor, workflows.WorkerComputeConfig{
		Interval:           2 * time.Minute,
		PollingJitter:      time.Second,
		MaxPollingAttempts: 3,
		ActivityTimeout:    time.Minute,
	})
}

// TearDownTest is called after each test
func (s *ComputePropertiesWorkflowTestSuite) TearDownTest() {
	s.env.AssertExpectations(s.T())
	s.ctrl.Finish()
}

// TestComputePropertiesWorkflowTestSuite runs the test suite
func TestComputePropertiesWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(ComputePropertiesWorkflowTestSuite))
}

func workspaceInput(workspaceID string) workflows.ComputePropertiesInput {
	return workflows.ComputePropertiesInput{WorkspaceID: workspaceID, Mode: domain.ProcessModeWorkspace}
}

func (s *ComputePropertiesWorkflowTestSuite) TestContinuesAsNewAfterMaxPollingAttempts() {
	s.env.OnActivity(s.executor.ComputePropertiesIncremental, mock.Anything, workspaceInput("ws-1")).
		Return(&workflows.ComputePropertiesResult{Eligible: true, Changes: 1}, nil).Times(3)

	s.env.ExecuteWorkflow(s.worker.ComputePropertiesWorkflow, workflows.ComputePropertiesParams{WorkspaceID: "ws-1"})

	s.True(s.env.IsWorkflowCompleted())
	err := s.env.GetWorkflowError()
	s.Error(err)
	s.True(workflow.IsContinueAsNewError(err))
}

func (s *ComputePropertiesWorkflowTestSuite) TestExitsWhenIneligible() {
	s.env.OnActivity(s.executor.ComputePropertiesIncremental, mock.Anything, workspaceInput("ws-1")).
		Return(&workflows.ComputePropertiesResult{Eligible: false}, nil).Once()

	s.env.ExecuteWorkflow(s.worker.ComputePropertiesWorkflow, workflows.ComputePropertiesParams{WorkspaceID: "ws-1"})

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
}

func (s *ComputePropertiesWorkflowTestSuite) TestActivityFailureKeepsPolling() {
	s.env.OnActivity(s.executor.ComputePropertiesIncremental, mock.Anything, workspaceInput("ws-1")).
		Return(nil, errors.New("database unavailable")).Times(2)
	s.env.OnActivity(s.executor.ComputePropertiesIncremental, mock.Anything, workspaceInput("ws-1")).
		Return(&workflows.ComputePropertiesResult{Eligible: false}, nil).Once()

	s.env.ExecuteWorkflow(s.worker.ComputePropertiesWorkflow, workflows.ComputePropertiesParams{WorkspaceID: "ws-1"})

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
}

func (s *ComputePropertiesWorkflowTestSuite) TestStopSignalEndsWorkflow() {
	s.env.OnActivity(s.executor.ComputePropertiesIncremental, mock.Anything, workspaceInput("ws-1")).
		Return(&workflows.ComputePropertiesResult{Eligible: true}, nil).Once()

	s.env.RegisterDelayedCallback(func() {
		s.env.SignalWorkflow(workflows.SignalStop, nil)
	}, 30*time.Second)

	s.env.ExecuteWorkflow(s.worker.ComputePropertiesWorkflow, workflows.ComputePropertiesParams{WorkspaceID: "ws-1"})

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
}

func (s *ComputePropertiesWorkflowTestSuite) TestEarlySignalWakesWorkflow() {
	s.worker = workflows.NewWorkerCompute(s.executor, workflows.WorkerComputeConfig{
		Interval:           time.Hour,
		MaxPollingAttempts: 10,
		ActivityTimeout:    time.Minute,
	})

	s.env.OnActivity(s.executor.ComputePropertiesIncremental, mock.Anything, workspaceInput("ws-1")).
		Return(&workflows.ComputePropertiesResult{Eligible: true}, nil).Twice()

	// Two early signals while sleeping cause a single extra pass
	s.env.RegisterDelayedCallback(func() {
		s.env.SignalWorkflow(workflows.SignalComputePropertiesEarly, nil)
		s.env.SignalWorkflow(workflows.SignalComputePropertiesEarly, nil)
	}, time.Minute)
	s.env.RegisterDelayedCallback(func() {
		s.env.SignalWorkflow(workflows.SignalStop, nil)
	}, 2*time.Minute)

	s.env.ExecuteWorkflow(s.worker.ComputePropertiesWorkflow, workflows.ComputePropertiesParams{WorkspaceID: "ws-1"})

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
}

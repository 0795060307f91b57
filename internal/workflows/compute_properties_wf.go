package workflows

import (
	"math/rand"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/logger"
)

// ComputePropertiesWorkflow polls one workspace: run a pass, sleep Interval ± jitter, repeat.
// The sleep ends early on SignalComputePropertiesEarly. SignalStop and an ineligible workspace end the workflow.
func (w *workerCompute) ComputePropertiesWorkflow(ctx workflow.Context, params ComputePropertiesParams) error {
	logger.InfoWf(ctx, "Starting compute properties workflow", logger.Workspace(params.WorkspaceID))

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: w.config.ActivityTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 2,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	earlyCh := workflow.GetSignalChannel(ctx, SignalComputePropertiesEarly)
	stopCh := workflow.GetSignalChannel(ctx, SignalStop)

	for attempt := 0; attempt < w.config.MaxPollingAttempts; attempt++ {
		if stopCh.ReceiveAsync(nil) {
			logger.InfoWf(ctx, "Compute properties workflow stopped", logger.Workspace(params.WorkspaceID))
			return nil
		}

		input := ComputePropertiesInput{WorkspaceID: params.WorkspaceID, Mode: domain.ProcessModeWorkspace}
		var result ComputePropertiesResult
		err := workflow.ExecuteActivity(ctx, w.executor.ComputePropertiesIncremental, input).Get(ctx, &result)
		if err != nil {
			// A failed pass keeps its watermark; the next attempt retries the same window
			logger.ErrorWf(ctx, err,
				logger.Workspace(params.WorkspaceID),
				zap.Int("attempt", attempt),
			)
		} else if !result.Eligible {
			logger.InfoWf(ctx, "Workspace no longer eligible, exiting", logger.Workspace(params.WorkspaceID))
			return nil
		}

		stopped := w.sleepUntilNextPoll(ctx, earlyCh, stopCh, params.WorkspaceID)
		if stopped {
			logger.InfoWf(ctx, "Compute properties workflow stopped", logger.Workspace(params.WorkspaceID))
			return nil
		}
	}

	logger.InfoWf(ctx, "Polling attempts exhausted, continuing as new",
		logger.Workspace(params.WorkspaceID),
		zap.Int("maxPollingAttempts", w.config.MaxPollingAttempts),
	)

	return workflow.NewContinueAsNewError(ctx, WorkflowTypeComputeProperties, params)
}

// sleepUntilNextPoll waits for the polling period or an early signal. It reports true on stop.
func (w *workerCompute) sleepUntilNextPoll(ctx workflow.Context, earlyCh, stopCh workflow.ReceiveChannel, workspaceID string) bool {
	period := w.config.Interval + w.jitter(ctx)
	if period < 0 {
		period = 0
	}

	timerCtx, cancelTimer := workflow.WithCancel(ctx)
	defer cancelTimer()

	stopped := false
	selector := workflow.NewSelector(ctx)
	selector.AddFuture(workflow.NewTimer(timerCtx, period), func(f workflow.Future) {})
	selector.AddReceive(earlyCh, func(c workflow.ReceiveChannel, more bool) {
		c.Receive(ctx, nil)
		// Several early signals while sleeping collapse into one wake up
		for c.ReceiveAsync(nil) {
		}
		logger.InfoWf(ctx, "Compute properties workflow woke up early", logger.Workspace(workspaceID))
	})
	selector.AddReceive(stopCh, func(c workflow.ReceiveChannel, more bool) {
		c.Receive(ctx, nil)
		stopped = true
	})
	selector.Select(ctx)

	return stopped
}

// jitter returns a random offset in [-PollingJitter, PollingJitter], recorded for replay
func (w *workerCompute) jitter(ctx workflow.Context) time.Duration {
	if w.config.PollingJitter <= 0 {
		return 0
	}

	var offset time.Duration
	encoded := workflow.SideEffect(ctx, func(ctx workflow.Context) interface{} {
		span := int64(w.config.PollingJitter)
		return time.Duration(rand.Int63n(2*span+1) - span) //nolint:gosec,G404 // jitter does not need a secure source
	})
	if err := encoded.Get(&offset); err != nil {
		return 0
	}
	return offset
}

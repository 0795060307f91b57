package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/feral-file/ff-computed-properties/internal/logger"
)

// ComputePropertiesSchedulerWorkflow periodically checks the queue size and, while there is room,
// signals the queue with due global workspaces
func (w *workerCompute) ComputePropertiesSchedulerWorkflow(ctx workflow.Context, params SchedulerParams) error {
	if params.QueueWorkflowID == "" {
		params.QueueWorkflowID = QueueWorkflowID
	}

	logger.InfoWf(ctx, "Starting compute properties scheduler",
		zap.String("queueWorkflowID", params.QueueWorkflowID),
		zap.Int("capacity", w.config.QueueCapacity),
	)

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	for iteration := 0; iteration < w.config.MaxSchedulerIterations; iteration++ {
		restart, err := w.schedule(ctx, params.QueueWorkflowID)
		if err != nil {
			logger.ErrorWf(ctx, err, zap.Int("iteration", iteration))
		}

		delay := w.config.SchedulerInterval
		if restart {
			logger.InfoWf(ctx, "Queue workflow not reachable, retrying after delay",
				zap.Duration("delay", w.config.QueueRestartDelay),
			)
			delay = w.config.QueueRestartDelay
		}

		if err := workflow.Sleep(ctx, delay); err != nil {
			return err
		}
	}

	logger.InfoWf(ctx, "Scheduler reached max iterations, continuing as new",
		zap.Int("maxSchedulerIterations", w.config.MaxSchedulerIterations),
	)

	return workflow.NewContinueAsNewError(ctx, WorkflowTypeComputePropertiesScheduler, params)
}

// schedule runs one poll. It reports true when the queue workflow could not be reached.
func (w *workerCompute) schedule(ctx workflow.Context, queueWorkflowID string) (bool, error) {
	var size QueueSizeResult
	if err := workflow.ExecuteActivity(ctx, w.executor.GetQueueSize).Get(ctx, &size); err != nil {
		return false, err
	}
	if !size.Found {
		return true, nil
	}

	room := w.config.QueueCapacity - size.Size
	if room <= 0 {
		logger.DebugWf(ctx, "No room in the queue", zap.Int("size", size.Size))
		return false, nil
	}

	var items []QueueItem
	if err := workflow.ExecuteActivity(ctx, w.executor.FindDueGlobalWorkspaces, room).Get(ctx, &items); err != nil {
		return false, err
	}

	logger.InfoWf(ctx, "Found due workspaces", zap.Int("count", len(items)), zap.Int("room", room))
	if len(items) == 0 {
		return false, nil
	}

	err := workflow.SignalExternalWorkflow(ctx, queueWorkflowID, "", SignalAddWorkspaces, AddWorkspacesSignal{Workspaces: items}).Get(ctx, nil)
	if err != nil {
		logger.WarnWf(ctx, "Failed to signal queue workflow", zap.Error(err))
		return true, nil
	}

	return false, nil
}

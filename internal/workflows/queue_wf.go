package workflows

import (
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/logger"
)

// ComputePropertiesQueueWorkflow dispatches queued global workspaces, at most QueueConcurrency at a time.
// A workspace is never computed twice concurrently. After MaxQueueIterations dispatches it waits for
// in-flight passes and continues as new with the remaining queue.
func (w *workerCompute) ComputePropertiesQueueWorkflow(ctx workflow.Context, params QueueParams) error {
	state := QueueState{}
	if params.State != nil {
		state = *params.State
	}
	queue := newWorkspaceQueue(w.config.QueueCapacity, state.Items)

	logger.InfoWf(ctx, "Starting compute properties queue",
		zap.Int("queued", queue.len()),
		zap.Int("totalProcessed", state.TotalProcessed),
	)

	if err := workflow.SetQueryHandler(ctx, QueryGetQueueSize, func() (int, error) {
		return queue.len(), nil
	}); err != nil {
		return err
	}

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: w.config.ActivityTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	enqueue := func(items []QueueItem) {
		now := workflow.Now(ctx).UnixMilli()
		added := 0
		for _, item := range items {
			if item.InsertedAt == 0 {
				item.InsertedAt = now
			}
			if queue.add(item) {
				added++
			}
		}
		logger.DebugWf(ctx, "Workspaces added to queue", zap.Int("received", len(items)), zap.Int("added", added))
	}

	addCh := workflow.GetSignalChannel(ctx, SignalAddWorkspaces)
	workflow.Go(ctx, func(ctx workflow.Context) {
		for {
			var signal AddWorkspacesSignal
			addCh.Receive(ctx, &signal)
			enqueue(signal.Workspaces)
		}
	})

	inFlight := make(map[string]bool)
	isInFlight := func(workspaceID string) bool { return inFlight[workspaceID] }

	for dispatched := 0; dispatched < w.config.MaxQueueIterations; dispatched++ {
		err := workflow.Await(ctx, func() bool {
			return len(inFlight) < w.config.QueueConcurrency && queue.hasNext(isInFlight)
		})
		if err != nil {
			return err
		}

		item, _ := queue.next(isInFlight)
		inFlight[item.WorkspaceID] = true

		workflow.Go(ctx, func(ctx workflow.Context) {
			defer delete(inFlight, item.WorkspaceID)

			input := ComputePropertiesInput{WorkspaceID: item.WorkspaceID, Mode: domain.ProcessModeGlobal}
			var result ComputePropertiesResult
			err := workflow.ExecuteActivity(ctx, w.executor.ComputePropertiesIncremental, input).Get(ctx, &result)
			state.TotalProcessed++
			if err != nil {
				// One failing workspace never blocks the others
				logger.ErrorWf(ctx, err, logger.Workspace(item.WorkspaceID))
				return
			}

			if result.Partial {
				// Keep catching up without waiting for the scheduler
				enqueue([]QueueItem{{WorkspaceID: item.WorkspaceID, Priority: item.Priority, MaxPeriod: item.MaxPeriod}})
			}
		})
	}

	if err := workflow.Await(ctx, func() bool { return len(inFlight) == 0 }); err != nil {
		return err
	}

	// Signals delivered after the last receive must not be lost
	for {
		var signal AddWorkspacesSignal
		if !addCh.ReceiveAsync(&signal) {
			break
		}
		enqueue(signal.Workspaces)
	}

	logger.InfoWf(ctx, "Queue reached max iterations, continuing as new",
		zap.Int("queued", queue.len()),
		zap.Int("totalProcessed", state.TotalProcessed),
	)

	return workflow.NewContinueAsNewError(ctx, WorkflowTypeComputePropertiesQueue, QueueParams{
		State: &QueueState{Items: queue.snapshot(), TotalProcessed: state.TotalProcessed},
	})
}

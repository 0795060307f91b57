package workflows

import "fmt"

// Workflow type names. They are registered explicitly so starters do not depend on method names.
const (
	WorkflowTypeComputeProperties          = "ComputePropertiesWorkflow"
	WorkflowTypeComputePropertiesScheduler = "ComputePropertiesSchedulerWorkflow"
	WorkflowTypeComputePropertiesQueue     = "ComputePropertiesQueueWorkflow"
)

// Well known workflow ids of the global process
const (
	SchedulerWorkflowID = "compute-properties-scheduler-workflow"
	QueueWorkflowID     = "compute-properties-queue-workflow"
)

// Signals and queries
const (
	// SignalComputePropertiesEarly wakes a sleeping per-workspace workflow
	SignalComputePropertiesEarly = "compute-properties-early"
	// SignalStop makes a per-workspace workflow return before its next window
	SignalStop = "stop"
	// SignalAddWorkspaces adds workspaces to the global queue
	SignalAddWorkspaces = "add-workspaces"
	// QueryGetQueueSize returns the number of queued workspaces
	QueryGetQueueSize = "getQueueSize"
)

// ComputePropertiesWorkflowID returns the id of the per-workspace workflow
func ComputePropertiesWorkflowID(workspaceID string) string {
	return fmt.Sprintf("compute-properties-workflow-%s", workspaceID)
}

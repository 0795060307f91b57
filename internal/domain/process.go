package domain

import "time"

// ProcessMode is how a workspace is computed
type ProcessMode string

const (
	ProcessModeWorkspace ProcessMode = "workspace"
	ProcessModeGlobal    ProcessMode = "global"
)

// ProcessState is the lifecycle state of a workspace's computation process
type ProcessState string

const (
	ProcessStateNotStarted ProcessState = "NotStarted"
	ProcessStateRunning    ProcessState = "Running"
	ProcessStateStopped    ProcessState = "Stopped"
	ProcessStateTerminated ProcessState = "Terminated"
)

// StopReason records who stopped a process
type StopReason string

const (
	// StopReasonOperator is an administrative stop; only an explicit Start resumes it
	StopReasonOperator StopReason = "operator"
	// StopReasonPaused is a stop applied by the reconciler to a paused or blocked workspace
	StopReasonPaused StopReason = "paused"
)

// ComputeProcess is the durable lifecycle record of a workspace
type ComputeProcess struct {
	WorkspaceID string
	Mode        ProcessMode
	State       ProcessState
	WorkflowID  string
	// StopReason is set only while State is Stopped
	StopReason StopReason
	UpdatedAt  time.Time
}

// DueWorkspace is a workspace selected for recomputation
type DueWorkspace struct {
	WorkspaceID string
	// LastRecomputedAt is nil when the workspace was never computed
	LastRecomputedAt *time.Time
}

// DesiredMode returns the process mode a workspace should run in given its global flag.
// The second result is false when the workspace must not compute at all.
func DesiredMode(w Workspace, global bool) (ProcessMode, bool) {
	if !w.CanCompute() {
		return "", false
	}
	if global {
		return ProcessModeGlobal, true
	}
	return ProcessModeWorkspace, true
}

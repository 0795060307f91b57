package lifecycle

import (
	"errors"

	"github.com/feral-file/ff-computed-properties/internal/domain"
)

// Action is what the manager must do to move a process to its next state
type Action string

const (
	ActionNone      Action = "none"
	ActionStart     Action = "start"
	ActionStop      Action = "stop"
	ActionTerminate Action = "terminate"
	// ActionSwitch terminates the process in its old mode, then starts it in the new one
	ActionSwitch Action = "switch"
)

// Transition is the result of NextTransition
type Transition struct {
	Action Action
	From   domain.ProcessState
	To     domain.ProcessState
	// Mode is the mode of the process after the transition
	Mode domain.ProcessMode
}

// NextTransition decides the next lifecycle step of a workspace from its current process,
// its status and the global computation flag. A nil current process is NotStarted.
//
// Terminated processes and processes stopped by an operator are only restarted by an explicit
// Start. A process the reconciler stopped for a pause resumes once the workspace can compute.
func NextTransition(current *domain.ComputeProcess, workspace domain.Workspace, global bool) Transition {
	from := domain.ProcessStateNotStarted
	var mode domain.ProcessMode
	if current != nil {
		from = current.State
		mode = current.Mode
	}
	none := Transition{Action: ActionNone, From: from, To: from, Mode: mode}

	desired, ok := domain.DesiredMode(workspace, global)
	if !ok {
		switch {
		case workspace.Status == domain.WorkspaceStatusPaused:
			if from == domain.ProcessStateRunning {
				return Transition{Action: ActionStop, From: from, To: domain.ProcessStateStopped, Mode: mode}
			}
		case from == domain.ProcessStateRunning || from == domain.ProcessStateStopped:
			// tombstoned or parent
			return Transition{Action: ActionTerminate, From: from, To: domain.ProcessStateTerminated, Mode: mode}
		}
		return none
	}

	switch from {
	case domain.ProcessStateRunning:
		if mode == desired {
			return none
		}
		return Transition{Action: ActionSwitch, From: from, To: domain.ProcessStateRunning, Mode: desired}
	case domain.ProcessStateStopped:
		if current.StopReason != domain.StopReasonPaused {
			return none
		}
		if mode != "" && mode != desired {
			return Transition{Action: ActionSwitch, From: from, To: domain.ProcessStateRunning, Mode: desired}
		}
		return Transition{Action: ActionStart, From: from, To: domain.ProcessStateRunning, Mode: desired}
	case domain.ProcessStateNotStarted:
		return Transition{Action: ActionStart, From: from, To: domain.ProcessStateRunning, Mode: desired}
	default:
		return none
	}
}

func isIneligible(err error) bool {
	return errors.Is(err, domain.ErrWorkspaceIneligible) || errors.Is(err, domain.ErrWorkspaceNotFound)
}

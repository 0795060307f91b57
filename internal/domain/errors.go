package domain

import "errors"

var (
	// ErrWorkspaceNotFound is returned when a workspace id does not exist
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrWorkspaceIneligible is returned when a workspace may not run a computation process
	ErrWorkspaceIneligible = errors.New("workspace is not eligible for computation")

	// ErrInvalidDefinition is returned when a segment or user property definition cannot be evaluated
	ErrInvalidDefinition = errors.New("invalid computed property definition")

	// ErrWatermarkConflict is returned when another pass committed the same period first
	ErrWatermarkConflict = errors.New("watermark changed by a concurrent pass")

	// ErrWatermarkRegression is returned when a commit would move a watermark backwards
	ErrWatermarkRegression = errors.New("watermark cannot move backwards")

	// ErrLifecycleConflict is returned when a command cannot be applied in the current process state
	ErrLifecycleConflict = errors.New("lifecycle conflict")

	// ErrWorkflowNotFound is returned when the durable process for a key does not exist
	ErrWorkflowNotFound = errors.New("workflow not found")

	// ErrWorkflowAlreadyStarted is returned when the durable process for a key is already running
	ErrWorkflowAlreadyStarted = errors.New("workflow already started")
)

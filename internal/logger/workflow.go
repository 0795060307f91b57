package logger

import (
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"
)

// WorkflowInfo identifies the workflow execution a log line belongs to
type WorkflowInfo struct {
	WorkflowType string
	WorkflowID   string
	RunID        string
	Namespace    string
	TaskQueue    string
}

func (i WorkflowInfo) fields() []zap.Field {
	return []zap.Field{
		zap.String("workflowType", i.WorkflowType),
		zap.String("workflowID", i.WorkflowID),
		zap.String("runID", i.RunID),
		zap.String("namespace", i.Namespace),
		zap.String("taskQueue", i.TaskQueue),
	}
}

// GetWorkflowInfo extracts the execution identity from a workflow context
func GetWorkflowInfo(ctx workflow.Context) *WorkflowInfo {
	info := workflow.GetInfo(ctx)
	if info == nil {
		return nil
	}

	workflowTypeName := info.WorkflowType.Name
	if workflowTypeName == "" {
		workflowTypeName = "unknown"
	}

	return &WorkflowInfo{
		WorkflowType: workflowTypeName,
		WorkflowID:   info.WorkflowExecution.ID,
		RunID:        info.WorkflowExecution.RunID,
		Namespace:    info.Namespace,
		TaskQueue:    info.TaskQueueName,
	}
}

// WithWorkflowInfo returns the process logger annotated with the workflow identity
func WithWorkflowInfo(info WorkflowInfo) *zap.Logger {
	return current().With(info.fields()...)
}

// FromWorkflow returns a logger for ctx, or the process logger when no workflow info is present
func FromWorkflow(ctx workflow.Context, info *WorkflowInfo) *zap.Logger {
	if info == nil {
		info = GetWorkflowInfo(ctx)
	}
	if info == nil {
		return current()
	}
	return WithWorkflowInfo(*info)
}

// InfoWf logs an info message from a workflow. Nothing is logged while replaying.
func InfoWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	FromWorkflow(ctx, nil).Info(msg, fields...)
}

// ErrorWf logs an error from a workflow. Nothing is logged while replaying.
func ErrorWf(ctx workflow.Context, err error, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	FromWorkflow(ctx, nil).Error(errorMessage(err), fields...)
}

// WarnWf logs a warning from a workflow. Nothing is logged while replaying.
func WarnWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	FromWorkflow(ctx, nil).Warn(msg, fields...)
}

// DebugWf logs a debug message from a workflow. Nothing is logged while replaying.
func DebugWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	FromWorkflow(ctx, nil).Debug(msg, fields...)
}

package temporal

import (
	"errors"

	"go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/api/workflowservice/v1"
)

// IsNotFound reports whether err means the workflow execution does not exist
func IsNotFound(err error) bool {
	var notFound *serviceerror.NotFound
	return errors.As(err, &notFound)
}

// IsAlreadyStarted reports whether err means a workflow with the same id is already running
func IsAlreadyStarted(err error) bool {
	var started *serviceerror.WorkflowExecutionAlreadyStarted
	return errors.As(err, &started)
}

// IsRunning reports whether a describe response is for an open execution
func IsRunning(resp *workflowservice.DescribeWorkflowExecutionResponse) bool {
	if resp == nil || resp.GetWorkflowExecutionInfo() == nil {
		return false
	}
	return resp.GetWorkflowExecutionInfo().GetStatus() == enums.WORKFLOW_EXECUTION_STATUS_RUNNING
}

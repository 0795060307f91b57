package temporal

import (
	"context"
	"strconv"

	"github.com/getsentry/sentry-go"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/interceptor"
)

// NewSentryActivityInterceptor creates a new Sentry activity interceptor
func NewSentryActivityInterceptor() interceptor.WorkerInterceptor {
	return &SentryActivityInterceptor{
		WorkerInterceptorBase: interceptor.WorkerInterceptorBase{},
	}
}

// SentryActivityInterceptor gives every activity execution its own Sentry hub,
// tagged with the activity and workflow it runs for
type SentryActivityInterceptor struct {
	interceptor.WorkerInterceptorBase
}

// InterceptActivity wraps activity execution to inject Sentry hub
func (s *SentryActivityInterceptor) InterceptActivity(ctx context.Context, next interceptor.ActivityInboundInterceptor) interceptor.ActivityInboundInterceptor {
	return &sentryActivityInboundInterceptor{
		ActivityInboundInterceptorBase: interceptor.ActivityInboundInterceptorBase{
			Next: next,
		},
	}
}

type sentryActivityInboundInterceptor struct {
	interceptor.ActivityInboundInterceptorBase
}

// ExecuteActivity injects a cloned Sentry hub into the activity context before execution
func (s *sentryActivityInboundInterceptor) ExecuteActivity(ctx context.Context, in *interceptor.ExecuteActivityInput) (interface{}, error) {
	hub := sentry.CurrentHub().Clone()

	info := activity.GetInfo(ctx)
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("activityType", info.ActivityType.Name)
		scope.SetTag("workflowID", info.WorkflowExecution.ID)
		scope.SetTag("attempt", strconv.Itoa(int(info.Attempt)))
	})

	// logger.*Ctx picks the hub up from the context
	ctx = sentry.SetHubOnContext(ctx, hub)

	return s.Next.ExecuteActivity(ctx, in)
}

package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/logger"
	"github.com/feral-file/ff-computed-properties/internal/registry"
	"github.com/feral-file/ff-computed-properties/internal/store"
)

// Scheduler selects workspaces due for recomputation
//
//go:generate mockgen -source=scheduler.go -destination=../mocks/scheduler.go -package=mocks -mock_names=Scheduler=MockScheduler
type Scheduler interface {
	// FindDueWorkspaces returns computable workspaces whose latest recompute is older than now - interval.
	// Never computed workspaces come first, then the oldest recompute.
	FindDueWorkspaces(ctx context.Context, now time.Time, interval time.Duration, limit int) ([]domain.DueWorkspace, error)
	// FindDueGlobalWorkspaces is FindDueWorkspaces restricted to globally computed, non blocked workspaces
	FindDueGlobalWorkspaces(ctx context.Context, now time.Time, interval time.Duration, limit int) ([]domain.DueWorkspace, error)
}

type scheduler struct {
	store     store.Store
	blocklist registry.WorkspaceBlocklist
}

// NewScheduler creates a new due-workspace scheduler
func NewScheduler(st store.Store, blocklist registry.WorkspaceBlocklist) Scheduler {
	if blocklist == nil {
		blocklist = registry.NewWorkspaceBlocklist()
	}
	return &scheduler{store: st, blocklist: blocklist}
}

func (s *scheduler) FindDueWorkspaces(ctx context.Context, now time.Time, interval time.Duration, limit int) ([]domain.DueWorkspace, error) {
	return s.find(ctx, store.DueWorkspacesQuery{Now: now, Interval: interval, Limit: limit})
}

func (s *scheduler) FindDueGlobalWorkspaces(ctx context.Context, now time.Time, interval time.Duration, limit int) ([]domain.DueWorkspace, error) {
	return s.find(ctx, store.DueWorkspacesQuery{Now: now, Interval: interval, Limit: limit, GlobalOnly: true})
}

func (s *scheduler) find(ctx context.Context, query store.DueWorkspacesQuery) ([]domain.DueWorkspace, error) {
	if query.Limit <= 0 {
		return nil, nil
	}

	limit := query.Limit
	// Over-fetch so blocked rows do not starve the page
	query.Limit += s.blocklist.Size()

	due, err := s.store.FindDueWorkspaces(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find due workspaces: %w", err)
	}

	result := make([]domain.DueWorkspace, 0, min(len(due), limit))
	for _, w := range due {
		if s.blocklist.IsBlocked(w.WorkspaceID) {
			logger.DebugCtx(ctx, "Skipping blocked workspace", logger.Workspace(w.WorkspaceID))
			continue
		}
		result = append(result, w)
		if len(result) == limit {
			break
		}
	}

	logger.DebugCtx(ctx, "Found due workspaces",
		zap.Bool("globalOnly", query.GlobalOnly),
		zap.Int("count", len(result)),
	)

	return result, nil
}

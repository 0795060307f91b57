package reset

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/lifecycle"
	"github.com/feral-file/ff-computed-properties/internal/logger"
	"github.com/feral-file/ff-computed-properties/internal/store"
)

// Resetter wipes workspace data for backfills and migrations
//
//go:generate mockgen -source=reset.go -destination=../mocks/resetter.go -package=mocks -mock_names=Resetter=MockResetter
type Resetter interface {
	// ResetWorkspaceData deletes the events, computed state and assignment mirrors of the workspace.
	// It rejects with domain.ErrLifecycleConflict while a process is running, unless force
	// is set, in which case the process is terminated first.
	ResetWorkspaceData(ctx context.Context, workspaceID string, force bool) error
}

type resetter struct {
	store     store.Store
	lifecycle lifecycle.Manager
}

// NewResetter creates a new resetter
func NewResetter(st store.Store, manager lifecycle.Manager) Resetter {
	return &resetter{store: st, lifecycle: manager}
}

func (r *resetter) ResetWorkspaceData(ctx context.Context, workspaceID string, force bool) error {
	if workspaceID == "" {
		return fmt.Errorf("workspace id is required")
	}

	process, err := r.store.GetComputeProcess(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to get compute process: %w", err)
	}
	if process != nil && process.State == domain.ProcessStateRunning {
		if !force {
			return fmt.Errorf("%w: compute process of %s is running", domain.ErrLifecycleConflict, workspaceID)
		}
		if _, err := r.lifecycle.Terminate(ctx, workspaceID); err != nil {
			return fmt.Errorf("failed to terminate compute process: %w", err)
		}
	}

	// Global passes have no workflow to terminate; the exclusive lock waits them out
	err = r.store.WithResetLock(ctx, workspaceID, func(ctx context.Context) error {
		g, gctx := errgroup.WithContext(ctx)
		for _, table := range store.WorkspaceDataTables {
			g.Go(func() error {
				if err := r.store.DeleteWorkspaceRows(gctx, workspaceID, table); err != nil {
					return fmt.Errorf("failed to delete %s: %w", table, err)
				}
				return nil
			})
		}
		return g.Wait()
	})
	if err != nil {
		return err
	}

	logger.InfoCtx(ctx, "Workspace data reset",
		logger.Workspace(workspaceID),
		zap.Int("tables", len(store.WorkspaceDataTables)),
		zap.Bool("force", force),
	)

	return nil
}

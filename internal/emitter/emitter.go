package emitter

import (
	"context"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-computed-properties/internal/adapter"
	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/logger"
	"github.com/feral-file/ff-computed-properties/internal/messaging"
	"github.com/feral-file/ff-computed-properties/internal/store"
)

// Config holds the configuration for the change emitter
type Config struct {
	// PendingLimit bounds how many unprocessed assignments EmitPending re-emits per call
	PendingLimit int
}

// Result summarizes one emission run
type Result struct {
	Published int
	// Skipped counts changes that already had a processed marker
	Skipped int
	Failed  int
}

// Emitter defines the interface for the change emitter
//
//go:generate mockgen -source=emitter.go -destination=../mocks/emitter.go -package=mocks -mock_names=Emitter=MockEmitter
type Emitter interface {
	// Emit publishes every change that has no processed marker yet, then marks it
	Emit(ctx context.Context, workspaceID string, changes []domain.Change) (Result, error)
	// EmitPending re-emits resolved values whose current version was never marked processed
	EmitPending(ctx context.Context, workspaceID string) (Result, error)
}

// emitter publishes change notifications at least once and marks them processed
type emitter struct {
	publisher messaging.Publisher
	store     store.Store
	config    Config
	clock     adapter.Clock
}

// NewEmitter creates a new change emitter
func NewEmitter(
	pub messaging.Publisher,
	st store.Store,
	cfg Config,
	clock adapter.Clock,
) Emitter {
	if cfg.PendingLimit <= 0 {
		cfg.PendingLimit = 1000
	}
	return &emitter{
		publisher: pub,
		store:     st,
		config:    cfg,
		clock:     clock,
	}
}

// Emit publishes changes in order. A failed change is left unmarked so a later pass retries it;
// the remaining changes are still attempted.
func (e *emitter) Emit(ctx context.Context, workspaceID string, changes []domain.Change) (Result, error) {
	var result Result
	var errs []error

	for _, change := range changes {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if change.WorkspaceID == "" {
			change.WorkspaceID = workspaceID
		}

		published, err := e.emitOne(ctx, change)
		if err != nil {
			result.Failed++
			errs = append(errs, err)
			logger.ErrorCtx(ctx, err,
				logger.Workspace(workspaceID),
				zap.String("dedupKey", change.DedupKey()),
			)
			continue
		}

		if published {
			result.Published++
		} else {
			result.Skipped++
		}
	}

	if len(errs) > 0 {
		return result, fmt.Errorf("failed to emit %d of %d changes: %w", len(errs), len(changes), errors.Join(errs...))
	}

	return result, nil
}

// emitOne publishes a single change and writes its marker. It reports false when the marker already existed.
func (e *emitter) emitOne(ctx context.Context, change domain.Change) (bool, error) {
	processed, err := e.store.IsProcessed(ctx, change)
	if err != nil {
		return false, fmt.Errorf("failed to check processed marker: %w", err)
	}
	if processed {
		return false, nil
	}

	notification := domain.NewChangeNotification(change, ulid.Make().String(), e.clock.Now())
	if err := e.publisher.PublishChange(ctx, notification); err != nil {
		return false, fmt.Errorf("failed to publish change %s: %w", change.DedupKey(), err)
	}

	// A crash here republishes on the next pass; the broker drops it by message id
	if err := e.store.MarkProcessed(ctx, change); err != nil {
		return false, fmt.Errorf("failed to mark change %s processed: %w", change.DedupKey(), err)
	}

	logger.DebugCtx(ctx, "Change emitted",
		logger.Workspace(change.WorkspaceID),
		zap.String("kind", string(notification.Kind)),
		zap.String("dedupKey", notification.DedupKey),
	)

	return true, nil
}

// EmitPending recovers changes committed by a pass that crashed before emitting them
func (e *emitter) EmitPending(ctx context.Context, workspaceID string) (Result, error) {
	assignments, err := e.store.ListUnprocessedAssignments(ctx, workspaceID, e.config.PendingLimit)
	if err != nil {
		return Result{}, fmt.Errorf("failed to list unprocessed assignments: %w", err)
	}

	if len(assignments) == 0 {
		return Result{}, nil
	}

	logger.InfoCtx(ctx, "Re-emitting pending changes",
		logger.Workspace(workspaceID),
		zap.Int("count", len(assignments)),
	)

	changes := make([]domain.Change, 0, len(assignments))
	for _, a := range assignments {
		changes = append(changes, domain.ChangeFromAssignment(a))
	}

	return e.Emit(ctx, workspaceID, changes)
}

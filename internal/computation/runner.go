package computation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-computed-properties/internal/emitter"
	"github.com/feral-file/ff-computed-properties/internal/logger"
	"github.com/feral-file/ff-computed-properties/internal/materializer"
	"github.com/feral-file/ff-computed-properties/internal/store"
)

// PassResult summarizes one computation pass of a workspace
type PassResult struct {
	Changes int
	// Emitted counts notifications published in this pass, including recovered ones
	Emitted int
	// Partial is true when the pass stopped before reaching now
	Partial bool
	Skipped int
	Failed  int
}

// Runner runs a full computation pass: recover pending emissions, materialize, emit
//
//go:generate mockgen -source=runner.go -destination=../mocks/runner.go -package=mocks -mock_names=Runner=MockRunner
type Runner interface {
	Run(ctx context.Context, workspaceID string, now time.Time) (*PassResult, error)
}

type runner struct {
	store        store.Store
	materializer materializer.Materializer
	emitter      emitter.Emitter
}

// NewRunner creates a new pass runner
func NewRunner(st store.Store, m materializer.Materializer, e emitter.Emitter) Runner {
	return &runner{store: st, materializer: m, emitter: e}
}

// Run computes the window (watermark, now] of every definition in the workspace and emits what changed.
// State commits are never rolled back because of emission failures; they are recovered by the next pass.
func (r *runner) Run(ctx context.Context, workspaceID string, now time.Time) (*PassResult, error) {
	result := &PassResult{}

	pending, err := r.emitter.EmitPending(ctx, workspaceID)
	result.Emitted += pending.Published
	if err != nil {
		// The same rows are retried by the next pass
		logger.WarnCtx(ctx, "Failed to re-emit pending changes",
			logger.Workspace(workspaceID),
			zap.Error(err),
		)
	}

	segments, userProperties, err := r.store.GetSegmentsAndUserProperties(ctx, workspaceID)
	if err != nil {
		return result, fmt.Errorf("failed to load definitions: %w", err)
	}

	computed, computeErr := r.materializer.ComputeState(ctx, workspaceID, segments, userProperties, now)
	if computed == nil {
		computed = &materializer.Result{}
	}

	result.Changes = len(computed.Changes)
	result.Partial = computed.Partial
	result.Skipped = len(computed.Skipped)
	result.Failed = len(computed.Failed)

	emitted, emitErr := r.emitter.Emit(ctx, workspaceID, computed.Changes)
	result.Emitted += emitted.Published

	logger.InfoCtx(ctx, "Computation pass finished",
		logger.Workspace(workspaceID),
		zap.Int("segments", len(segments)),
		zap.Int("userProperties", len(userProperties)),
		zap.Int("changes", result.Changes),
		zap.Int("emitted", result.Emitted),
		zap.Bool("partial", result.Partial),
	)

	if computeErr != nil {
		computeErr = fmt.Errorf("failed to compute state: %w", computeErr)
	}
	if computeErr != nil || emitErr != nil {
		return result, errors.Join(computeErr, emitErr)
	}

	return result, nil
}

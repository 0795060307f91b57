package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-computed-properties/internal/adapter"
	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/lifecycle"
	"github.com/feral-file/ff-computed-properties/internal/logger"
	"github.com/feral-file/ff-computed-properties/internal/registry"
	"github.com/feral-file/ff-computed-properties/internal/store"
)

// LifecycleReconcilerConfig holds configuration for the lifecycle reconciler
type LifecycleReconcilerConfig struct {
	Interval       time.Duration // Time to sleep between sweep cycles
	BatchSize      int           // Workspaces listed per page
	WorkerPoolSize int           // Concurrent reconciles
	MaxRetries     uint64        // Retries of a failed store or lifecycle call
}

// lifecycleReconciler implements the Sweeper interface for workspace lifecycle transitions
type lifecycleReconciler struct {
	config    *LifecycleReconcilerConfig
	store     store.Store
	manager   lifecycle.Manager
	blocklist registry.WorkspaceBlocklist
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewLifecycleReconciler creates a sweeper that turns workspace status changes into lifecycle transitions
func NewLifecycleReconciler(
	config *LifecycleReconcilerConfig,
	st store.Store,
	manager lifecycle.Manager,
	blocklist registry.WorkspaceBlocklist,
	clock adapter.Clock,
) Sweeper {
	if blocklist == nil {
		blocklist = registry.NewWorkspaceBlocklist()
	}
	return &lifecycleReconciler{
		config:    config,
		store:     st,
		manager:   manager,
		blocklist: blocklist,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *lifecycleReconciler) Name() string {
	return "lifecycle-reconciler"
}

// Start runs sweep cycles until the context is canceled or Stop is called
func (s *lifecycleReconciler) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting lifecycle reconciler",
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
		zap.Duration("interval", s.config.Interval),
		zap.Int("blocked_workspaces", s.blocklist.Size()),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Lifecycle reconciler stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Lifecycle reconciler stop requested")
			return nil
		default:
			if err := s.runSweepCycle(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.ErrorCtx(ctx, err)
			}
			if !s.sleep(ctx, s.config.Interval) {
				return nil
			}
		}
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *lifecycleReconciler) Stop(ctx context.Context) error {
	if !s.running.Load() {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping lifecycle reconciler")
	select {
	case <-s.stopChan:
	default:
		close(s.stopChan)
	}

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Lifecycle reconciler stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Lifecycle reconciler stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle pages through every workspace and reconciles each on the worker pool
func (s *lifecycleReconciler) runSweepCycle(ctx context.Context) error {
	startTime := s.clock.Now()

	pool := pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	var total, changed, failed atomic.Int32
	afterID := ""
	for {
		page, err := s.listWorkspaces(ctx, afterID)
		if err != nil {
			pool.StopAndWait()
			return fmt.Errorf("failed to list workspaces after %q: %w", afterID, err)
		}

		for _, w := range page {
			total.Add(1)
			pool.Submit(func() {
				t, err := s.reconcile(ctx, w)
				if err != nil {
					failed.Add(1)
					logger.ErrorCtx(ctx, err, logger.Workspace(w.ID))
					return
				}
				if t.Action != lifecycle.ActionNone {
					changed.Add(1)
				}
			})
		}

		if len(page) < s.config.BatchSize {
			break
		}
		afterID = page[len(page)-1].ID
	}

	pool.StopAndWait()

	logger.InfoCtx(ctx, "Sweep cycle completed",
		zap.Duration("duration", s.clock.Since(startTime)),
		zap.Int32("workspaces", total.Load()),
		zap.Int32("transitions", changed.Load()),
		zap.Int32("failures", failed.Load()),
	)

	return nil
}

func (s *lifecycleReconciler) listWorkspaces(ctx context.Context, afterID string) ([]domain.Workspace, error) {
	var page []domain.Workspace
	err := s.retry(ctx, "list workspaces", func() error {
		var err error
		page, err = s.store.ListWorkspaces(ctx, afterID, s.config.BatchSize)
		return err
	})
	return page, err
}

func (s *lifecycleReconciler) reconcile(ctx context.Context, w domain.Workspace) (lifecycle.Transition, error) {
	var t lifecycle.Transition
	err := s.retry(ctx, "reconcile "+w.ID, func() error {
		var err error
		t, err = s.manager.Reconcile(ctx, w, s.blocklist.IsBlocked(w.ID))
		if errors.Is(err, domain.ErrWorkspaceIneligible) || errors.Is(err, domain.ErrWorkspaceNotFound) {
			return backoff.Permanent(err)
		}
		return err
	})
	return t, err
}

// retry runs operation with exponential backoff, up to MaxRetries retries
func (s *lifecycleReconciler) retry(ctx context.Context, name string, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = 30 * time.Second
	b.RandomizationFactor = 0.5

	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Lifecycle reconciler call failed, retrying",
			zap.String("operation", name),
			zap.Error(err),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration),
		)
	}

	return backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(b, s.config.MaxRetries), ctx), notifyOnError)
}

// sleep sleeps for the given duration but can be interrupted.
// Returns true if sleep completed normally.
func (s *lifecycleReconciler) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}

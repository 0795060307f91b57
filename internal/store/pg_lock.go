package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

const workspaceLockPrefix = "computed-properties:"

// WithComputeLock runs fn while holding the workspace lock shared
func (s *pgStore) WithComputeLock(ctx context.Context, workspaceID string, fn func(ctx context.Context) error) error {
	return s.withWorkspaceLock(ctx, "pg_advisory_xact_lock_shared", workspaceID, fn)
}

// WithResetLock runs fn while holding the workspace lock exclusively
func (s *pgStore) WithResetLock(ctx context.Context, workspaceID string, fn func(ctx context.Context) error) error {
	return s.withWorkspaceLock(ctx, "pg_advisory_xact_lock", workspaceID, fn)
}

// withWorkspaceLock takes a transaction scoped advisory lock and keeps the transaction open until fn returns.
// fn does its own work on the main pool; the lock transaction only carries the lock.
func (s *pgStore) withWorkspaceLock(ctx context.Context, lockFunc string, workspaceID string, fn func(ctx context.Context) error) error {
	return s.locks.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(fmt.Sprintf("SELECT %s(hashtextextended(?, 0))", lockFunc), workspaceLockPrefix+workspaceID).Error; err != nil {
			return fmt.Errorf("failed to lock workspace %s: %w", workspaceID, err)
		}
		return fn(ctx)
	})
}

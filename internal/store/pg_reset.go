package store

import (
	"context"
	"fmt"
	"slices"

	"gorm.io/gorm"
)

func checkWorkspaceTable(table WorkspaceTable) error {
	if !slices.Contains(WorkspaceDataTables, table) {
		return fmt.Errorf("table %s is not workspace scoped", table)
	}
	return nil
}

// ResetComputedState clears every engine owned row of the workspace in one transaction
func (s *pgStore) ResetComputedState(ctx context.Context, workspaceID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range ComputedStateTables {
			if err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE workspace_id = ?", table), workspaceID).Error; err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
}

// DeleteWorkspaceRows clears one workspace scoped table
func (s *pgStore) DeleteWorkspaceRows(ctx context.Context, workspaceID string, table WorkspaceTable) error {
	if err := checkWorkspaceTable(table); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).
		Exec(fmt.Sprintf("DELETE FROM %s WHERE workspace_id = ?", table), workspaceID).Error; err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	return nil
}

// CountWorkspaceRows counts the rows of one workspace scoped table
func (s *pgStore) CountWorkspaceRows(ctx context.Context, workspaceID string, table WorkspaceTable) (int64, error) {
	if err := checkWorkspaceTable(table); err != nil {
		return 0, err
	}
	var count int64
	if err := s.primary().WithContext(ctx).
		Table(string(table)).
		Where("workspace_id = ?", workspaceID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}

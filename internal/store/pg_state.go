package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/store/schema"
)

func keyScope(tx *gorm.DB, key domain.ComputedPropertyKey) *gorm.DB {
	return tx.Where("workspace_id = ? AND computed_property_type = ? AND computed_property_id = ?",
		key.WorkspaceID, string(key.Type), key.ID)
}

// ListRawState returns raw state of a computed property, restricted to userIDs when not nil
func (s *pgStore) ListRawState(ctx context.Context, key domain.ComputedPropertyKey, userIDs []string) ([]domain.RawState, error) {
	var rows []schema.ComputedPropertyState

	load := func(ids []string) error {
		tx := keyScope(s.primary().WithContext(ctx), key)
		if ids != nil {
			tx = tx.Where("user_id IN ?", ids)
		}
		var batch []schema.ComputedPropertyState
		if err := tx.Find(&batch).Error; err != nil {
			return fmt.Errorf("failed to list raw state: %w", err)
		}
		rows = append(rows, batch...)
		return nil
	}

	if userIDs == nil {
		if err := load(nil); err != nil {
			return nil, err
		}
	} else if err := inBatches(len(userIDs), 1, func(start, end int) error {
		return load(userIDs[start:end])
	}); err != nil {
		return nil, err
	}

	states := make([]domain.RawState, 0, len(rows))
	for _, row := range rows {
		state, err := toDomainRawState(row)
		if err != nil {
			return nil, fmt.Errorf("failed to decode raw state of user %s: %w", row.UserID, err)
		}
		states = append(states, state)
	}
	return states, nil
}

// ListAssignments returns resolved state of a computed property, restricted to userIDs when not nil
func (s *pgStore) ListAssignments(ctx context.Context, key domain.ComputedPropertyKey, userIDs []string) ([]domain.Assignment, error) {
	var rows []schema.ComputedPropertyAssignment

	load := func(ids []string) error {
		tx := keyScope(s.primary().WithContext(ctx), key)
		if ids != nil {
			tx = tx.Where("user_id IN ?", ids)
		}
		var batch []schema.ComputedPropertyAssignment
		if err := tx.Find(&batch).Error; err != nil {
			return fmt.Errorf("failed to list assignments: %w", err)
		}
		rows = append(rows, batch...)
		return nil
	}

	if userIDs == nil {
		if err := load(nil); err != nil {
			return nil, err
		}
	} else if err := inBatches(len(userIDs), 1, func(start, end int) error {
		return load(userIDs[start:end])
	}); err != nil {
		return nil, err
	}

	assignments := make([]domain.Assignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, toDomainAssignment(row))
	}
	return assignments, nil
}

// GetUserAssignments returns every resolved value of a user through the state index
func (s *pgStore) GetUserAssignments(ctx context.Context, workspaceID string, userID string) ([]domain.Assignment, error) {
	var rows []schema.ComputedPropertyAssignment
	err := s.db.WithContext(ctx).
		Table("computed_property_state_index AS i").
		Select("a.*").
		Joins(`JOIN computed_property_assignments AS a
			ON a.workspace_id = i.workspace_id
			AND a.user_id = i.user_id
			AND a.computed_property_type = i.computed_property_type
			AND a.computed_property_id = i.computed_property_id`).
		Where("i.workspace_id = ? AND i.user_id = ?", workspaceID, userID).
		Order("a.computed_property_type ASC, a.computed_property_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user assignments: %w", err)
	}

	assignments := make([]domain.Assignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, toDomainAssignment(row))
	}
	return assignments, nil
}

// IsProcessed reports whether the change already has a processed marker
func (s *pgStore) IsProcessed(ctx context.Context, change domain.Change) (bool, error) {
	var count int64
	err := s.primary().WithContext(ctx).
		Model(&schema.ProcessedComputedProperty{}).
		Where("workspace_id = ? AND computed_property_type = ? AND computed_property_id = ? AND user_id = ? AND version = ?",
			change.WorkspaceID, string(change.ComputedPropertyType), change.ComputedPropertyID, change.UserID, change.Version).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check processed marker: %w", err)
	}
	return count > 0, nil
}

// MarkProcessed writes the processed marker of the change
func (s *pgStore) MarkProcessed(ctx context.Context, change domain.Change) error {
	marker := schema.ProcessedComputedProperty{
		WorkspaceID:          change.WorkspaceID,
		ComputedPropertyType: string(change.ComputedPropertyType),
		ComputedPropertyID:   change.ComputedPropertyID,
		UserID:               change.UserID,
		Version:              change.Version,
		Value:                jsonOrNil(change.NewValue),
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&marker).Error; err != nil {
		return fmt.Errorf("failed to write processed marker: %w", err)
	}
	return nil
}

// ListUnprocessedAssignments returns assignments whose current version has no marker, oldest first
func (s *pgStore) ListUnprocessedAssignments(ctx context.Context, workspaceID string, limit int) ([]domain.Assignment, error) {
	var rows []schema.ComputedPropertyAssignment
	err := s.primary().WithContext(ctx).
		Table("computed_property_assignments AS a").
		Select("a.*").
		Where("a.workspace_id = ?", workspaceID).
		Where(`NOT EXISTS (
			SELECT 1 FROM processed_computed_properties AS p
			WHERE p.workspace_id = a.workspace_id
			AND p.computed_property_type = a.computed_property_type
			AND p.computed_property_id = a.computed_property_id
			AND p.user_id = a.user_id
			AND p.version = a.assignment_version)`).
		Order("a.updated_at ASC, a.user_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list unprocessed assignments: %w", err)
	}

	assignments := make([]domain.Assignment, 0, len(rows))
	for _, row := range rows {
		assignments = append(assignments, toDomainAssignment(row))
	}
	return assignments, nil
}

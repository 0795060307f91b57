package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/store/schema"
)

func periodScope(tx *gorm.DB, key domain.ComputedPropertyKey) *gorm.DB {
	return tx.Where("workspace_id = ? AND computed_property_type = ? AND computed_property_id = ?",
		key.WorkspaceID, string(key.Type), key.ID)
}

// GetPeriod returns the watermark of a computed property, nil when absent
func (s *pgStore) GetPeriod(ctx context.Context, key domain.ComputedPropertyKey) (*domain.Period, error) {
	var row schema.ComputedPropertyPeriod
	err := periodScope(s.primary().WithContext(ctx), key).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get period: %w", err)
	}
	period := toDomainPeriod(row)
	return &period, nil
}

// GetPeriodsByWorkspace lists every watermark of the workspace
func (s *pgStore) GetPeriodsByWorkspace(ctx context.Context, workspaceID string) ([]domain.Period, error) {
	var rows []schema.ComputedPropertyPeriod
	err := s.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("computed_property_type ASC, computed_property_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get periods: %w", err)
	}

	periods := make([]domain.Period, 0, len(rows))
	for _, row := range rows {
		periods = append(periods, toDomainPeriod(row))
	}
	return periods, nil
}

// GetEarliestPeriod returns the period with the oldest watermark
func (s *pgStore) GetEarliestPeriod(ctx context.Context, workspaceID string) (*domain.Period, error) {
	var row schema.ComputedPropertyPeriod
	err := s.primary().WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("window_end ASC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get earliest period: %w", err)
	}
	period := toDomainPeriod(row)
	return &period, nil
}

// CommitWindow writes raw state, resolved state, mirrors and the new watermark of one computed
// property in a single transaction. The period row is locked first; if it no longer matches the
// period the window was computed from, another pass committed in between and nothing is written.
func (s *pgStore) CommitWindow(ctx context.Context, input CommitWindowInput) ([]domain.Assignment, error) {
	var changed []domain.Assignment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockAndCheckPeriod(tx, input); err != nil {
			return err
		}

		if input.ResetState {
			if err := tx.Where("workspace_id = ? AND computed_property_type = ? AND computed_property_id = ?",
				input.Key.WorkspaceID, string(input.Key.Type), input.Key.ID).
				Delete(&schema.ComputedPropertyState{}).Error; err != nil {
				return fmt.Errorf("failed to reset raw state: %w", err)
			}
		}

		if err := upsertRawStates(tx, input); err != nil {
			return err
		}

		var err error
		changed, err = upsertAssignments(tx, input)
		if err != nil {
			return err
		}

		if err := upsertMirrors(tx, input.Key, changed, input.RecomputedAt); err != nil {
			return err
		}

		if err := upsertNodeStates(tx, input); err != nil {
			return err
		}

		if err := upsertStateIndex(tx, input); err != nil {
			return err
		}

		period := schema.ComputedPropertyPeriod{
			WorkspaceID:          input.Key.WorkspaceID,
			ComputedPropertyType: string(input.Key.Type),
			ComputedPropertyID:   input.Key.ID,
			Version:              input.Version,
			WindowEnd:            input.WindowEnd,
			LastRecomputedAt:     input.RecomputedAt,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "workspace_id"},
				{Name: "computed_property_type"},
				{Name: "computed_property_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"version", "window_end", "last_recomputed_at"}),
		}).Create(&period).Error; err != nil {
			return fmt.Errorf("failed to commit period: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return changed, nil
}

func lockAndCheckPeriod(tx *gorm.DB, input CommitWindowInput) error {
	var current schema.ComputedPropertyPeriod
	err := periodScope(tx.Clauses(clause.Locking{Strength: "UPDATE"}), input.Key).First(&current).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if input.Expected != nil {
			return fmt.Errorf("%w: %s period disappeared", domain.ErrWatermarkConflict, input.Key)
		}
		// Two first commits race on the insert; the loser must not overwrite the winner.
		placeholder := schema.ComputedPropertyPeriod{
			WorkspaceID:          input.Key.WorkspaceID,
			ComputedPropertyType: string(input.Key.Type),
			ComputedPropertyID:   input.Key.ID,
			Version:              input.Version,
			WindowEnd:            input.WindowEnd,
			LastRecomputedAt:     input.RecomputedAt,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&placeholder)
		if res.Error != nil {
			return fmt.Errorf("failed to create period: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", domain.ErrWatermarkConflict, input.Key)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to lock period: %w", err)
	}

	if input.Expected == nil ||
		current.Version != input.Expected.Version ||
		!current.WindowEnd.Equal(input.Expected.WindowEnd) {
		return fmt.Errorf("%w: %s", domain.ErrWatermarkConflict, input.Key)
	}
	if current.Version == input.Version && input.WindowEnd.Before(current.WindowEnd) {
		return fmt.Errorf("%w: %s from %s to %s", domain.ErrWatermarkRegression, input.Key,
			current.WindowEnd.Format(time.RFC3339Nano), input.WindowEnd.Format(time.RFC3339Nano))
	}
	return nil
}

func upsertRawStates(tx *gorm.DB, input CommitWindowInput) error {
	rows := make([]schema.ComputedPropertyState, 0, len(input.RawStates))
	for _, st := range input.RawStates {
		row := schema.ComputedPropertyState{
			WorkspaceID:          input.Key.WorkspaceID,
			ComputedPropertyType: string(input.Key.Type),
			ComputedPropertyID:   input.Key.ID,
			StateID:              st.StateID,
			UserID:               st.UserID,
			Version:              input.Version,
			Value:                jsonOrNil(st.Value),
			LastEventTime:        st.LastEventTime,
			LastEventSeq:         st.LastEventSeq,
			EventCount:           st.EventCount,
			UpdatedAt:            input.RecomputedAt,
		}
		if st.EventTimes != nil {
			raw, err := json.Marshal(st.EventTimes)
			if err != nil {
				return fmt.Errorf("failed to encode event times: %w", err)
			}
			row.EventTimes = datatypes.JSON(raw)
		}
		rows = append(rows, row)
	}

	return inBatches(len(rows), 12, func(start, end int) error {
		batch := rows[start:end]
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "workspace_id"},
				{Name: "computed_property_type"},
				{Name: "computed_property_id"},
				{Name: "state_id"},
				{Name: "user_id"},
			},
			// last write wins by event time, never by arrival
			Where: clause.Where{Exprs: []clause.Expression{clause.Expr{
				SQL: "(excluded.last_event_time, excluded.last_event_seq) >= (computed_property_state.last_event_time, computed_property_state.last_event_seq)",
			}}},
			DoUpdates: clause.AssignmentColumns([]string{
				"version", "value", "last_event_time", "last_event_seq", "event_count", "event_times", "updated_at",
			}),
		}).Create(&batch).Error
		if err != nil {
			return fmt.Errorf("failed to upsert raw state: %w", err)
		}
		return nil
	})
}

// upsertAssignments re-reads the stored values under the period lock and writes only real changes
func upsertAssignments(tx *gorm.DB, input CommitWindowInput) ([]domain.Assignment, error) {
	if len(input.Assignments) == 0 {
		return nil, nil
	}

	userIDs := make([]string, 0, len(input.Assignments))
	for _, a := range input.Assignments {
		userIDs = append(userIDs, a.UserID)
	}

	existing := map[string]schema.ComputedPropertyAssignment{}
	err := inBatches(len(userIDs), 1, func(start, end int) error {
		var rows []schema.ComputedPropertyAssignment
		if err := tx.Where("workspace_id = ? AND computed_property_type = ? AND computed_property_id = ? AND user_id IN ?",
			input.Key.WorkspaceID, string(input.Key.Type), input.Key.ID, userIDs[start:end]).
			Find(&rows).Error; err != nil {
			return fmt.Errorf("failed to read assignments: %w", err)
		}
		for _, row := range rows {
			existing[row.UserID] = row
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var rows []schema.ComputedPropertyAssignment
	for _, write := range input.Assignments {
		row := schema.ComputedPropertyAssignment{
			WorkspaceID:          input.Key.WorkspaceID,
			ComputedPropertyType: string(input.Key.Type),
			ComputedPropertyID:   input.Key.ID,
			UserID:               write.UserID,
			Value:                jsonOrNil(write.Value),
			AssignmentVersion:    1,
			UpdatedAt:            input.RecomputedAt,
		}
		if prev, ok := existing[write.UserID]; ok {
			if domain.ValuesEqual(rawOrNil(prev.Value), write.Value) {
				continue
			}
			row.PreviousValue = prev.Value
			row.AssignmentVersion = prev.AssignmentVersion + 1
		}
		rows = append(rows, row)
	}

	err = inBatches(len(rows), 8, func(start, end int) error {
		batch := rows[start:end]
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "workspace_id"},
				{Name: "computed_property_type"},
				{Name: "computed_property_id"},
				{Name: "user_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"value", "previous_value", "assignment_version", "updated_at"}),
		}).Create(&batch).Error; err != nil {
			return fmt.Errorf("failed to upsert assignments: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	changed := make([]domain.Assignment, 0, len(rows))
	for _, row := range rows {
		changed = append(changed, toDomainAssignment(row))
	}
	return changed, nil
}

// upsertMirrors keeps the resource layer's relational assignment tables in step with resolved state
func upsertMirrors(tx *gorm.DB, key domain.ComputedPropertyKey, changed []domain.Assignment, at time.Time) error {
	if len(changed) == 0 {
		return nil
	}

	switch key.Type {
	case domain.ComputedPropertyTypeSegment:
		rows := make([]schema.SegmentAssignment, 0, len(changed))
		for _, a := range changed {
			rows = append(rows, schema.SegmentAssignment{
				WorkspaceID: a.WorkspaceID,
				UserID:      a.UserID,
				SegmentID:   a.ComputedPropertyID,
				InSegment:   domain.IsTrue(a.Value),
				UpdatedAt:   at,
			})
		}
		return inBatches(len(rows), 5, func(start, end int) error {
			batch := rows[start:end]
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "workspace_id"}, {Name: "user_id"}, {Name: "segment_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"in_segment", "updated_at"}),
			}).Create(&batch).Error; err != nil {
				return fmt.Errorf("failed to upsert segment assignments: %w", err)
			}
			return nil
		})
	case domain.ComputedPropertyTypeUserProperty:
		rows := make([]schema.UserPropertyAssignment, 0, len(changed))
		var cleared []string
		for _, a := range changed {
			if domain.IsNull(a.Value) {
				cleared = append(cleared, a.UserID)
				continue
			}
			rows = append(rows, schema.UserPropertyAssignment{
				WorkspaceID:    a.WorkspaceID,
				UserID:         a.UserID,
				UserPropertyID: a.ComputedPropertyID,
				Value:          string(a.Value),
				UpdatedAt:      at,
			})
		}
		if len(cleared) > 0 {
			if err := tx.Where("workspace_id = ? AND user_property_id = ? AND user_id IN ?", key.WorkspaceID, key.ID, cleared).
				Delete(&schema.UserPropertyAssignment{}).Error; err != nil {
				return fmt.Errorf("failed to delete cleared user property assignments: %w", err)
			}
		}
		return inBatches(len(rows), 5, func(start, end int) error {
			batch := rows[start:end]
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "workspace_id"}, {Name: "user_id"}, {Name: "user_property_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&batch).Error; err != nil {
				return fmt.Errorf("failed to upsert user property assignments: %w", err)
			}
			return nil
		})
	}
	return nil
}

func upsertNodeStates(tx *gorm.DB, input CommitWindowInput) error {
	rows := make([]schema.ResolvedSegmentState, 0, len(input.NodeStates))
	for _, ns := range input.NodeStates {
		rows = append(rows, schema.ResolvedSegmentState{
			WorkspaceID: input.Key.WorkspaceID,
			SegmentID:   input.Key.ID,
			StateID:     ns.StateID,
			UserID:      ns.UserID,
			Value:       ns.Value,
			UpdatedAt:   input.RecomputedAt,
		})
	}

	return inBatches(len(rows), 6, func(start, end int) error {
		batch := rows[start:end]
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "workspace_id"}, {Name: "segment_id"}, {Name: "state_id"}, {Name: "user_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&batch).Error; err != nil {
			return fmt.Errorf("failed to upsert resolved segment state: %w", err)
		}
		return nil
	})
}

func upsertStateIndex(tx *gorm.DB, input CommitWindowInput) error {
	userIDs := make([]string, 0, len(input.RawStates)+len(input.Assignments))
	for _, st := range input.RawStates {
		userIDs = append(userIDs, st.UserID)
	}
	for _, a := range input.Assignments {
		userIDs = append(userIDs, a.UserID)
	}

	seen := map[string]bool{}
	rows := make([]schema.ComputedPropertyStateIndex, 0, len(userIDs))
	for _, userID := range userIDs {
		if seen[userID] {
			continue
		}
		seen[userID] = true
		rows = append(rows, schema.ComputedPropertyStateIndex{
			WorkspaceID:          input.Key.WorkspaceID,
			UserID:               userID,
			ComputedPropertyType: string(input.Key.Type),
			ComputedPropertyID:   input.Key.ID,
			UpdatedAt:            input.RecomputedAt,
		})
	}

	return inBatches(len(rows), 5, func(start, end int) error {
		batch := rows[start:end]
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "workspace_id"}, {Name: "user_id"}, {Name: "computed_property_type"}, {Name: "computed_property_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
		}).Create(&batch).Error; err != nil {
			return fmt.Errorf("failed to upsert state index: %w", err)
		}
		return nil
	})
}

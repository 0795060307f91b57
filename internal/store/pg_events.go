package store

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/store/schema"
)

const defaultEventBatchSize = 5000

func (s *pgStore) eventScope(ctx context.Context, query EventQuery) *gorm.DB {
	tx := s.primary().WithContext(ctx).
		Model(&schema.UserEvent{}).
		Where("workspace_id = ?", query.WorkspaceID).
		Where("processed_at <= ?", query.To)
	if !query.From.IsZero() {
		tx = tx.Where("processed_at > ?", query.From)
	}
	if len(query.Filter.Types) > 0 {
		types := make([]string, 0, len(query.Filter.Types))
		for _, t := range query.Filter.Types {
			types = append(types, string(t))
		}
		tx = tx.Where("event_type IN ?", types)
	}
	if len(query.Filter.Events) > 0 {
		tx = tx.Where("(event_type <> ? OR event IN ?)", string(domain.EventTypeTrack), query.Filter.Events)
	}
	return tx
}

// StreamEvents calls fn with batches of matching events in sequence order.
// Paging is keyed on seq so that batches stay stable while new events arrive.
func (s *pgStore) StreamEvents(ctx context.Context, query EventQuery, batchSize int, fn func([]domain.UserEvent) error) error {
	if batchSize <= 0 {
		batchSize = defaultEventBatchSize
	}

	var lastSeq int64
	for {
		var rows []schema.UserEvent
		err := s.eventScope(ctx, query).
			Where("seq > ?", lastSeq).
			Order("seq ASC").
			Limit(batchSize).
			Find(&rows).Error
		if err != nil {
			return fmt.Errorf("failed to query events: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}

		events := make([]domain.UserEvent, 0, len(rows))
		for _, row := range rows {
			event, err := toDomainEvent(row)
			if err != nil {
				return fmt.Errorf("failed to decode event %d: %w", row.Seq, err)
			}
			events = append(events, event)
		}
		if err := fn(events); err != nil {
			return err
		}

		lastSeq = rows[len(rows)-1].Seq
		if len(rows) < batchSize {
			return nil
		}
	}
}

// QueryEvents returns all matching events ordered by event time then sequence
func (s *pgStore) QueryEvents(ctx context.Context, query EventQuery) ([]domain.UserEvent, error) {
	var events []domain.UserEvent
	err := s.StreamEvents(ctx, query, defaultEventBatchSize, func(batch []domain.UserEvent) error {
		events = append(events, batch...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Before(events[j])
	})
	return events, nil
}

// InsertEvents appends events, ignoring message ids already stored for the workspace
func (s *pgStore) InsertEvents(ctx context.Context, events []domain.UserEvent) error {
	rows := make([]schema.UserEvent, 0, len(events))
	for _, e := range events {
		row, err := toSchemaEvent(e)
		if err != nil {
			return fmt.Errorf("failed to encode event %s: %w", e.MessageID, err)
		}
		rows = append(rows, row)
	}

	return inBatches(len(rows), 10, func(start, end int) error {
		batch := rows[start:end]
		if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "workspace_id"}, {Name: "message_id"}},
			DoNothing: true,
		}).Create(&batch).Error; err != nil {
			return fmt.Errorf("failed to insert events: %w", err)
		}
		return nil
	})
}

// DeleteWorkspaceEvents removes every event of the workspace
func (s *pgStore) DeleteWorkspaceEvents(ctx context.Context, workspaceID string) error {
	return s.DeleteWorkspaceRows(ctx, workspaceID, TableUserEvents)
}

package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/store/schema"
)

// GetComputeProcess returns the lifecycle record of the workspace, nil when absent
func (s *pgStore) GetComputeProcess(ctx context.Context, workspaceID string) (*domain.ComputeProcess, error) {
	var row schema.ComputeProcess
	err := s.primary().WithContext(ctx).Where("workspace_id = ?", workspaceID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get compute process: %w", err)
	}
	process := toDomainProcess(row)
	return &process, nil
}

// SaveComputeProcess creates or replaces the lifecycle record of the workspace
func (s *pgStore) SaveComputeProcess(ctx context.Context, process domain.ComputeProcess) error {
	row := schema.ComputeProcess{
		WorkspaceID: process.WorkspaceID,
		Mode:        string(process.Mode),
		State:       string(process.State),
		WorkflowID:  process.WorkflowID,
		StopReason:  string(process.StopReason),
		UpdatedAt:   process.UpdatedAt,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "workspace_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"mode", "state", "workflow_id", "stop_reason", "updated_at"}),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save compute process: %w", err)
	}
	return nil
}

// ListComputeProcesses returns lifecycle records in the given mode and state
func (s *pgStore) ListComputeProcesses(ctx context.Context, mode domain.ProcessMode, state domain.ProcessState) ([]domain.ComputeProcess, error) {
	var rows []schema.ComputeProcess
	err := s.primary().WithContext(ctx).
		Where("mode = ? AND state = ?", string(mode), string(state)).
		Order("workspace_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list compute processes: %w", err)
	}

	processes := make([]domain.ComputeProcess, 0, len(rows))
	for _, row := range rows {
		processes = append(processes, toDomainProcess(row))
	}
	return processes, nil
}

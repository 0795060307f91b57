package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/store/schema"
)

// GetWorkspace returns the workspace or domain.ErrWorkspaceNotFound
func (s *pgStore) GetWorkspace(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	var w schema.Workspace
	err := s.primary().WithContext(ctx).Where("id = ?", workspaceID).First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrWorkspaceNotFound, workspaceID)
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	workspace := toDomainWorkspace(w)
	return &workspace, nil
}

// ListWorkspaces pages through workspaces ordered by id
func (s *pgStore) ListWorkspaces(ctx context.Context, afterID string, limit int) ([]domain.Workspace, error) {
	var rows []schema.Workspace
	err := s.db.WithContext(ctx).
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list workspaces: %w", err)
	}

	workspaces := make([]domain.Workspace, 0, len(rows))
	for _, row := range rows {
		workspaces = append(workspaces, toDomainWorkspace(row))
	}
	return workspaces, nil
}

// GetSegmentsAndUserProperties returns every definition of the workspace
func (s *pgStore) GetSegmentsAndUserProperties(ctx context.Context, workspaceID string) ([]domain.Segment, []domain.UserProperty, error) {
	var segmentRows []schema.Segment
	if err := s.primary().WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("id ASC").
		Find(&segmentRows).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to get segments: %w", err)
	}

	var propertyRows []schema.UserProperty
	if err := s.primary().WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("id ASC").
		Find(&propertyRows).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to get user properties: %w", err)
	}

	segments := make([]domain.Segment, 0, len(segmentRows))
	for _, row := range segmentRows {
		segments = append(segments, domain.Segment{
			ID:                  row.ID,
			WorkspaceID:         row.WorkspaceID,
			Name:                row.Name,
			Definition:          []byte(row.Definition),
			DefinitionUpdatedAt: row.DefinitionUpdatedAt,
		})
	}

	properties := make([]domain.UserProperty, 0, len(propertyRows))
	for _, row := range propertyRows {
		properties = append(properties, domain.UserProperty{
			ID:                  row.ID,
			WorkspaceID:         row.WorkspaceID,
			Name:                row.Name,
			Definition:          []byte(row.Definition),
			DefinitionUpdatedAt: row.DefinitionUpdatedAt,
		})
	}

	return segments, properties, nil
}

// IsFeatureEnabled reports whether a workspace feature flag is on
func (s *pgStore) IsFeatureEnabled(ctx context.Context, workspaceID string, name string) (bool, error) {
	var feature schema.Feature
	err := s.primary().WithContext(ctx).
		Where("workspace_id = ? AND name = ?", workspaceID, name).
		First(&feature).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get feature %s: %w", name, err)
	}
	return feature.Enabled, nil
}

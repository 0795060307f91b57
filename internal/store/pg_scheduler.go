package store

import (
	"context"
	"fmt"
	"time"

	"github.com/feral-file/ff-computed-properties/internal/domain"
)

type dueWorkspaceRow struct {
	WorkspaceID      string
	LastRecomputedAt *time.Time
}

// FindDueWorkspaces returns workspaces whose latest recompute is older than now - interval.
// Workspaces that never computed anything sort first, then the oldest recompute.
func (s *pgStore) FindDueWorkspaces(ctx context.Context, query DueWorkspacesQuery) ([]domain.DueWorkspace, error) {
	cutoff := query.Now.Add(-query.Interval)

	tx := s.db.WithContext(ctx).
		Table("workspaces AS w").
		Select("w.id AS workspace_id, MAX(p.last_recomputed_at) AS last_recomputed_at").
		Joins("LEFT JOIN computed_property_periods AS p ON p.workspace_id = w.id").
		Where("w.status = ? AND w.type <> ?", string(domain.WorkspaceStatusActive), string(domain.WorkspaceTypeParent))

	if query.GlobalOnly {
		tx = tx.Joins("JOIN features AS f ON f.workspace_id = w.id AND f.name = ? AND f.enabled", domain.FeatureComputePropertiesGlobal).
			Joins("JOIN compute_property_processes AS cp ON cp.workspace_id = w.id AND cp.mode = ? AND cp.state = ?",
				string(domain.ProcessModeGlobal), string(domain.ProcessStateRunning))
	}

	var rows []dueWorkspaceRow
	err := tx.Group("w.id").
		Having("MAX(p.last_recomputed_at) IS NULL OR MAX(p.last_recomputed_at) < ?", cutoff).
		Order("MAX(p.last_recomputed_at) ASC NULLS FIRST, w.id ASC").
		Limit(query.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find due workspaces: %w", err)
	}

	due := make([]domain.DueWorkspace, 0, len(rows))
	for _, row := range rows {
		due = append(due, domain.DueWorkspace{
			WorkspaceID:      row.WorkspaceID,
			LastRecomputedAt: row.LastRecomputedAt,
		})
	}
	return due, nil
}

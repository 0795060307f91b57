package dto

import (
	"time"

	"github.com/feral-file/ff-computed-properties/internal/computation"
	"github.com/feral-file/ff-computed-properties/internal/domain"
)

// StatusResponse acknowledges a command without a resource body
type StatusResponse struct {
	Status string `json:"status"`
}

// ComputeProcessResponse is the compute process record of a workspace
type ComputeProcessResponse struct {
	WorkspaceID string    `json:"workspaceId"`
	Mode        string    `json:"mode"`
	State       string    `json:"state"`
	WorkflowID  string    `json:"workflowId"`
	StopReason  string    `json:"stopReason,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ComputeStateResponse summarizes a manual computation pass
type ComputeStateResponse struct {
	WorkspaceID string `json:"workspaceId"`
	Changes     int    `json:"changes"`
	Emitted     int    `json:"emitted"`
	Partial     bool   `json:"partial"`
	Skipped     int    `json:"skipped"`
	Failed      int    `json:"failed"`
}

// PeriodResponse is the watermark of one computed property
type PeriodResponse struct {
	ComputedPropertyType string    `json:"computedPropertyType"`
	ComputedPropertyID   string    `json:"computedPropertyId"`
	Version              int64     `json:"version"`
	WindowEnd            time.Time `json:"windowEnd"`
	LastRecomputedAt     time.Time `json:"lastRecomputedAt"`
}

// PeriodListResponse lists the watermarks of a workspace
type PeriodListResponse struct {
	WorkspaceID string           `json:"workspaceId"`
	Periods     []PeriodResponse `json:"periods"`
}

// DueWorkspaceResponse is a workspace selected for recomputation
type DueWorkspaceResponse struct {
	WorkspaceID      string     `json:"workspaceId"`
	LastRecomputedAt *time.Time `json:"lastRecomputedAt"`
}

// DueWorkspaceListResponse lists the due workspaces, most stale first
type DueWorkspaceListResponse struct {
	Workspaces []DueWorkspaceResponse `json:"workspaces"`
}

// MapComputeProcessToDTO maps a compute process record
func MapComputeProcessToDTO(p *domain.ComputeProcess) *ComputeProcessResponse {
	if p == nil {
		return nil
	}
	return &ComputeProcessResponse{
		WorkspaceID: p.WorkspaceID,
		Mode:        string(p.Mode),
		State:       string(p.State),
		WorkflowID:  p.WorkflowID,
		StopReason:  string(p.StopReason),
		UpdatedAt:   p.UpdatedAt,
	}
}

// MapPassResultToDTO maps the result of a computation pass
func MapPassResultToDTO(workspaceID string, r *computation.PassResult) *ComputeStateResponse {
	resp := &ComputeStateResponse{WorkspaceID: workspaceID}
	if r == nil {
		return resp
	}
	resp.Changes = r.Changes
	resp.Emitted = r.Emitted
	resp.Partial = r.Partial
	resp.Skipped = r.Skipped
	resp.Failed = r.Failed
	return resp
}

// MapPeriodsToDTO maps the watermarks of a workspace
func MapPeriodsToDTO(workspaceID string, periods []domain.Period) *PeriodListResponse {
	resp := &PeriodListResponse{WorkspaceID: workspaceID, Periods: make([]PeriodResponse, 0, len(periods))}
	for _, p := range periods {
		resp.Periods = append(resp.Periods, PeriodResponse{
			ComputedPropertyType: string(p.ComputedPropertyType),
			ComputedPropertyID:   p.ComputedPropertyID,
			Version:              p.Version,
			WindowEnd:            p.WindowEnd,
			LastRecomputedAt:     p.LastRecomputedAt,
		})
	}
	return resp
}

// MapDueWorkspacesToDTO maps the due workspaces
func MapDueWorkspacesToDTO(due []domain.DueWorkspace) *DueWorkspaceListResponse {
	resp := &DueWorkspaceListResponse{Workspaces: make([]DueWorkspaceResponse, 0, len(due))}
	for _, d := range due {
		resp.Workspaces = append(resp.Workspaces, DueWorkspaceResponse{
			WorkspaceID:      d.WorkspaceID,
			LastRecomputedAt: d.LastRecomputedAt,
		})
	}
	return resp
}

package schema

import "time"

// ComputeProcess represents the compute_property_processes table: lifecycle record per workspace
type ComputeProcess struct {
	WorkspaceID string `gorm:"column:workspace_id;primaryKey;type:text"`
	// Mode is workspace or global
	Mode string `gorm:"column:mode;not null;type:text"`
	// State is NotStarted, Running, Stopped or Terminated
	State      string `gorm:"column:state;not null;type:text"`
	WorkflowID string `gorm:"column:workflow_id;not null;type:text;default:''"`
	// StopReason is operator or paused while State is Stopped, empty otherwise
	StopReason string    `gorm:"column:stop_reason;not null;type:text;default:''"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the ComputeProcess model
func (ComputeProcess) TableName() string {
	return "compute_property_processes"
}

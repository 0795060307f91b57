package schema

import (
	"time"

	"gorm.io/datatypes"
)

// ComputedPropertyPeriod represents the computed_property_periods table: one watermark per computed property
type ComputedPropertyPeriod struct {
	WorkspaceID          string `gorm:"column:workspace_id;primaryKey;type:text"`
	ComputedPropertyType string `gorm:"column:computed_property_type;primaryKey;type:text"`
	ComputedPropertyID   string `gorm:"column:computed_property_id;primaryKey;type:text"`
	// Version is the definition version the watermark belongs to
	Version int64 `gorm:"column:version;not null"`
	// WindowEnd is the processing time up to which events are folded; never decreases
	WindowEnd time.Time `gorm:"column:window_end;not null"`
	// LastRecomputedAt drives due-workspace selection
	LastRecomputedAt time.Time `gorm:"column:last_recomputed_at;not null"`
	CreatedAt        time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the ComputedPropertyPeriod model
func (ComputedPropertyPeriod) TableName() string {
	return "computed_property_periods"
}

// ComputedPropertyState represents the computed_property_state table: raw per-node accumulations
type ComputedPropertyState struct {
	WorkspaceID          string `gorm:"column:workspace_id;primaryKey;type:text"`
	ComputedPropertyType string `gorm:"column:computed_property_type;primaryKey;type:text"`
	ComputedPropertyID   string `gorm:"column:computed_property_id;primaryKey;type:text"`
	// StateID is the definition node the accumulation belongs to
	StateID string `gorm:"column:state_id;primaryKey;type:text"`
	UserID  string `gorm:"column:user_id;primaryKey;type:text"`
	Version int64  `gorm:"column:version;not null"`
	// Value is the last value seen for last-value accumulators
	Value         datatypes.JSON `gorm:"column:value;type:jsonb"`
	LastEventTime time.Time      `gorm:"column:last_event_time;not null"`
	LastEventSeq  int64          `gorm:"column:last_event_seq;not null"`
	EventCount    int64          `gorm:"column:event_count;not null;default:0"`
	// EventTimes holds unix millisecond timestamps retained for rolling windows
	EventTimes datatypes.JSON `gorm:"column:event_times;type:jsonb"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the ComputedPropertyState model
func (ComputedPropertyState) TableName() string {
	return "computed_property_state"
}

// ComputedPropertyAssignment represents the computed_property_assignments table: resolved values
type ComputedPropertyAssignment struct {
	WorkspaceID          string         `gorm:"column:workspace_id;primaryKey;type:text"`
	ComputedPropertyType string         `gorm:"column:computed_property_type;primaryKey;type:text"`
	ComputedPropertyID   string         `gorm:"column:computed_property_id;primaryKey;type:text"`
	UserID               string         `gorm:"column:user_id;primaryKey;type:text"`
	Value                datatypes.JSON `gorm:"column:value;type:jsonb"`
	PreviousValue        datatypes.JSON `gorm:"column:previous_value;type:jsonb"`
	// AssignmentVersion increases on every value change and stamps emitted notifications
	AssignmentVersion int64     `gorm:"column:assignment_version;not null"`
	UpdatedAt         time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the ComputedPropertyAssignment model
func (ComputedPropertyAssignment) TableName() string {
	return "computed_property_assignments"
}

// ProcessedComputedProperty represents the processed_computed_properties table: emitted notification markers
type ProcessedComputedProperty struct {
	WorkspaceID          string         `gorm:"column:workspace_id;primaryKey;type:text"`
	ComputedPropertyType string         `gorm:"column:computed_property_type;primaryKey;type:text"`
	ComputedPropertyID   string         `gorm:"column:computed_property_id;primaryKey;type:text"`
	UserID               string         `gorm:"column:user_id;primaryKey;type:text"`
	Version              int64          `gorm:"column:version;primaryKey"`
	Value                datatypes.JSON `gorm:"column:value;type:jsonb"`
	ProcessedAt          time.Time      `gorm:"column:processed_at;not null;default:now()"`
}

// TableName specifies the table name for the ProcessedComputedProperty model
func (ProcessedComputedProperty) TableName() string {
	return "processed_computed_properties"
}

// ComputedPropertyStateIndex represents the computed_property_state_index table: user scoped lookups
type ComputedPropertyStateIndex struct {
	WorkspaceID          string    `gorm:"column:workspace_id;primaryKey;type:text"`
	UserID               string    `gorm:"column:user_id;primaryKey;type:text"`
	ComputedPropertyType string    `gorm:"column:computed_property_type;primaryKey;type:text"`
	ComputedPropertyID   string    `gorm:"column:computed_property_id;primaryKey;type:text"`
	UpdatedAt            time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the ComputedPropertyStateIndex model
func (ComputedPropertyStateIndex) TableName() string {
	return "computed_property_state_index"
}

// ResolvedSegmentState represents the resolved_segment_state table: per-node truth of a segment
type ResolvedSegmentState struct {
	WorkspaceID string    `gorm:"column:workspace_id;primaryKey;type:text"`
	SegmentID   string    `gorm:"column:segment_id;primaryKey;type:text"`
	StateID     string    `gorm:"column:state_id;primaryKey;type:text"`
	UserID      string    `gorm:"column:user_id;primaryKey;type:text"`
	Value       bool      `gorm:"column:value;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the ResolvedSegmentState model
func (ResolvedSegmentState) TableName() string {
	return "resolved_segment_state"
}

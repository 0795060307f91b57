package schema

import "time"

// SegmentAssignment represents the segment_assignments table read by the resource layer
type SegmentAssignment struct {
	WorkspaceID string    `gorm:"column:workspace_id;primaryKey;type:text"`
	UserID      string    `gorm:"column:user_id;primaryKey;type:text"`
	SegmentID   string    `gorm:"column:segment_id;primaryKey;type:text"`
	InSegment   bool      `gorm:"column:in_segment;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the SegmentAssignment model
func (SegmentAssignment) TableName() string {
	return "segment_assignments"
}

// UserPropertyAssignment represents the user_property_assignments table read by the resource layer
type UserPropertyAssignment struct {
	WorkspaceID    string `gorm:"column:workspace_id;primaryKey;type:text"`
	UserID         string `gorm:"column:user_id;primaryKey;type:text"`
	UserPropertyID string `gorm:"column:user_property_id;primaryKey;type:text"`
	// Value is the JSON text of the resolved value
	Value     string    `gorm:"column:value;not null;type:text"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the UserPropertyAssignment model
func (UserPropertyAssignment) TableName() string {
	return "user_property_assignments"
}

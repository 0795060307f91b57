package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Workspace represents the workspaces table, owned by the resource layer
type Workspace struct {
	// ID is the workspace identifier
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Name is the display name
	Name string `gorm:"column:name;not null;type:text"`
	// Status is one of Active, Paused, Tombstoned
	Status string `gorm:"column:status;not null;type:text;default:Active"`
	// Type is one of Root, Parent, Child
	Type string `gorm:"column:type;not null;type:text;default:Root"`
	// ParentWorkspaceID links a Child workspace to its Parent
	ParentWorkspaceID *string   `gorm:"column:parent_workspace_id;type:text"`
	CreatedAt         time.Time `gorm:"column:created_at;not null;default:now()"`
	UpdatedAt         time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the Workspace model
func (Workspace) TableName() string {
	return "workspaces"
}

// Segment represents the segments table
type Segment struct {
	ID          string `gorm:"column:id;primaryKey;type:text"`
	WorkspaceID string `gorm:"column:workspace_id;not null;type:text;index"`
	Name        string `gorm:"column:name;not null;type:text"`
	// Definition is the JSON encoded node tree
	Definition datatypes.JSON `gorm:"column:definition;not null;type:jsonb"`
	// DefinitionUpdatedAt changes whenever Definition is edited and versions the computation
	DefinitionUpdatedAt time.Time `gorm:"column:definition_updated_at;not null;default:now()"`
	CreatedAt           time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the Segment model
func (Segment) TableName() string {
	return "segments"
}

// UserProperty represents the user_properties table
type UserProperty struct {
	ID                  string         `gorm:"column:id;primaryKey;type:text"`
	WorkspaceID         string         `gorm:"column:workspace_id;not null;type:text;index"`
	Name                string         `gorm:"column:name;not null;type:text"`
	Definition          datatypes.JSON `gorm:"column:definition;not null;type:jsonb"`
	DefinitionUpdatedAt time.Time      `gorm:"column:definition_updated_at;not null;default:now()"`
	CreatedAt           time.Time      `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the UserProperty model
func (UserProperty) TableName() string {
	return "user_properties"
}

// Feature represents the features table: per-workspace feature flags
type Feature struct {
	WorkspaceID string    `gorm:"column:workspace_id;primaryKey;type:text"`
	Name        string    `gorm:"column:name;primaryKey;type:text"`
	Enabled     bool      `gorm:"column:enabled;not null;default:false"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the Feature model
func (Feature) TableName() string {
	return "features"
}

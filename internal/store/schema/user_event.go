package schema

import (
	"time"

	"gorm.io/datatypes"
)

// UserEvent represents the user_events table, the append-only event log
type UserEvent struct {
	// Seq is the monotonic sequence used to order events sharing an event time
	Seq         int64  `gorm:"column:seq;primaryKey;autoIncrement"`
	WorkspaceID string `gorm:"column:workspace_id;not null;type:text;uniqueIndex:idx_user_events_workspace_message,priority:1"`
	// MessageID is the producer supplied id; duplicates within a workspace are dropped
	MessageID   string `gorm:"column:message_id;not null;type:text;uniqueIndex:idx_user_events_workspace_message,priority:2"`
	UserID      string `gorm:"column:user_id;not null;type:text"`
	AnonymousID string `gorm:"column:anonymous_id;not null;type:text;default:''"`
	// EventType is identify or track
	EventType  string         `gorm:"column:event_type;not null;type:text"`
	Event      string         `gorm:"column:event;not null;type:text;default:''"`
	Properties datatypes.JSON `gorm:"column:properties;type:jsonb"`
	Traits     datatypes.JSON `gorm:"column:traits;type:jsonb"`
	EventTime  time.Time      `gorm:"column:event_time;not null"`
	// ProcessedAt is the ingestion time computation windows are taken over
	ProcessedAt time.Time `gorm:"column:processed_at;not null;default:now()"`
}

// TableName specifies the table name for the UserEvent model
func (UserEvent) TableName() string {
	return "user_events"
}

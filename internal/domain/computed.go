package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ComputedPropertyType discriminates segments from user properties
type ComputedPropertyType string

const (
	ComputedPropertyTypeSegment      ComputedPropertyType = "Segment"
	ComputedPropertyTypeUserProperty ComputedPropertyType = "UserProperty"
)

// ComputedPropertyKey identifies one computed property of a workspace
type ComputedPropertyKey struct {
	WorkspaceID string
	Type        ComputedPropertyType
	ID          string
}

func (k ComputedPropertyKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.WorkspaceID, k.Type, k.ID)
}

// Period is the durable watermark of a computed property
type Period struct {
	WorkspaceID          string
	ComputedPropertyType ComputedPropertyType
	ComputedPropertyID   string
	// Version is the definition version the watermark was computed for
	Version int64
	// WindowEnd is the processing time up to which events have been folded
	WindowEnd        time.Time
	LastRecomputedAt time.Time
}

// Key returns the computed property key of the period
func (p Period) Key() ComputedPropertyKey {
	return ComputedPropertyKey{WorkspaceID: p.WorkspaceID, Type: p.ComputedPropertyType, ID: p.ComputedPropertyID}
}

// Assignment is the resolved value of a computed property for one user
type Assignment struct {
	WorkspaceID          string
	UserID               string
	ComputedPropertyType ComputedPropertyType
	ComputedPropertyID   string
	Value                json.RawMessage
	PreviousValue        json.RawMessage
	// Version increases by one every time Value changes
	Version   int64
	UpdatedAt time.Time
}

// Change is a resolved value transition produced by a computation pass
type Change struct {
	WorkspaceID          string
	UserID               string
	ComputedPropertyType ComputedPropertyType
	ComputedPropertyID   string
	OldValue             json.RawMessage
	NewValue             json.RawMessage
	Version              int64
}

// Kind classifies the change for downstream consumers
func (c Change) Kind() ChangeKind {
	if c.ComputedPropertyType == ComputedPropertyTypeUserProperty {
		return ChangeKindUserPropertyUpdated
	}
	if IsTrue(c.NewValue) {
		return ChangeKindSegmentEntered
	}
	return ChangeKindSegmentExited
}

// DedupKey is stable across retries of the same transition
func (c Change) DedupKey() string {
	return fmt.Sprintf("%s:%s:%s:%s:%d", c.WorkspaceID, c.ComputedPropertyType, c.ComputedPropertyID, c.UserID, c.Version)
}

// ChangeFromAssignment builds the change describing the latest transition of an assignment
func ChangeFromAssignment(a Assignment) Change {
	return Change{
		WorkspaceID:          a.WorkspaceID,
		UserID:               a.UserID,
		ComputedPropertyType: a.ComputedPropertyType,
		ComputedPropertyID:   a.ComputedPropertyID,
		OldValue:             a.PreviousValue,
		NewValue:             a.Value,
		Version:              a.Version,
	}
}

// ChangeKind is the downstream notification kind
type ChangeKind string

const (
	ChangeKindSegmentEntered      ChangeKind = "segment_entered"
	ChangeKindSegmentExited       ChangeKind = "segment_exited"
	ChangeKindUserPropertyUpdated ChangeKind = "user_property_updated"
)

// ChangeNotification is the message published for every emitted change
type ChangeNotification struct {
	ID                   string               `json:"id"`
	DedupKey             string               `json:"dedupKey"`
	WorkspaceID          string               `json:"workspaceId"`
	UserID               string               `json:"userId"`
	Kind                 ChangeKind           `json:"kind"`
	ComputedPropertyType ComputedPropertyType `json:"computedPropertyType"`
	ComputedPropertyID   string               `json:"computedPropertyId"`
	Version              int64                `json:"version"`
	Value                json.RawMessage      `json:"value,omitempty"`
	PreviousValue        json.RawMessage      `json:"previousValue,omitempty"`
	OccurredAt           time.Time            `json:"occurredAt"`
}

// NewChangeNotification builds the downstream message of a change
func NewChangeNotification(c Change, id string, occurredAt time.Time) ChangeNotification {
	return ChangeNotification{
		ID:                   id,
		DedupKey:             c.DedupKey(),
		WorkspaceID:          c.WorkspaceID,
		UserID:               c.UserID,
		Kind:                 c.Kind(),
		ComputedPropertyType: c.ComputedPropertyType,
		ComputedPropertyID:   c.ComputedPropertyID,
		Version:              c.Version,
		Value:                c.NewValue,
		PreviousValue:        c.OldValue,
		OccurredAt:           occurredAt,
	}
}

var (
	jsonTrue  = json.RawMessage("true")
	jsonFalse = json.RawMessage("false")
)

// BoolValue encodes a segment membership
func BoolValue(b bool) json.RawMessage {
	if b {
		return jsonTrue
	}
	return jsonFalse
}

// IsTrue reports whether v encodes boolean true
func IsTrue(v json.RawMessage) bool {
	return string(v) == "true"
}

// RawState is the mergeable accumulation of one definition node for one user
type RawState struct {
	UserID  string
	StateID string
	// Value is the last value seen, for last-value accumulators
	Value         json.RawMessage
	LastEventTime time.Time
	LastEventSeq  int64
	EventCount    int64
	// EventTimes holds unix millisecond event times retained for rolling windows
	EventTimes []int64
}

// NewerThan reports whether the state's last event sorts after (eventTime, seq)
func (s RawState) NewerThan(eventTime time.Time, seq int64) bool {
	if !s.LastEventTime.Equal(eventTime) {
		return s.LastEventTime.After(eventTime)
	}
	return s.LastEventSeq > seq
}

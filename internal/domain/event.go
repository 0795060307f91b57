package domain

import (
	"slices"
	"strings"
	"time"
)

// EventType is the kind of user event
type EventType string

const (
	EventTypeIdentify EventType = "identify"
	EventTypeTrack    EventType = "track"
)

// UserEvent is a raw event from the event store
type UserEvent struct {
	// Seq is a monotonic per-store sequence used to break event time ties
	Seq         int64
	WorkspaceID string
	MessageID   string
	UserID      string
	AnonymousID string
	Type        EventType
	Event       string
	Properties  map[string]any
	Traits      map[string]any
	EventTime   time.Time
	// ProcessedAt is when the event store accepted the event; windows are taken over it
	ProcessedAt time.Time
}

// Before orders events by event time, then sequence
func (e UserEvent) Before(o UserEvent) bool {
	if !e.EventTime.Equal(o.EventTime) {
		return e.EventTime.Before(o.EventTime)
	}
	return e.Seq < o.Seq
}

// Lookup resolves a dot separated path in the event payload.
// Identify events are looked up in traits, track events in properties.
func (e UserEvent) Lookup(path string) (any, bool) {
	payload := e.Properties
	if e.Type == EventTypeIdentify {
		payload = e.Traits
	}
	return LookupPath(payload, path)
}

// LookupPath resolves a dot separated path in a decoded JSON object
func LookupPath(payload map[string]any, path string) (any, bool) {
	if payload == nil || path == "" {
		return nil, false
	}

	var current any = payload
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// EventFilter narrows an event store query. Empty fields match everything.
type EventFilter struct {
	Types  []EventType
	Events []string
}

// Matches reports whether e passes the filter
func (f EventFilter) Matches(e UserEvent) bool {
	if len(f.Types) > 0 && !slices.Contains(f.Types, e.Type) {
		return false
	}
	if len(f.Events) > 0 && e.Type == EventTypeTrack && !slices.Contains(f.Events, e.Event) {
		return false
	}
	return true
}

// Merge widens f so that it also matches everything o matches
func (f EventFilter) Merge(o EventFilter) EventFilter {
	// Decided before Types grows: an identify filter gaining "track" still matches no track event
	allTracks := f.matchesAllTracks() || o.matchesAllTracks()

	if len(f.Types) == 0 || len(o.Types) == 0 {
		f.Types = nil
	} else {
		f.Types = slices.Clone(f.Types)
		for _, t := range o.Types {
			if !slices.Contains(f.Types, t) {
				f.Types = append(f.Types, t)
			}
		}
	}

	if allTracks {
		f.Events = nil
	} else {
		f.Events = slices.Clone(f.Events)
		for _, ev := range o.Events {
			if !slices.Contains(f.Events, ev) {
				f.Events = append(f.Events, ev)
			}
		}
	}
	return f
}

func (f EventFilter) matchesAllTracks() bool {
	if len(f.Events) > 0 {
		return false
	}
	return len(f.Types) == 0 || slices.Contains(f.Types, EventTypeTrack)
}

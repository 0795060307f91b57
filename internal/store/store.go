package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/feral-file/ff-computed-properties/internal/domain"
)

// MetadataStore reads the resource layer's workspace and definition tables
type MetadataStore interface {
	// GetWorkspace returns the workspace or domain.ErrWorkspaceNotFound
	GetWorkspace(ctx context.Context, workspaceID string) (*domain.Workspace, error)
	// ListWorkspaces pages through workspaces ordered by id, starting after afterID
	ListWorkspaces(ctx context.Context, afterID string, limit int) ([]domain.Workspace, error)
	// GetSegmentsAndUserProperties returns every definition of the workspace
	GetSegmentsAndUserProperties(ctx context.Context, workspaceID string) ([]domain.Segment, []domain.UserProperty, error)
	// IsFeatureEnabled reports whether a workspace feature flag is on
	IsFeatureEnabled(ctx context.Context, workspaceID string, name string) (bool, error)
}

// EventQuery selects events of a workspace by processing time
type EventQuery struct {
	WorkspaceID string
	// From is exclusive; the zero value means from the beginning
	From time.Time
	// To is inclusive
	To     time.Time
	Filter domain.EventFilter
}

// EventStore reads and maintains the append-only user event log
type EventStore interface {
	// StreamEvents calls fn with batches of matching events in sequence order
	StreamEvents(ctx context.Context, query EventQuery, batchSize int, fn func([]domain.UserEvent) error) error
	// QueryEvents returns all matching events ordered by event time then sequence
	QueryEvents(ctx context.Context, query EventQuery) ([]domain.UserEvent, error)
	// InsertEvents appends events, ignoring message ids already stored for the workspace
	InsertEvents(ctx context.Context, events []domain.UserEvent) error
	// DeleteWorkspaceEvents removes every event of the workspace
	DeleteWorkspaceEvents(ctx context.Context, workspaceID string) error
}

// AssignmentWrite is a resolved value to store for one user
type AssignmentWrite struct {
	UserID string
	Value  json.RawMessage
}

// NodeStateWrite is the resolved truth of one segment node for one user
type NodeStateWrite struct {
	UserID  string
	StateID string
	Value   bool
}

// CommitWindowInput is everything one computed property writes for one window
type CommitWindowInput struct {
	Key     domain.ComputedPropertyKey
	Version int64
	// Expected is the period the window was computed from; nil when there was none
	Expected     *domain.Period
	WindowEnd    time.Time
	RecomputedAt time.Time
	// ResetState drops the raw state of the key before writing, used when the definition version changed
	ResetState  bool
	RawStates   []domain.RawState
	Assignments []AssignmentWrite
	NodeStates  []NodeStateWrite
}

// DueWorkspacesQuery selects workspaces due for recomputation
type DueWorkspacesQuery struct {
	Now      time.Time
	Interval time.Duration
	Limit    int
	// GlobalOnly restricts the result to workspaces with the global computation flag
	// and a running global process record
	GlobalOnly bool
}

// WorkspaceTable names a workspace scoped table that reset operations may clear
type WorkspaceTable string

const (
	TableUserEvents                  WorkspaceTable = "user_events"
	TableComputedPropertyPeriods     WorkspaceTable = "computed_property_periods"
	TableComputedPropertyState       WorkspaceTable = "computed_property_state"
	TableComputedPropertyAssignments WorkspaceTable = "computed_property_assignments"
	TableProcessedComputedProperties WorkspaceTable = "processed_computed_properties"
	TableComputedPropertyStateIndex  WorkspaceTable = "computed_property_state_index"
	TableResolvedSegmentState        WorkspaceTable = "resolved_segment_state"
	TableSegmentAssignments          WorkspaceTable = "segment_assignments"
	TableUserPropertyAssignments     WorkspaceTable = "user_property_assignments"
)

// ComputedStateTables are the engine owned tables cleared by a computation reset
var ComputedStateTables = []WorkspaceTable{
	TableComputedPropertyPeriods,
	TableComputedPropertyState,
	TableComputedPropertyAssignments,
	TableProcessedComputedProperties,
	TableComputedPropertyStateIndex,
	TableResolvedSegmentState,
}

// WorkspaceDataTables are every table cleared by a full workspace data reset
var WorkspaceDataTables = append([]WorkspaceTable{
	TableUserEvents,
	TableSegmentAssignments,
	TableUserPropertyAssignments,
}, ComputedStateTables...)

// StateStore holds the engine owned tables
type StateStore interface {
	// GetPeriod returns the watermark of a computed property, nil when absent
	GetPeriod(ctx context.Context, key domain.ComputedPropertyKey) (*domain.Period, error)
	// GetPeriodsByWorkspace lists every watermark of the workspace
	GetPeriodsByWorkspace(ctx context.Context, workspaceID string) ([]domain.Period, error)
	// GetEarliestPeriod returns the period with the oldest watermark, nil when there is none
	GetEarliestPeriod(ctx context.Context, workspaceID string) (*domain.Period, error)
	// CommitWindow atomically writes state and advances the watermark of one computed property.
	// It returns the assignments whose value changed.
	CommitWindow(ctx context.Context, input CommitWindowInput) ([]domain.Assignment, error)

	// ListRawState returns raw state of a computed property, restricted to userIDs when not nil
	ListRawState(ctx context.Context, key domain.ComputedPropertyKey, userIDs []string) ([]domain.RawState, error)
	// ListAssignments returns resolved state of a computed property, restricted to userIDs when not nil
	ListAssignments(ctx context.Context, key domain.ComputedPropertyKey, userIDs []string) ([]domain.Assignment, error)
	// GetUserAssignments returns every resolved value of a user through the state index
	GetUserAssignments(ctx context.Context, workspaceID string, userID string) ([]domain.Assignment, error)

	// IsProcessed reports whether the change already has a processed marker
	IsProcessed(ctx context.Context, change domain.Change) (bool, error)
	// MarkProcessed writes the processed marker of the change
	MarkProcessed(ctx context.Context, change domain.Change) error
	// ListUnprocessedAssignments returns assignments whose current version has no marker
	ListUnprocessedAssignments(ctx context.Context, workspaceID string, limit int) ([]domain.Assignment, error)

	// FindDueWorkspaces returns workspaces whose latest recompute is older than now - interval, oldest first
	FindDueWorkspaces(ctx context.Context, query DueWorkspacesQuery) ([]domain.DueWorkspace, error)

	// GetComputeProcess returns the lifecycle record of the workspace, nil when absent
	GetComputeProcess(ctx context.Context, workspaceID string) (*domain.ComputeProcess, error)
	// SaveComputeProcess creates or replaces the lifecycle record of the workspace
	SaveComputeProcess(ctx context.Context, process domain.ComputeProcess) error
	// ListComputeProcesses returns lifecycle records in the given mode and state
	ListComputeProcesses(ctx context.Context, mode domain.ProcessMode, state domain.ProcessState) ([]domain.ComputeProcess, error)

	// ResetComputedState clears every engine owned row of the workspace in one transaction
	ResetComputedState(ctx context.Context, workspaceID string) error
	// DeleteWorkspaceRows clears one workspace scoped table
	DeleteWorkspaceRows(ctx context.Context, workspaceID string, table WorkspaceTable) error
	// CountWorkspaceRows counts the rows of one workspace scoped table
	CountWorkspaceRows(ctx context.Context, workspaceID string, table WorkspaceTable) (int64, error)

	// WithComputeLock runs fn while holding the workspace lock shared. Computation passes take it.
	WithComputeLock(ctx context.Context, workspaceID string, fn func(ctx context.Context) error) error
	// WithResetLock runs fn while holding the workspace lock exclusively, after in-flight passes finish
	WithResetLock(ctx context.Context, workspaceID string, fn func(ctx context.Context) error) error
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	MetadataStore
	EventStore
	StateStore
}

package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/feral-file/ff-computed-properties/internal/domain"
	"github.com/feral-file/ff-computed-properties/internal/store/schema"
)

// RunStoreTests runs every store test with a fresh, isolated store per test
func RunStoreTests(t *testing.T, initDB func(t *testing.T) (Store, *gorm.DB)) {
	tests := map[string]func(t *testing.T, store Store, db *gorm.DB){
		"Metadata":            testMetadata,
		"Events":              testEvents,
		"CommitWindow":        testCommitWindow,
		"RawStateLastWrite":   testRawStateLastWriteWins,
		"FindDueWorkspaces":   testFindDueWorkspaces,
		"ProcessedMarkers":    testProcessedMarkers,
		"UserAssignments":     testUserAssignments,
		"ComputeProcesses":    testComputeProcesses,
		"ResetComputedState":  testResetComputedState,
		"DeleteWorkspaceRows": testDeleteWorkspaceRows,
		"WorkspaceLocks":      testWorkspaceLocks,
	}

	for name, fn := range tests {
		t.Run(name, func(t *testing.T) {
			store, db := initDB(t)
			fn(t, store, db)
		})
	}
}

// =============================================================================
// Test Data Builders
// =============================================================================

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func seedWorkspace(t *testing.T, db *gorm.DB, id string, status domain.WorkspaceStatus, typ domain.WorkspaceType) {
	t.Helper()
	require.NoError(t, db.Create(&schema.Workspace{
		ID:     id,
		Name:   "workspace " + id,
		Status: string(status),
		Type:   string(typ),
	}).Error)
}

func seedFeature(t *testing.T, db *gorm.DB, workspaceID, name string, enabled bool) {
	t.Helper()
	require.NoError(t, db.Create(&schema.Feature{WorkspaceID: workspaceID, Name: name, Enabled: enabled}).Error)
}

func seedPeriod(t *testing.T, db *gorm.DB, workspaceID, propertyID string, recomputedAt time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&schema.ComputedPropertyPeriod{
		WorkspaceID:          workspaceID,
		ComputedPropertyType: string(domain.ComputedPropertyTypeSegment),
		ComputedPropertyID:   propertyID,
		Version:              1,
		WindowEnd:            recomputedAt,
		LastRecomputedAt:     recomputedAt,
	}).Error)
}

func segmentKey(workspaceID, id string) domain.ComputedPropertyKey {
	return domain.ComputedPropertyKey{WorkspaceID: workspaceID, Type: domain.ComputedPropertyTypeSegment, ID: id}
}

func trackEvent(workspaceID, messageID, userID, event string, eventTime, processedAt time.Time) domain.UserEvent {
	return domain.UserEvent{
		WorkspaceID: workspaceID,
		MessageID:   messageID,
		UserID:      userID,
		Type:        domain.EventTypeTrack,
		Event:       event,
		Properties:  map[string]any{"plan": "pro"},
		EventTime:   eventTime,
		ProcessedAt: processedAt,
	}
}

// =============================================================================
// Test: Metadata
// =============================================================================

func testMetadata(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()
	seedWorkspace(t, db, "ws-a", domain.WorkspaceStatusActive, domain.WorkspaceTypeRoot)
	seedWorkspace(t, db, "ws-b", domain.WorkspaceStatusPaused, domain.WorkspaceTypeChild)
	seedFeature(t, db, "ws-a", domain.FeatureComputePropertiesGlobal, true)

	require.NoError(t, db.Create(&schema.Segment{
		ID:          "seg-1",
		WorkspaceID: "ws-a",
		Name:        "NYC",
		Definition:  datatypes.JSON(`{"entryNode":{"id":"1","type":"Trait","path":"city","operator":{"type":"Equals","value":"NYC"}}}`),
	}).Error)
	require.NoError(t, db.Create(&schema.UserProperty{
		ID:          "up-1",
		WorkspaceID: "ws-a",
		Name:        "email",
		Definition:  datatypes.JSON(`{"type":"Trait","path":"email"}`),
	}).Error)

	t.Run("get workspace", func(t *testing.T) {
		w, err := store.GetWorkspace(ctx, "ws-b")
		require.NoError(t, err)
		assert.Equal(t, domain.WorkspaceStatusPaused, w.Status)
		assert.Equal(t, domain.WorkspaceTypeChild, w.Type)
		assert.False(t, w.CanCompute())
	})

	t.Run("unknown workspace is a typed error", func(t *testing.T) {
		_, err := store.GetWorkspace(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrWorkspaceNotFound)
	})

	t.Run("list workspaces pages by id", func(t *testing.T) {
		page, err := store.ListWorkspaces(ctx, "", 1)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "ws-a", page[0].ID)

		page, err = store.ListWorkspaces(ctx, "ws-a", 10)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "ws-b", page[0].ID)
	})

	t.Run("definitions", func(t *testing.T) {
		segments, properties, err := store.GetSegmentsAndUserProperties(ctx, "ws-a")
		require.NoError(t, err)
		require.Len(t, segments, 1)
		require.Len(t, properties, 1)

		def, err := segments[0].ParseDefinition()
		require.NoError(t, err)
		assert.Equal(t, domain.SegmentNodeTypeTrait, def.EntryNode.Kind.NodeType())

		upDef, err := properties[0].ParseDefinition()
		require.NoError(t, err)
		assert.Equal(t, domain.TraitProperty{Path: "email"}, upDef.Kind)
	})

	t.Run("feature flags", func(t *testing.T) {
		on, err := store.IsFeatureEnabled(ctx, "ws-a", domain.FeatureComputePropertiesGlobal)
		require.NoError(t, err)
		assert.True(t, on)

		on, err = store.IsFeatureEnabled(ctx, "ws-b", domain.FeatureComputePropertiesGlobal)
		require.NoError(t, err)
		assert.False(t, on)
	})
}

// =============================================================================
// Test: Events
// =============================================================================

func testEvents(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()

	events := []domain.UserEvent{
		trackEvent("ws-e", "m1", "u1", "Purchase", baseTime.Add(2*time.Minute), baseTime.Add(1*time.Minute)),
		trackEvent("ws-e", "m2", "u1", "Purchase", baseTime.Add(1*time.Minute), baseTime.Add(2*time.Minute)),
		trackEvent("ws-e", "m3", "u2", "Signup", baseTime.Add(3*time.Minute), baseTime.Add(3*time.Minute)),
		{
			WorkspaceID: "ws-e",
			MessageID:   "m4",
			UserID:      "u2",
			Type:        domain.EventTypeIdentify,
			Traits:      map[string]any{"city": "NYC"},
			EventTime:   baseTime.Add(4 * time.Minute),
			ProcessedAt: baseTime.Add(4 * time.Minute),
		},
		trackEvent("ws-other", "m1", "u9", "Purchase", baseTime, baseTime),
	}
	require.NoError(t, store.InsertEvents(ctx, events))

	t.Run("duplicate message ids are dropped", func(t *testing.T) {
		require.NoError(t, store.InsertEvents(ctx, events[:1]))
		count, err := store.CountWorkspaceRows(ctx, "ws-e", TableUserEvents)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})

	t.Run("window is exclusive below and inclusive above", func(t *testing.T) {
		got, err := store.QueryEvents(ctx, EventQuery{
			WorkspaceID: "ws-e",
			From:        baseTime.Add(1 * time.Minute),
			To:          baseTime.Add(3 * time.Minute),
		})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "m2", got[0].MessageID)
		assert.Equal(t, "m3", got[1].MessageID)
	})

	t.Run("ordered by event time", func(t *testing.T) {
		got, err := store.QueryEvents(ctx, EventQuery{WorkspaceID: "ws-e", To: baseTime.Add(time.Hour)})
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, []string{"m2", "m1", "m3", "m4"}, []string{got[0].MessageID, got[1].MessageID, got[2].MessageID, got[3].MessageID})
		assert.Equal(t, "NYC", got[3].Traits["city"])
	})

	t.Run("filter by type and event name", func(t *testing.T) {
		got, err := store.QueryEvents(ctx, EventQuery{
			WorkspaceID: "ws-e",
			To:          baseTime.Add(time.Hour),
			Filter:      domain.EventFilter{Types: []domain.EventType{domain.EventTypeTrack}, Events: []string{"Signup"}},
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "m3", got[0].MessageID)

		got, err = store.QueryEvents(ctx, EventQuery{
			WorkspaceID: "ws-e",
			To:          baseTime.Add(time.Hour),
			Filter:      domain.EventFilter{Events: []string{"Signup"}},
		})
		require.NoError(t, err)
		assert.Len(t, got, 2, "identify events are not narrowed by event name")
	})

	t.Run("stream in small batches", func(t *testing.T) {
		var batches int
		var total int
		err := store.StreamEvents(ctx, EventQuery{WorkspaceID: "ws-e", To: baseTime.Add(time.Hour)}, 3, func(batch []domain.UserEvent) error {
			batches++
			total += len(batch)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, batches)
		assert.Equal(t, 4, total)
	})
}

// =============================================================================
// Test: CommitWindow
// =============================================================================

func testCommitWindow(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()
	key := segmentKey("ws-c", "seg-1")

	first := CommitWindowInput{
		Key:          key,
		Version:      1,
		WindowEnd:    baseTime,
		RecomputedAt: baseTime,
		RawStates: []domain.RawState{
			{UserID: "u1", StateID: "1", Value: json.RawMessage(`"NYC"`), LastEventTime: baseTime, LastEventSeq: 1, EventCount: 1},
		},
		Assignments: []AssignmentWrite{{UserID: "u1", Value: domain.BoolValue(true)}},
		NodeStates:  []NodeStateWrite{{UserID: "u1", StateID: "1", Value: true}},
	}

	changed, err := store.CommitWindow(ctx, first)
	require.NoError(t, err)
	require.Len(t, changed, 1)
	assert.Equal(t, int64(1), changed[0].Version)
	assert.Nil(t, changed[0].PreviousValue)

	period, err := store.GetPeriod(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, period)
	assert.True(t, period.WindowEnd.Equal(baseTime))

	t.Run("stale expected period conflicts", func(t *testing.T) {
		_, err := store.CommitWindow(ctx, CommitWindowInput{
			Key:          key,
			Version:      1,
			WindowEnd:    baseTime.Add(time.Minute),
			RecomputedAt: baseTime.Add(time.Minute),
		})
		assert.ErrorIs(t, err, domain.ErrWatermarkConflict)
	})

	t.Run("watermark never moves backwards", func(t *testing.T) {
		_, err := store.CommitWindow(ctx, CommitWindowInput{
			Key:          key,
			Version:      1,
			Expected:     period,
			WindowEnd:    baseTime.Add(-time.Minute),
			RecomputedAt: baseTime.Add(time.Minute),
		})
		assert.ErrorIs(t, err, domain.ErrWatermarkRegression)
	})

	t.Run("unchanged values are not written", func(t *testing.T) {
		changed, err := store.CommitWindow(ctx, CommitWindowInput{
			Key:          key,
			Version:      1,
			Expected:     period,
			WindowEnd:    baseTime.Add(time.Minute),
			RecomputedAt: baseTime.Add(time.Minute),
			Assignments:  []AssignmentWrite{{UserID: "u1", Value: domain.BoolValue(true)}},
		})
		require.NoError(t, err)
		assert.Empty(t, changed)

		assignments, err := store.ListAssignments(ctx, key, nil)
		require.NoError(t, err)
		require.Len(t, assignments, 1)
		assert.Equal(t, int64(1), assignments[0].Version)
		assert.True(t, assignments[0].UpdatedAt.Equal(baseTime))
	})

	t.Run("changed values bump the version and keep the previous value", func(t *testing.T) {
		current, err := store.GetPeriod(ctx, key)
		require.NoError(t, err)

		changed, err := store.CommitWindow(ctx, CommitWindowInput{
			Key:          key,
			Version:      1,
			Expected:     current,
			WindowEnd:    baseTime.Add(2 * time.Minute),
			RecomputedAt: baseTime.Add(2 * time.Minute),
			Assignments:  []AssignmentWrite{{UserID: "u1", Value: domain.BoolValue(false)}},
		})
		require.NoError(t, err)
		require.Len(t, changed, 1)
		assert.Equal(t, int64(2), changed[0].Version)
		assert.JSONEq(t, "true", string(changed[0].PreviousValue))
		assert.Equal(t, domain.ChangeKindSegmentExited, domain.ChangeFromAssignment(changed[0]).Kind())

		var mirror schema.SegmentAssignment
		require.NoError(t, db.Where("workspace_id = ? AND user_id = ? AND segment_id = ?", "ws-c", "u1", "seg-1").First(&mirror).Error)
		assert.False(t, mirror.InSegment)
	})

	t.Run("version change resets raw state", func(t *testing.T) {
		current, err := store.GetPeriod(ctx, key)
		require.NoError(t, err)

		_, err = store.CommitWindow(ctx, CommitWindowInput{
			Key:          key,
			Version:      2,
			Expected:     current,
			WindowEnd:    baseTime.Add(3 * time.Minute),
			RecomputedAt: baseTime.Add(3 * time.Minute),
			ResetState:   true,
		})
		require.NoError(t, err)

		states, err := store.ListRawState(ctx, key, nil)
		require.NoError(t, err)
		assert.Empty(t, states)

		period, err := store.GetPeriod(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, int64(2), period.Version)
	})
}

func testRawStateLastWriteWins(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()
	key := segmentKey("ws-r", "seg-1")

	newer := domain.RawState{UserID: "u1", StateID: "1", Value: json.RawMessage(`"LA"`), LastEventTime: baseTime.Add(time.Minute), LastEventSeq: 5}
	older := domain.RawState{UserID: "u1", StateID: "1", Value: json.RawMessage(`"NYC"`), LastEventTime: baseTime, LastEventSeq: 9}

	_, err := store.CommitWindow(ctx, CommitWindowInput{
		Key: key, Version: 1, WindowEnd: baseTime, RecomputedAt: baseTime,
		RawStates: []domain.RawState{newer},
	})
	require.NoError(t, err)

	period, err := store.GetPeriod(ctx, key)
	require.NoError(t, err)

	_, err = store.CommitWindow(ctx, CommitWindowInput{
		Key: key, Version: 1, Expected: period, WindowEnd: baseTime.Add(time.Minute), RecomputedAt: baseTime.Add(time.Minute),
		RawStates: []domain.RawState{older},
	})
	require.NoError(t, err)

	states, err := store.ListRawState(ctx, key, []string{"u1"})
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.JSONEq(t, `"LA"`, string(states[0].Value))
	assert.Equal(t, int64(5), states[0].LastEventSeq)
}

// =============================================================================
// Test: FindDueWorkspaces
// =============================================================================

func testFindDueWorkspaces(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()
	now := baseTime

	seedWorkspace(t, db, "ws-10m", domain.WorkspaceStatusActive, domain.WorkspaceTypeRoot)
	seedWorkspace(t, db, "ws-2m", domain.WorkspaceStatusActive, domain.WorkspaceTypeChild)
	seedWorkspace(t, db, "ws-1h", domain.WorkspaceStatusActive, domain.WorkspaceTypeRoot)
	seedWorkspace(t, db, "ws-paused", domain.WorkspaceStatusPaused, domain.WorkspaceTypeRoot)
	seedWorkspace(t, db, "ws-tomb", domain.WorkspaceStatusTombstoned, domain.WorkspaceTypeRoot)
	seedWorkspace(t, db, "ws-parent", domain.WorkspaceStatusActive, domain.WorkspaceTypeParent)

	seedPeriod(t, db, "ws-10m", "a", now.Add(-10*time.Minute))
	seedPeriod(t, db, "ws-10m", "b", now.Add(-30*time.Minute))
	seedPeriod(t, db, "ws-2m", "a", now.Add(-2*time.Minute))
	seedPeriod(t, db, "ws-1h", "a", now.Add(-time.Hour))
	seedPeriod(t, db, "ws-paused", "a", now.Add(-2*time.Hour))
	seedPeriod(t, db, "ws-tomb", "a", now.Add(-2*time.Hour))
	seedPeriod(t, db, "ws-parent", "a", now.Add(-2*time.Hour))

	t.Run("oldest first within limit", func(t *testing.T) {
		due, err := store.FindDueWorkspaces(ctx, DueWorkspacesQuery{Now: now, Interval: 5 * time.Minute, Limit: 2})
		require.NoError(t, err)
		require.Len(t, due, 2)
		assert.Equal(t, "ws-1h", due[0].WorkspaceID)
		assert.Equal(t, "ws-10m", due[1].WorkspaceID)
		require.NotNil(t, due[1].LastRecomputedAt)
		assert.True(t, due[1].LastRecomputedAt.Equal(now.Add(-10*time.Minute)), "latest period of the workspace counts")
	})

	t.Run("never computed workspaces come first", func(t *testing.T) {
		seedWorkspace(t, db, "ws-new", domain.WorkspaceStatusActive, domain.WorkspaceTypeRoot)

		due, err := store.FindDueWorkspaces(ctx, DueWorkspacesQuery{Now: now, Interval: 5 * time.Minute, Limit: 10})
		require.NoError(t, err)
		ids := make([]string, 0, len(due))
		for _, d := range due {
			ids = append(ids, d.WorkspaceID)
		}
		assert.Equal(t, []string{"ws-new", "ws-1h", "ws-10m"}, ids)
		assert.Nil(t, due[0].LastRecomputedAt)
	})

	t.Run("global only", func(t *testing.T) {
		seedFeature(t, db, "ws-10m", domain.FeatureComputePropertiesGlobal, true)
		seedFeature(t, db, "ws-1h", domain.FeatureComputePropertiesGlobal, false)
		seedWorkspace(t, db, "ws-stopped", domain.WorkspaceStatusActive, domain.WorkspaceTypeRoot)
		seedFeature(t, db, "ws-stopped", domain.FeatureComputePropertiesGlobal, true)
		seedWorkspace(t, db, "ws-unstarted", domain.WorkspaceStatusActive, domain.WorkspaceTypeRoot)
		seedFeature(t, db, "ws-unstarted", domain.FeatureComputePropertiesGlobal, true)

		require.NoError(t, store.SaveComputeProcess(ctx, domain.ComputeProcess{
			WorkspaceID: "ws-10m", Mode: domain.ProcessModeGlobal, State: domain.ProcessStateRunning, UpdatedAt: now,
		}))
		require.NoError(t, store.SaveComputeProcess(ctx, domain.ComputeProcess{
			WorkspaceID: "ws-stopped", Mode: domain.ProcessModeGlobal, State: domain.ProcessStateStopped,
			StopReason: domain.StopReasonOperator, UpdatedAt: now,
		}))

		due, err := store.FindDueWorkspaces(ctx, DueWorkspacesQuery{Now: now, Interval: 5 * time.Minute, Limit: 10, GlobalOnly: true})
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, "ws-10m", due[0].WorkspaceID)
	})
}

// =============================================================================
// Test: Processed markers
// =============================================================================

func testProcessedMarkers(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()
	key := segmentKey("ws-p", "seg-1")

	changed, err := store.CommitWindow(ctx, CommitWindowInput{
		Key: key, Version: 1, WindowEnd: baseTime, RecomputedAt: baseTime,
		Assignments: []AssignmentWrite{
			{UserID: "u1", Value: domain.BoolValue(true)},
			{UserID: "u2", Value: domain.BoolValue(true)},
		},
	})
	require.NoError(t, err)
	require.Len(t, changed, 2)

	pending, err := store.ListUnprocessedAssignments(ctx, "ws-p", 10)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	change := domain.ChangeFromAssignment(changed[0])
	processed, err := store.IsProcessed(ctx, change)
	require.NoError(t, err)
	assert.False(t, processed)

	require.NoError(t, store.MarkProcessed(ctx, change))
	require.NoError(t, store.MarkProcessed(ctx, change), "marking twice is a no-op")

	processed, err = store.IsProcessed(ctx, change)
	require.NoError(t, err)
	assert.True(t, processed)

	pending, err = store.ListUnprocessedAssignments(ctx, "ws-p", 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, changed[1].UserID, pending[0].UserID)
}

func testUserAssignments(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()

	_, err := store.CommitWindow(ctx, CommitWindowInput{
		Key: segmentKey("ws-u", "seg-1"), Version: 1, WindowEnd: baseTime, RecomputedAt: baseTime,
		Assignments: []AssignmentWrite{{UserID: "u1", Value: domain.BoolValue(true)}},
	})
	require.NoError(t, err)
	_, err = store.CommitWindow(ctx, CommitWindowInput{
		Key:     domain.ComputedPropertyKey{WorkspaceID: "ws-u", Type: domain.ComputedPropertyTypeUserProperty, ID: "up-1"},
		Version: 1, WindowEnd: baseTime, RecomputedAt: baseTime,
		Assignments: []AssignmentWrite{{UserID: "u1", Value: json.RawMessage(`"a@b.c"`)}},
	})
	require.NoError(t, err)

	assignments, err := store.GetUserAssignments(ctx, "ws-u", "u1")
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	assert.Equal(t, domain.ComputedPropertyTypeSegment, assignments[0].ComputedPropertyType)
	assert.Equal(t, domain.ComputedPropertyTypeUserProperty, assignments[1].ComputedPropertyType)

	var mirror schema.UserPropertyAssignment
	require.NoError(t, db.Where("workspace_id = ? AND user_property_id = ?", "ws-u", "up-1").First(&mirror).Error)
	assert.Equal(t, `"a@b.c"`, mirror.Value)
}

func testComputeProcesses(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()

	process, err := store.GetComputeProcess(ctx, "ws-l")
	require.NoError(t, err)
	assert.Nil(t, process)

	require.NoError(t, store.SaveComputeProcess(ctx, domain.ComputeProcess{
		WorkspaceID: "ws-l",
		Mode:        domain.ProcessModeWorkspace,
		State:       domain.ProcessStateRunning,
		WorkflowID:  "compute-properties-workflow-ws-l",
		UpdatedAt:   baseTime,
	}))
	require.NoError(t, store.SaveComputeProcess(ctx, domain.ComputeProcess{
		WorkspaceID: "ws-l",
		Mode:        domain.ProcessModeWorkspace,
		State:       domain.ProcessStateStopped,
		WorkflowID:  "compute-properties-workflow-ws-l",
		UpdatedAt:   baseTime.Add(time.Minute),
	}))

	process, err = store.GetComputeProcess(ctx, "ws-l")
	require.NoError(t, err)
	require.NotNil(t, process)
	assert.Equal(t, domain.ProcessStateStopped, process.State)

	stopped, err := store.ListComputeProcesses(ctx, domain.ProcessModeWorkspace, domain.ProcessStateStopped)
	require.NoError(t, err)
	assert.Len(t, stopped, 1)
}

// =============================================================================
// Test: Reset
// =============================================================================

func seedComputedState(t *testing.T, store Store, workspaceID string) {
	t.Helper()
	changed, err := store.CommitWindow(context.Background(), CommitWindowInput{
		Key: segmentKey(workspaceID, "seg-1"), Version: 1, WindowEnd: baseTime, RecomputedAt: baseTime,
		RawStates: []domain.RawState{
			{UserID: "u1", StateID: "1", LastEventTime: baseTime, LastEventSeq: 1, EventCount: 1},
		},
		Assignments: []AssignmentWrite{{UserID: "u1", Value: domain.BoolValue(true)}},
		NodeStates:  []NodeStateWrite{{UserID: "u1", StateID: "1", Value: true}},
	})
	require.NoError(t, err)
	require.NoError(t, store.MarkProcessed(context.Background(), domain.ChangeFromAssignment(changed[0])))
	require.NoError(t, store.InsertEvents(context.Background(), []domain.UserEvent{
		trackEvent(workspaceID, "m1", "u1", "Purchase", baseTime, baseTime),
	}))
}

func testResetComputedState(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()
	seedComputedState(t, store, "ws-x")
	seedComputedState(t, store, "ws-y")

	require.NoError(t, store.ResetComputedState(ctx, "ws-x"))

	for _, table := range ComputedStateTables {
		count, err := store.CountWorkspaceRows(ctx, "ws-x", table)
		require.NoError(t, err)
		assert.Zero(t, count, table)

		count, err = store.CountWorkspaceRows(ctx, "ws-y", table)
		require.NoError(t, err)
		assert.NotZero(t, count, "other workspaces keep %s", table)
	}

	events, err := store.CountWorkspaceRows(ctx, "ws-x", TableUserEvents)
	require.NoError(t, err)
	assert.Equal(t, int64(1), events, "a computation reset keeps events")
}

func testDeleteWorkspaceRows(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()
	seedComputedState(t, store, "ws-d")

	for _, table := range WorkspaceDataTables {
		require.NoError(t, store.DeleteWorkspaceRows(ctx, "ws-d", table))
		count, err := store.CountWorkspaceRows(ctx, "ws-d", table)
		require.NoError(t, err)
		assert.Zero(t, count, table)
	}

	err := store.DeleteWorkspaceRows(ctx, "ws-d", WorkspaceTable("workspaces"))
	assert.Error(t, err)
}

// =============================================================================
// Test: Workspace locks
// =============================================================================

func testWorkspaceLocks(t *testing.T, store Store, db *gorm.DB) {
	ctx := context.Background()
	seedComputedState(t, store, "ws-k")

	t.Run("reset lock runs the callback", func(t *testing.T) {
		err := store.WithResetLock(ctx, "ws-k", func(ctx context.Context) error {
			return store.ResetComputedState(ctx, "ws-k")
		})
		require.NoError(t, err)

		count, err := store.CountWorkspaceRows(ctx, "ws-k", TableComputedPropertyAssignments)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("compute lock runs the callback", func(t *testing.T) {
		ran := false
		err := store.WithComputeLock(ctx, "ws-k", func(ctx context.Context) error {
			ran = true
			return nil
		})
		require.NoError(t, err)
		assert.True(t, ran)
	})

	t.Run("callback error is returned", func(t *testing.T) {
		err := store.WithComputeLock(ctx, "ws-k", func(ctx context.Context) error {
			return domain.ErrWatermarkConflict
		})
		assert.ErrorIs(t, err, domain.ErrWatermarkConflict)
	})
}

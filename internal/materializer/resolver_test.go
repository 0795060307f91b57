package materializer

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-computed-properties/internal/domain"
)

var t0 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func track(seq int64, userID, event string, at time.Time, props map[string]any) domain.UserEvent {
	return domain.UserEvent{
		Seq:         seq,
		WorkspaceID: "ws",
		MessageID:   fmt.Sprintf("m-%d", seq),
		UserID:      userID,
		Type:        domain.EventTypeTrack,
		Event:       event,
		Properties:  props,
		EventTime:   at,
		ProcessedAt: at,
	}
}

func identify(seq int64, userID string, at time.Time, traits map[string]any) domain.UserEvent {
	return domain.UserEvent{
		Seq:         seq,
		WorkspaceID: "ws",
		UserID:      userID,
		Type:        domain.EventTypeIdentify,
		Traits:      traits,
		EventTime:   at,
		ProcessedAt: at,
	}
}

func traitLeaf(path string) leaf {
	return leaf{
		stateID: "1",
		filter:  identifyFilter,
		extract: func(e domain.UserEvent) (json.RawMessage, bool) { return pathValue(e, path) },
	}
}

func TestFold_LastWriteWinsByEventTime(t *testing.T) {
	l := traitLeaf("city")

	late := identify(1, "u1", t0.Add(time.Hour), map[string]any{"city": "NYC"})
	early := identify(2, "u1", t0, map[string]any{"city": "LA"})

	// newer event time read first, older one second
	var st domain.RawState
	assert.True(t, fold(&st, l, late))
	assert.True(t, fold(&st, l, early))
	assert.JSONEq(t, `"NYC"`, string(st.Value))
	assert.Equal(t, int64(2), st.EventCount)
	assert.Equal(t, int64(1), st.LastEventSeq)

	// same data in the other order gives the same state
	var other domain.RawState
	fold(&other, l, early)
	fold(&other, l, late)
	assert.Equal(t, st.Value, other.Value)
	assert.Equal(t, st.LastEventTime, other.LastEventTime)
}

func TestFold_EventTimeTieBrokenBySeq(t *testing.T) {
	l := traitLeaf("plan")

	var st domain.RawState
	fold(&st, l, identify(7, "u1", t0, map[string]any{"plan": "pro"}))
	fold(&st, l, identify(3, "u1", t0, map[string]any{"plan": "free"}))
	assert.JSONEq(t, `"pro"`, string(st.Value))
	assert.Equal(t, int64(7), st.LastEventSeq)
}

func TestFold_IgnoresNonMatchingEvents(t *testing.T) {
	l := traitLeaf("city")

	var st domain.RawState
	assert.False(t, fold(&st, l, track(1, "u1", "purchase", t0, map[string]any{"city": "NYC"})))
	assert.False(t, fold(&st, l, identify(2, "u1", t0, map[string]any{"name": "x"})))
	assert.Zero(t, st.EventCount)
}

func TestFold_RetainsEventTimesForWindows(t *testing.T) {
	l := leaf{stateID: "1", filter: trackFilter("purchase"), extract: counted, window: time.Hour}

	var st domain.RawState
	fold(&st, l, track(1, "u1", "purchase", t0, nil))
	fold(&st, l, track(2, "u1", "purchase", t0.Add(time.Minute), nil))
	assert.Equal(t, []int64{t0.UnixMilli(), t0.Add(time.Minute).UnixMilli()}, st.EventTimes)
}

func TestMerge(t *testing.T) {
	stored := domain.RawState{
		UserID:        "u1",
		StateID:       "1",
		Value:         json.RawMessage(`"NYC"`),
		LastEventTime: t0.Add(time.Hour),
		LastEventSeq:  10,
		EventCount:    3,
		EventTimes:    []int64{1, 2},
	}

	t.Run("older delta keeps stored value", func(t *testing.T) {
		delta := domain.RawState{
			UserID:        "u1",
			StateID:       "1",
			Value:         json.RawMessage(`"LA"`),
			LastEventTime: t0,
			LastEventSeq:  20,
			EventCount:    1,
			EventTimes:    []int64{3},
		}
		out := merge(stored, delta)
		assert.JSONEq(t, `"NYC"`, string(out.Value))
		assert.Equal(t, int64(4), out.EventCount)
		assert.Equal(t, []int64{1, 2, 3}, out.EventTimes)
		assert.Equal(t, []int64{1, 2}, stored.EventTimes)
	})

	t.Run("newer delta replaces value", func(t *testing.T) {
		delta := domain.RawState{
			UserID:        "u1",
			StateID:       "1",
			Value:         json.RawMessage(`"SF"`),
			LastEventTime: t0.Add(2 * time.Hour),
			LastEventSeq:  21,
			EventCount:    1,
		}
		out := merge(stored, delta)
		assert.JSONEq(t, `"SF"`, string(out.Value))
		assert.Equal(t, t0.Add(2*time.Hour), out.LastEventTime)
	})

	t.Run("empty stored state takes delta", func(t *testing.T) {
		delta := domain.RawState{UserID: "u2", StateID: "1", Value: json.RawMessage(`1`), LastEventTime: t0, EventCount: 1}
		out := merge(domain.RawState{}, delta)
		assert.Equal(t, delta.Value, out.Value)
		assert.Equal(t, "u2", out.UserID)
	})
}

func TestPruneAndCountEvents(t *testing.T) {
	at := t0.Add(time.Hour)
	st := domain.RawState{
		EventCount: 4,
		EventTimes: []int64{
			t0.Add(90 * time.Minute).UnixMilli(), // after at, not yet counted
			t0.UnixMilli(),                       // exactly at - window, excluded
			t0.Add(time.Millisecond).UnixMilli(), // just inside
			at.UnixMilli(),                       // upper bound, included
		},
	}

	assert.Equal(t, int64(2), countEvents(st, time.Hour, at))
	assert.Equal(t, int64(4), countEvents(st, 0, at))

	prune(&st, time.Hour, at)
	assert.Equal(t, []int64{
		t0.Add(time.Millisecond).UnixMilli(),
		at.UnixMilli(),
		t0.Add(90 * time.Minute).UnixMilli(),
	}, st.EventTimes)

	unbounded := domain.RawState{EventTimes: []int64{1}}
	prune(&unbounded, 0, at)
	assert.Equal(t, []int64{1}, unbounded.EventTimes)
}

func TestEvalTrait(t *testing.T) {
	state := func(raw string) domain.RawState { return domain.RawState{Value: json.RawMessage(raw)} }

	tests := []struct {
		name    string
		op      domain.TraitOperator
		st      domain.RawState
		present bool
		want    bool
	}{
		{"equals match", domain.TraitOperator{Type: domain.TraitOperatorEquals, Value: "NYC"}, state(`"NYC"`), true, true},
		{"equals mismatch", domain.TraitOperator{Type: domain.TraitOperatorEquals, Value: "NYC"}, state(`"LA"`), true, false},
		{"equals numeric normalization", domain.TraitOperator{Type: domain.TraitOperatorEquals, Value: float64(1)}, state(`1.0`), true, true},
		{"not equals", domain.TraitOperator{Type: domain.TraitOperatorNotEquals, Value: "NYC"}, state(`"LA"`), true, true},
		{"not equals on missing trait", domain.TraitOperator{Type: domain.TraitOperatorNotEquals, Value: "NYC"}, domain.RawState{}, false, false},
		{"exists", domain.TraitOperator{Type: domain.TraitOperatorExists}, state(`"x"`), true, true},
		{"exists on null", domain.TraitOperator{Type: domain.TraitOperatorExists}, state(`null`), true, false},
		{"gte", domain.TraitOperator{Type: domain.TraitOperatorGreaterThanOrEqual, Value: float64(18)}, state(`18`), true, true},
		{"gte numeric string", domain.TraitOperator{Type: domain.TraitOperatorGreaterThanOrEqual, Value: float64(18)}, state(`"21"`), true, true},
		{"lt", domain.TraitOperator{Type: domain.TraitOperatorLessThan, Value: float64(18)}, state(`18`), true, false},
		{"lt non numeric", domain.TraitOperator{Type: domain.TraitOperatorLessThan, Value: float64(18)}, state(`"abc"`), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, evalTrait(tt.op, tt.st, tt.present))
		})
	}
}

func TestCompareCount(t *testing.T) {
	assert.True(t, compareCount(2, domain.CountOperatorGTE, 2))
	assert.False(t, compareCount(1, domain.CountOperatorGTE, 2))
	assert.True(t, compareCount(0, domain.CountOperatorLT, 1))
	assert.True(t, compareCount(3, domain.CountOperatorEQ, 3))
	assert.False(t, compareCount(4, domain.CountOperatorEQ, 3))
}

func mustSegment(t *testing.T, def string) (domain.Segment, *domain.SegmentDefinition) {
	t.Helper()
	s := domain.Segment{ID: "seg", WorkspaceID: "ws", Definition: json.RawMessage(def), DefinitionUpdatedAt: t0}
	parsed, err := s.ParseDefinition()
	require.NoError(t, err)
	return s, parsed
}

func TestCompileSegment_AndOfTraitAndWindowedPerformed(t *testing.T) {
	s, def := mustSegment(t, `{
		"entryNode": {"id": "and", "type": "And", "children": ["city", "buys"]},
		"nodes": [
			{"id": "city", "type": "Trait", "path": "city", "operator": {"type": "Equals", "value": "NYC"}},
			{"id": "buys", "type": "Performed", "event": "purchase", "times": 2, "withinSeconds": 3600,
			 "properties": [{"path": "currency", "value": "USD"}]}
		]
	}`)
	p := compileSegment(s, def)

	require.Len(t, p.leaves, 2)
	assert.True(t, p.windowed())
	assert.Equal(t, time.Hour, p.maxWindow())
	assert.ElementsMatch(t, []domain.EventType{domain.EventTypeIdentify, domain.EventTypeTrack}, p.filter.Types)
	assert.Equal(t, []string{"purchase"}, p.filter.Events)
	assert.Equal(t, s.Version(), p.version)

	states := map[string]domain.RawState{}
	for _, e := range []domain.UserEvent{
		identify(1, "u1", t0, map[string]any{"city": "NYC"}),
		track(2, "u1", "purchase", t0.Add(time.Minute), map[string]any{"currency": "USD"}),
		track(3, "u1", "purchase", t0.Add(2*time.Minute), map[string]any{"currency": "EUR"}),
	} {
		for _, l := range p.leaves {
			st := states[l.stateID]
			if fold(&st, l, e) {
				states[l.stateID] = st
			}
		}
	}

	at := t0.Add(5 * time.Minute)
	assert.Equal(t, "false", string(p.resolve("u1", states, at)))
	assert.Equal(t, map[string]bool{"and": false, "city": true, "buys": false}, p.nodeStates("u1", states, at))

	l := p.leaves[1]
	st := states[l.stateID]
	fold(&st, l, track(4, "u1", "purchase", t0.Add(3*time.Minute), map[string]any{"currency": "USD"}))
	states[l.stateID] = st
	assert.Equal(t, "true", string(p.resolve("u1", states, at)))

	// both purchases fall out of the hour
	assert.Equal(t, "false", string(p.resolve("u1", states, t0.Add(2*time.Hour))))
}

func TestCompileSegment_ManualAndLastPerformed(t *testing.T) {
	s, def := mustSegment(t, `{
		"entryNode": {"id": "or", "type": "Or", "children": ["vip", "last"]},
		"nodes": [
			{"id": "vip", "type": "Manual", "userIds": ["u1", "u2", "u1"]},
			{"id": "last", "type": "LastPerformed", "event": "plan_changed", "path": "plan", "value": "pro"}
		]
	}`)
	p := compileSegment(s, def)

	assert.True(t, p.hasManual)
	assert.Equal(t, []string{"u1", "u2"}, p.manualUsers)
	assert.False(t, p.windowed())
	assert.Equal(t, "true", string(p.resolve("u2", nil, t0)))
	assert.Equal(t, "false", string(p.resolve("u3", nil, t0)))

	l := p.leaves[0]
	var st domain.RawState
	fold(&st, l, track(1, "u3", "plan_changed", t0, map[string]any{"plan": "pro"}))
	fold(&st, l, track(2, "u3", "plan_changed", t0.Add(time.Second), map[string]any{}))
	assert.Equal(t, "null", string(st.Value))
	assert.Equal(t, "false", string(p.resolve("u3", map[string]domain.RawState{"last": st}, t0)))
}

func TestCompileSegment_PerformedLessThan(t *testing.T) {
	s, def := mustSegment(t, `{"entryNode": {"id": "1", "type": "Performed", "event": "error", "times": 3, "timesOperator": "LT"}}`)
	p := compileSegment(s, def)

	assert.Equal(t, "true", string(p.resolve("u1", nil, t0)))
	assert.Equal(t, "false", string(p.resolve("u1", map[string]domain.RawState{"1": {EventCount: 3}}, t0)))
}

func TestCompileUserProperty_AnyOf(t *testing.T) {
	up := domain.UserProperty{
		ID:          "up",
		WorkspaceID: "ws",
		Definition: json.RawMessage(`{"type": "AnyOf", "children": [
			{"type": "Trait", "path": "email"},
			{"type": "Performed", "event": "signup", "path": "email"},
			{"type": "PerformedCount", "event": "login", "withinSeconds": 86400}
		]}`),
		DefinitionUpdatedAt: t0,
	}
	def, err := up.ParseDefinition()
	require.NoError(t, err)
	p := compileUserProperty(up, def)

	require.Len(t, p.leaves, 3)
	assert.Nil(t, p.resolve("u1", map[string]domain.RawState{}, t0))

	states := map[string]domain.RawState{
		"1": {Value: json.RawMessage(`"a@b.c"`), EventCount: 1},
	}
	assert.Equal(t, `"a@b.c"`, string(p.resolve("u1", states, t0)))

	states["0"] = domain.RawState{Value: json.RawMessage(`"trait@b.c"`), EventCount: 1}
	assert.Equal(t, `"trait@b.c"`, string(p.resolve("u1", states, t0)))

	count := map[string]domain.RawState{"2": {EventCount: 2, EventTimes: []int64{t0.UnixMilli(), t0.Add(-48 * time.Hour).UnixMilli()}}}
	assert.Equal(t, `1`, string(p.resolve("u1", count, t0)))
}

func TestCompileUserProperty_IDReadsEveryEvent(t *testing.T) {
	up := domain.UserProperty{ID: "id", WorkspaceID: "ws", Definition: json.RawMessage(`{"type": "Id"}`)}
	def, err := up.ParseDefinition()
	require.NoError(t, err)
	p := compileUserProperty(up, def)

	require.NotNil(t, p.filter)
	assert.Empty(t, p.filter.Types)

	var st domain.RawState
	require.True(t, fold(&st, p.leaves[0], track(1, "u9", "anything", t0, nil)))
	assert.Equal(t, `"u9"`, string(p.resolve("u9", map[string]domain.RawState{"0": st}, t0)))
}

package workflows

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v int64) *int64 { return &v }

func ids(items []QueueItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.WorkspaceID)
	}
	return out
}

func TestCompareQueueItems(t *testing.T) {
	tests := []struct {
		name string
		a, b QueueItem
		want int
	}{
		{name: "higher priority first", a: QueueItem{WorkspaceID: "a", Priority: 2}, b: QueueItem{WorkspaceID: "b", Priority: 1}, want: -1},
		{name: "never computed first", a: QueueItem{WorkspaceID: "a", MaxPeriod: ptr(1)}, b: QueueItem{WorkspaceID: "b"}, want: 1},
		{name: "older recompute first", a: QueueItem{WorkspaceID: "a", MaxPeriod: ptr(100)}, b: QueueItem{WorkspaceID: "b", MaxPeriod: ptr(200)}, want: -1},
		{name: "earlier insert first", a: QueueItem{WorkspaceID: "a", InsertedAt: 5}, b: QueueItem{WorkspaceID: "b", InsertedAt: 3}, want: 1},
		{name: "id breaks ties", a: QueueItem{WorkspaceID: "a"}, b: QueueItem{WorkspaceID: "b"}, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compareQueueItems(tt.a, tt.b))
		})
	}
}

func TestWorkspaceQueue_AddAndNext(t *testing.T) {
	q := newWorkspaceQueue(0, nil)

	assert.True(t, q.add(QueueItem{WorkspaceID: "ws-recent", MaxPeriod: ptr(500), InsertedAt: 1}))
	assert.True(t, q.add(QueueItem{WorkspaceID: "ws-stale", MaxPeriod: ptr(100), InsertedAt: 2}))
	assert.True(t, q.add(QueueItem{WorkspaceID: "ws-new", InsertedAt: 3}))
	assert.True(t, q.add(QueueItem{WorkspaceID: "ws-urgent", Priority: 1, MaxPeriod: ptr(900), InsertedAt: 4}))
	assert.False(t, q.add(QueueItem{WorkspaceID: "ws-stale", Priority: 5}), "queued workspaces are deduplicated")
	assert.False(t, q.add(QueueItem{}), "empty id is rejected")

	assert.Equal(t, []string{"ws-urgent", "ws-new", "ws-stale", "ws-recent"}, ids(q.snapshot()))

	item, ok := q.next(nil)
	assert.True(t, ok)
	assert.Equal(t, "ws-urgent", item.WorkspaceID)
	assert.Equal(t, 3, q.len())

	// Dequeued workspaces may be queued again
	assert.True(t, q.add(QueueItem{WorkspaceID: "ws-urgent", InsertedAt: 10}))
}

func TestWorkspaceQueue_Capacity(t *testing.T) {
	q := newWorkspaceQueue(2, []QueueItem{{WorkspaceID: "a"}, {WorkspaceID: "b"}, {WorkspaceID: "c"}})

	assert.Equal(t, 2, q.len())
	assert.False(t, q.add(QueueItem{WorkspaceID: "d"}))

	_, _ = q.next(nil)
	assert.True(t, q.add(QueueItem{WorkspaceID: "d"}))
}

func TestWorkspaceQueue_NextSkipsInFlight(t *testing.T) {
	q := newWorkspaceQueue(0, []QueueItem{{WorkspaceID: "a", InsertedAt: 1}, {WorkspaceID: "b", InsertedAt: 2}})
	inFlight := func(id string) bool { return id == "a" }

	assert.True(t, q.hasNext(inFlight))
	item, ok := q.next(inFlight)
	assert.True(t, ok)
	assert.Equal(t, "b", item.WorkspaceID)

	assert.False(t, q.hasNext(inFlight))
	_, ok = q.next(inFlight)
	assert.False(t, ok)
	assert.Equal(t, []string{"a"}, ids(q.snapshot()))
}

package workflows

import (
	"cmp"
	"slices"
)

// Queue priorities
const (
	PriorityDefault = 0
	// PriorityHigh is used for workspaces with freshly ingested events
	PriorityHigh = 10
)

// QueueItem is a workspace waiting in the global queue
type QueueItem struct {
	WorkspaceID string `json:"workspaceId"`
	// Priority is dispatched highest first
	Priority int `json:"priority"`
	// MaxPeriod is the unix ms of the workspace's latest recompute, nil when it never computed
	MaxPeriod *int64 `json:"maxPeriod,omitempty"`
	// InsertedAt is the workflow time in unix ms when the item was queued
	InsertedAt int64 `json:"insertedAt"`
}

// QueueState is carried across continue-as-new of the queue workflow
type QueueState struct {
	Items          []QueueItem `json:"items"`
	TotalProcessed int         `json:"totalProcessed"`
}

// AddWorkspacesSignal is the payload of SignalAddWorkspaces
type AddWorkspacesSignal struct {
	Workspaces []QueueItem `json:"workspaces"`
}

// compareQueueItems orders the queue: higher priority, then never computed,
// then the longest since the last recompute, then first inserted.
func compareQueueItems(a, b QueueItem) int {
	if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
		return c
	}
	switch {
	case a.MaxPeriod == nil && b.MaxPeriod != nil:
		return -1
	case a.MaxPeriod != nil && b.MaxPeriod == nil:
		return 1
	case a.MaxPeriod != nil && b.MaxPeriod != nil:
		if c := cmp.Compare(*a.MaxPeriod, *b.MaxPeriod); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(a.InsertedAt, b.InsertedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.WorkspaceID, b.WorkspaceID)
}

// workspaceQueue is a sorted priority queue with membership dedup of queued workspaces.
// It is only touched from workflow code and needs no locking.
type workspaceQueue struct {
	items    []QueueItem
	members  map[string]bool
	capacity int
}

func newWorkspaceQueue(capacity int, items []QueueItem) *workspaceQueue {
	q := &workspaceQueue{members: make(map[string]bool), capacity: capacity}
	for _, item := range items {
		q.add(item)
	}
	return q
}

// add queues the item. It returns false for a workspace already queued or when the queue is full.
func (q *workspaceQueue) add(item QueueItem) bool {
	if item.WorkspaceID == "" || q.members[item.WorkspaceID] {
		return false
	}
	if q.capacity > 0 && len(q.items) >= q.capacity {
		return false
	}

	i, _ := slices.BinarySearchFunc(q.items, item, compareQueueItems)
	q.items = slices.Insert(q.items, i, item)
	q.members[item.WorkspaceID] = true
	return true
}

func (q *workspaceQueue) len() int {
	return len(q.items)
}

// next removes and returns the first item for which skip is false
func (q *workspaceQueue) next(skip func(workspaceID string) bool) (QueueItem, bool) {
	for i, item := range q.items {
		if skip != nil && skip(item.WorkspaceID) {
			continue
		}
		q.items = slices.Delete(q.items, i, i+1)
		delete(q.members, item.WorkspaceID)
		return item, true
	}
	return QueueItem{}, false
}

// hasNext reports whether next would return an item
func (q *workspaceQueue) hasNext(skip func(workspaceID string) bool) bool {
	if skip == nil {
		return len(q.items) > 0
	}
	for _, item := range q.items {
		if !skip(item.WorkspaceID) {
			return true
		}
	}
	return false
}

// snapshot returns a copy of the queued items in dispatch order
func (q *workspaceQueue) snapshot() []QueueItem {
	return slices.Clone(q.items)
}

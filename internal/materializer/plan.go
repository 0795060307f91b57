package materializer

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/feral-file/ff-computed-properties/internal/domain"
)

// leaf is one accumulating position of a definition. Every leaf folds events into one raw
// state per user, keyed by stateID.
type leaf struct {
	stateID string
	filter  domain.EventFilter
	// extract returns the value an event contributes, false when the event does not apply
	extract func(e domain.UserEvent) (json.RawMessage, bool)
	// window is the rolling window of counting leaves; event times are retained when set
	window time.Duration
}

// plan is the compiled form of one computed property
type plan struct {
	key     domain.ComputedPropertyKey
	version int64
	leaves  []leaf
	// filter is the union of the leaf filters; nil when no leaf reads events
	filter *domain.EventFilter
	// manualUsers are the members of every manual list of a segment
	manualUsers []string
	hasManual   bool
	// resolve turns the raw states of one user into the resolved value, nil when unresolved
	resolve func(userID string, states map[string]domain.RawState, at time.Time) json.RawMessage
	// nodeStates reports per-node membership of one user, segments only
	nodeStates func(userID string, states map[string]domain.RawState, at time.Time) map[string]bool
}

func (p *plan) windowed() bool {
	return slices.ContainsFunc(p.leaves, func(l leaf) bool { return l.window > 0 })
}

func (p *plan) maxWindow() time.Duration {
	var max time.Duration
	for _, l := range p.leaves {
		if l.window > max {
			max = l.window
		}
	}
	return max
}

func (p *plan) addLeaf(l leaf) {
	p.leaves = append(p.leaves, l)
	if p.filter == nil {
		f := l.filter
		p.filter = &f
		return
	}
	merged := p.filter.Merge(l.filter)
	p.filter = &merged
}

func trackFilter(event string) domain.EventFilter {
	return domain.EventFilter{Types: []domain.EventType{domain.EventTypeTrack}, Events: []string{event}}
}

var identifyFilter = domain.EventFilter{Types: []domain.EventType{domain.EventTypeIdentify}}

// matchesProperties reports whether every filter holds on the event properties
func matchesProperties(e domain.UserEvent, filters []domain.PropertyFilter) bool {
	for _, f := range filters {
		v, ok := domain.LookupPath(e.Properties, f.Path)
		if !ok || !domain.AnyEqual(v, f.Value) {
			return false
		}
	}
	return true
}

func pathValue(e domain.UserEvent, path string) (json.RawMessage, bool) {
	v, ok := e.Lookup(path)
	if !ok {
		return nil, false
	}
	raw, err := domain.CanonicalJSON(v)
	if err != nil {
		return nil, false
	}
	return raw, true
}

func counted(domain.UserEvent) (json.RawMessage, bool) { return nil, true }

// compileSegment builds the plan of a segment. Each non-boolean node is a leaf keyed by its node id.
func compileSegment(s domain.Segment, def *domain.SegmentDefinition) *plan {
	p := &plan{key: s.Key(), version: s.Version()}

	for _, node := range def.Reachable() {
		switch k := node.Kind.(type) {
		case domain.TraitNode:
			path := k.Path
			p.addLeaf(leaf{
				stateID: node.ID,
				filter:  identifyFilter,
				extract: func(e domain.UserEvent) (json.RawMessage, bool) { return pathValue(e, path) },
			})
		case domain.PerformedNode:
			n := k
			p.addLeaf(leaf{
				stateID: node.ID,
				filter:  trackFilter(n.Event),
				extract: func(e domain.UserEvent) (json.RawMessage, bool) {
					if !matchesProperties(e, n.Properties) {
						return nil, false
					}
					return counted(e)
				},
				window: n.Window(),
			})
		case domain.LastPerformedNode:
			path := k.Path
			p.addLeaf(leaf{
				stateID: node.ID,
				filter:  trackFilter(k.Event),
				extract: func(e domain.UserEvent) (json.RawMessage, bool) {
					if v, ok := pathValue(e, path); ok {
						return v, true
					}
					return json.RawMessage("null"), true
				},
			})
		case domain.ManualNode:
			p.hasManual = true
			for _, id := range k.UserIDs {
				if !slices.Contains(p.manualUsers, id) {
					p.manualUsers = append(p.manualUsers, id)
				}
			}
		}
	}

	members := func(userID string, states map[string]domain.RawState, at time.Time) map[string]bool {
		values := map[string]bool{}
		var eval func(n domain.SegmentNode) bool
		eval = func(n domain.SegmentNode) bool {
			if v, ok := values[n.ID]; ok {
				return v
			}
			v := evalNode(n, userID, states, at, func(childID string) bool {
				child, ok := def.Node(childID)
				return ok && eval(child)
			})
			values[n.ID] = v
			return v
		}
		eval(def.EntryNode)
		return values
	}

	p.nodeStates = members
	p.resolve = func(userID string, states map[string]domain.RawState, at time.Time) json.RawMessage {
		return domain.BoolValue(members(userID, states, at)[def.EntryNode.ID])
	}
	return p
}

// compileUserProperty builds the plan of a user property. AnyOf children are leaves in order.
func compileUserProperty(up domain.UserProperty, def *domain.UserPropertyDefinition) *plan {
	p := &plan{key: up.Key(), version: up.Version()}

	leaves := def.Leaves()
	for _, l := range leaves {
		switch k := l.Kind.(type) {
		case domain.IDProperty:
			p.addLeaf(leaf{
				stateID: l.StateID,
				extract: func(e domain.UserEvent) (json.RawMessage, bool) {
					raw, err := domain.CanonicalJSON(e.UserID)
					return raw, err == nil
				},
			})
		case domain.AnonymousIDProperty:
			p.addLeaf(leaf{
				stateID: l.StateID,
				extract: func(e domain.UserEvent) (json.RawMessage, bool) {
					if e.AnonymousID == "" {
						return nil, false
					}
					raw, err := domain.CanonicalJSON(e.AnonymousID)
					return raw, err == nil
				},
			})
		case domain.TraitProperty:
			path := k.Path
			p.addLeaf(leaf{
				stateID: l.StateID,
				filter:  identifyFilter,
				extract: func(e domain.UserEvent) (json.RawMessage, bool) { return pathValue(e, path) },
			})
		case domain.PerformedProperty:
			prop := k
			p.addLeaf(leaf{
				stateID: l.StateID,
				filter:  trackFilter(prop.Event),
				extract: func(e domain.UserEvent) (json.RawMessage, bool) {
					if !matchesProperties(e, prop.Properties) {
						return nil, false
					}
					return pathValue(e, prop.Path)
				},
			})
		case domain.PerformedCountProperty:
			prop := k
			p.addLeaf(leaf{
				stateID: l.StateID,
				filter:  trackFilter(prop.Event),
				extract: func(e domain.UserEvent) (json.RawMessage, bool) {
					if !matchesProperties(e, prop.Properties) {
						return nil, false
					}
					return counted(e)
				},
				window: prop.Window(),
			})
		}
	}

	p.resolve = func(userID string, states map[string]domain.RawState, at time.Time) json.RawMessage {
		for i, l := range leaves {
			st, ok := states[l.StateID]
			if !ok {
				continue
			}
			if _, isCount := l.Kind.(domain.PerformedCountProperty); isCount {
				raw, _ := json.Marshal(countEvents(st, p.leaves[i].window, at))
				return raw
			}
			if len(st.Value) > 0 {
				return st.Value
			}
		}
		return nil
	}
	return p
}

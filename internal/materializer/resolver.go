package materializer

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/feral-file/ff-computed-properties/internal/domain"
)

// fold applies one event to the user's state of a leaf. Values are last write wins on
// (eventTime, seq) so the fold does not depend on the order events are read in.
func fold(st *domain.RawState, l leaf, e domain.UserEvent) bool {
	if !l.filter.Matches(e) {
		return false
	}
	value, ok := l.extract(e)
	if !ok {
		return false
	}

	st.EventCount++
	if l.window > 0 {
		st.EventTimes = append(st.EventTimes, e.EventTime.UnixMilli())
	}
	if st.EventCount == 1 || !st.NewerThan(e.EventTime, e.Seq) {
		st.Value = value
		st.LastEventTime = e.EventTime
		st.LastEventSeq = e.Seq
	}
	return true
}

// merge combines stored state with the delta folded from a new window
func merge(stored, delta domain.RawState) domain.RawState {
	out := stored
	out.UserID = delta.UserID
	out.StateID = delta.StateID
	out.EventCount += delta.EventCount
	if len(delta.EventTimes) > 0 {
		out.EventTimes = append(slices.Clone(stored.EventTimes), delta.EventTimes...)
	}
	if stored.EventCount == 0 || !stored.NewerThan(delta.LastEventTime, delta.LastEventSeq) {
		out.Value = delta.Value
		out.LastEventTime = delta.LastEventTime
		out.LastEventSeq = delta.LastEventSeq
	}
	return out
}

// prune drops retained event times that can no longer fall inside the window at or after at
func prune(st *domain.RawState, window time.Duration, at time.Time) {
	if window <= 0 || len(st.EventTimes) == 0 {
		return
	}
	floor := at.Add(-window).UnixMilli()
	kept := st.EventTimes[:0]
	for _, ts := range st.EventTimes {
		if ts > floor {
			kept = append(kept, ts)
		}
	}
	slices.Sort(kept)
	st.EventTimes = kept
}

// countEvents counts occurrences; with a window only event times in (at - window, at] count
func countEvents(st domain.RawState, window time.Duration, at time.Time) int64 {
	if window <= 0 {
		return st.EventCount
	}
	lower := at.Add(-window).UnixMilli()
	upper := at.UnixMilli()
	var n int64
	for _, ts := range st.EventTimes {
		if ts > lower && ts <= upper {
			n++
		}
	}
	return n
}

func compareCount(n int64, op domain.CountOperator, times int) bool {
	switch op {
	case domain.CountOperatorLT:
		return n < int64(times)
	case domain.CountOperatorEQ:
		return n == int64(times)
	default:
		return n >= int64(times)
	}
}

func decode(raw json.RawMessage) (any, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	return v, true
}

// evalTrait applies a trait operator. A user without the trait matches no operator.
func evalTrait(op domain.TraitOperator, st domain.RawState, present bool) bool {
	if !present {
		return false
	}
	v, ok := decode(st.Value)
	if !ok {
		return false
	}

	switch op.Type {
	case domain.TraitOperatorExists:
		return v != nil
	case domain.TraitOperatorEquals:
		return domain.AnyEqual(v, op.Value)
	case domain.TraitOperatorNotEquals:
		return !domain.AnyEqual(v, op.Value)
	case domain.TraitOperatorGreaterThanOrEqual, domain.TraitOperatorLessThan:
		actual, ok := domain.AsNumber(v)
		if !ok {
			return false
		}
		threshold, ok := domain.AsNumber(op.Value)
		if !ok {
			return false
		}
		if op.Type == domain.TraitOperatorGreaterThanOrEqual {
			return actual >= threshold
		}
		return actual < threshold
	}
	return false
}

// evalNode resolves one segment node for one user
func evalNode(
	n domain.SegmentNode,
	userID string,
	states map[string]domain.RawState,
	at time.Time,
	child func(id string) bool,
) bool {
	st, present := states[n.ID]

	switch k := n.Kind.(type) {
	case domain.TraitNode:
		return evalTrait(k.Operator, st, present)
	case domain.PerformedNode:
		var count int64
		if present {
			count = countEvents(st, k.Window(), at)
		}
		return compareCount(count, k.EffectiveOperator(), k.EffectiveTimes())
	case domain.LastPerformedNode:
		if !present {
			return false
		}
		v, ok := decode(st.Value)
		return ok && domain.AnyEqual(v, k.Value)
	case domain.ManualNode:
		return slices.Contains(k.UserIDs, userID)
	case domain.AndNode:
		for _, id := range k.Children {
			if !child(id) {
				return false
			}
		}
		return true
	case domain.OrNode:
		for _, id := range k.Children {
			if child(id) {
				return true
			}
		}
		return false
	}
	return false
}

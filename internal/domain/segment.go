package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Segment is a workspace segment as stored by the resource layer
type Segment struct {
	ID                  string
	WorkspaceID         string
	Name                string
	Definition          json.RawMessage
	DefinitionUpdatedAt time.Time
}

// Key returns the computed property key of the segment
func (s Segment) Key() ComputedPropertyKey {
	return ComputedPropertyKey{WorkspaceID: s.WorkspaceID, Type: ComputedPropertyTypeSegment, ID: s.ID}
}

// Version is the definition version tracked by periods
func (s Segment) Version() int64 {
	return s.DefinitionUpdatedAt.UnixMilli()
}

// ParseDefinition decodes and validates the segment definition
func (s Segment) ParseDefinition() (*SegmentDefinition, error) {
	var def SegmentDefinition
	if err := json.Unmarshal(s.Definition, &def); err != nil {
		return nil, fmt.Errorf("%w: segment %s: %v", ErrInvalidDefinition, s.ID, err)
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("segment %s: %w", s.ID, err)
	}
	return &def, nil
}

// SegmentNodeType discriminates segment node kinds
type SegmentNodeType string

const (
	SegmentNodeTypeTrait         SegmentNodeType = "Trait"
	SegmentNodeTypePerformed     SegmentNodeType = "Performed"
	SegmentNodeTypeLastPerformed SegmentNodeType = "LastPerformed"
	SegmentNodeTypeManual        SegmentNodeType = "Manual"
	SegmentNodeTypeAnd           SegmentNodeType = "And"
	SegmentNodeTypeOr            SegmentNodeType = "Or"
)

// SegmentNodeKind is implemented by every segment node payload
type SegmentNodeKind interface {
	NodeType() SegmentNodeType
}

// TraitOperatorType is the comparison applied to a trait value
type TraitOperatorType string

const (
	TraitOperatorEquals             TraitOperatorType = "Equals"
	TraitOperatorNotEquals          TraitOperatorType = "NotEquals"
	TraitOperatorExists             TraitOperatorType = "Exists"
	TraitOperatorGreaterThanOrEqual TraitOperatorType = "GreaterThanOrEqual"
	TraitOperatorLessThan           TraitOperatorType = "LessThan"
)

// TraitOperator compares a trait value
type TraitOperator struct {
	Type  TraitOperatorType `json:"type"`
	Value any               `json:"value,omitempty"`
}

// CountOperator compares an event count with a threshold
type CountOperator string

const (
	CountOperatorGTE CountOperator = "GTE"
	CountOperatorLT  CountOperator = "LT"
	CountOperatorEQ  CountOperator = "EQ"
)

// PropertyFilter requires an event property to equal a value
type PropertyFilter struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// TraitNode matches users whose latest trait value satisfies Operator
type TraitNode struct {
	Path     string        `json:"path"`
	Operator TraitOperator `json:"operator"`
}

// PerformedNode matches users who performed Event a number of times, optionally within a rolling window
type PerformedNode struct {
	Event         string           `json:"event"`
	Times         int              `json:"times,omitempty"`
	TimesOperator CountOperator    `json:"timesOperator,omitempty"`
	WithinSeconds int64            `json:"withinSeconds,omitempty"`
	Properties    []PropertyFilter `json:"properties,omitempty"`
}

// LastPerformedNode matches users whose latest Event carried Path equal to Value
type LastPerformedNode struct {
	Event string `json:"event"`
	Path  string `json:"path"`
	Value any    `json:"value"`
}

// ManualNode is a curated membership list
type ManualNode struct {
	UserIDs []string `json:"userIds"`
	Version int64    `json:"version,omitempty"`
}

// AndNode matches when every child matches
type AndNode struct {
	Children []string `json:"children"`
}

// OrNode matches when any child matches
type OrNode struct {
	Children []string `json:"children"`
}

func (TraitNode) NodeType() SegmentNodeType         { return SegmentNodeTypeTrait }
func (PerformedNode) NodeType() SegmentNodeType     { return SegmentNodeTypePerformed }
func (LastPerformedNode) NodeType() SegmentNodeType { return SegmentNodeTypeLastPerformed }
func (ManualNode) NodeType() SegmentNodeType        { return SegmentNodeTypeManual }
func (AndNode) NodeType() SegmentNodeType           { return SegmentNodeTypeAnd }
func (OrNode) NodeType() SegmentNodeType            { return SegmentNodeTypeOr }

// EffectiveTimes returns the count threshold, defaulting to one occurrence
func (n PerformedNode) EffectiveTimes() int {
	if n.Times <= 0 {
		return 1
	}
	return n.Times
}

// EffectiveOperator returns the count operator, defaulting to GTE
func (n PerformedNode) EffectiveOperator() CountOperator {
	if n.TimesOperator == "" {
		return CountOperatorGTE
	}
	return n.TimesOperator
}

// Window returns the rolling window, zero when unbounded
func (n PerformedNode) Window() time.Duration {
	return time.Duration(n.WithinSeconds) * time.Second
}

// SegmentNode is one node of a segment definition tree
type SegmentNode struct {
	ID   string
	Kind SegmentNodeKind
}

type segmentNodeHeader struct {
	ID   string          `json:"id"`
	Type SegmentNodeType `json:"type"`
}

// MarshalJSON flattens the node into {"id", "type", ...payload}
func (n SegmentNode) MarshalJSON() ([]byte, error) {
	if n.Kind == nil {
		return nil, fmt.Errorf("segment node %s has no kind", n.ID)
	}
	return marshalTagged(n.Kind, map[string]any{"id": n.ID, "type": n.Kind.NodeType()})
}

// UnmarshalJSON decodes a flattened node
func (n *SegmentNode) UnmarshalJSON(data []byte) error {
	var header segmentNodeHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return err
	}

	var kind SegmentNodeKind
	switch header.Type {
	case SegmentNodeTypeTrait:
		var k TraitNode
		if err := json.Unmarshal(data, &k); err != nil {
			return err
		}
		kind = k
	case SegmentNodeTypePerformed:
		var k PerformedNode
		if err := json.Unmarshal(data, &k); err != nil {
			return err
		}
		kind = k
	case SegmentNodeTypeLastPerformed:
		var k LastPerformedNode
		if err := json.Unmarshal(data, &k); err != nil {
			return err
		}
		kind = k
	case SegmentNodeTypeManual:
		var k ManualNode
		if err := json.Unmarshal(data, &k); err != nil {
			return err
		}
		kind = k
	case SegmentNodeTypeAnd:
		var k AndNode
		if err := json.Unmarshal(data, &k); err != nil {
			return err
		}
		kind = k
	case SegmentNodeTypeOr:
		var k OrNode
		if err := json.Unmarshal(data, &k); err != nil {
			return err
		}
		kind = k
	default:
		return fmt.Errorf("unknown segment node type %q", header.Type)
	}

	n.ID = header.ID
	n.Kind = kind
	return nil
}

// SegmentDefinition is a tree of nodes rooted at EntryNode
type SegmentDefinition struct {
	EntryNode SegmentNode   `json:"entryNode"`
	Nodes     []SegmentNode `json:"nodes,omitempty"`
}

// Node looks a node up by id, including the entry node
func (d SegmentDefinition) Node(id string) (SegmentNode, bool) {
	if d.EntryNode.ID == id {
		return d.EntryNode, true
	}
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return SegmentNode{}, false
}

// Reachable returns every node reachable from the entry node, entry first
func (d SegmentDefinition) Reachable() []SegmentNode {
	var (
		out  []SegmentNode
		seen = map[string]bool{}
	)
	var visit func(n SegmentNode)
	visit = func(n SegmentNode) {
		if seen[n.ID] {
			return
		}
		seen[n.ID] = true
		out = append(out, n)
		for _, childID := range childrenOf(n) {
			if child, ok := d.Node(childID); ok {
				visit(child)
			}
		}
	}
	visit(d.EntryNode)
	return out
}

// Validate checks the structural invariants of the definition
func (d SegmentDefinition) Validate() error {
	if d.EntryNode.ID == "" || d.EntryNode.Kind == nil {
		return fmt.Errorf("%w: missing entry node", ErrInvalidDefinition)
	}

	ids := map[string]bool{}
	for _, n := range append([]SegmentNode{d.EntryNode}, d.Nodes...) {
		if n.ID == "" || n.Kind == nil {
			return fmt.Errorf("%w: node without id or kind", ErrInvalidDefinition)
		}
		if ids[n.ID] {
			return fmt.Errorf("%w: duplicate node id %s", ErrInvalidDefinition, n.ID)
		}
		ids[n.ID] = true
		if err := validateSegmentNode(n); err != nil {
			return err
		}
	}

	return d.checkAcyclic()
}

func (d SegmentDefinition) checkAcyclic() error {
	const (
		visiting = 1
		done     = 2
	)
	state := map[string]int{}

	var walk func(n SegmentNode) error
	walk = func(n SegmentNode) error {
		switch state[n.ID] {
		case visiting:
			return fmt.Errorf("%w: cycle through node %s", ErrInvalidDefinition, n.ID)
		case done:
			return nil
		}
		state[n.ID] = visiting
		for _, childID := range childrenOf(n) {
			child, ok := d.Node(childID)
			if !ok {
				return fmt.Errorf("%w: unknown child %s", ErrInvalidDefinition, childID)
			}
			if err := walk(child); err != nil {
				return err
			}
		}
		state[n.ID] = done
		return nil
	}
	return walk(d.EntryNode)
}

func childrenOf(n SegmentNode) []string {
	switch k := n.Kind.(type) {
	case AndNode:
		return k.Children
	case OrNode:
		return k.Children
	}
	return nil
}

func validateSegmentNode(n SegmentNode) error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: node %s: %s", ErrInvalidDefinition, n.ID, fmt.Sprintf(format, args...))
	}

	switch k := n.Kind.(type) {
	case TraitNode:
		if k.Path == "" {
			return invalid("trait path is required")
		}
		switch k.Operator.Type {
		case TraitOperatorExists:
		case TraitOperatorEquals, TraitOperatorNotEquals:
			if k.Operator.Value == nil {
				return invalid("operator %s requires a value", k.Operator.Type)
			}
		case TraitOperatorGreaterThanOrEqual, TraitOperatorLessThan:
			if _, ok := AsNumber(k.Operator.Value); !ok {
				return invalid("operator %s requires a numeric value", k.Operator.Type)
			}
		default:
			return invalid("unknown trait operator %q", k.Operator.Type)
		}
	case PerformedNode:
		if k.Event == "" {
			return invalid("event is required")
		}
		if k.Times < 0 || k.WithinSeconds < 0 {
			return invalid("times and withinSeconds must not be negative")
		}
		switch k.EffectiveOperator() {
		case CountOperatorGTE, CountOperatorLT, CountOperatorEQ:
		default:
			return invalid("unknown count operator %q", k.TimesOperator)
		}
		for _, f := range k.Properties {
			if f.Path == "" {
				return invalid("property filter path is required")
			}
		}
	case LastPerformedNode:
		if k.Event == "" || k.Path == "" {
			return invalid("event and path are required")
		}
	case ManualNode:
	case AndNode:
		if len(k.Children) == 0 {
			return invalid("And requires children")
		}
	case OrNode:
		if len(k.Children) == 0 {
			return invalid("Or requires children")
		}
	default:
		return invalid("unsupported node kind %T", n.Kind)
	}
	return nil
}

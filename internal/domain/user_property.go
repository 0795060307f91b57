package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// UserProperty is a workspace user property as stored by the resource layer
type UserProperty struct {
	ID                  string
	WorkspaceID         string
	Name                string
	Definition          json.RawMessage
	DefinitionUpdatedAt time.Time
}

// Key returns the computed property key of the user property
func (p UserProperty) Key() ComputedPropertyKey {
	return ComputedPropertyKey{WorkspaceID: p.WorkspaceID, Type: ComputedPropertyTypeUserProperty, ID: p.ID}
}

// Version is the definition version tracked by periods
func (p UserProperty) Version() int64 {
	return p.DefinitionUpdatedAt.UnixMilli()
}

// ParseDefinition decodes and validates the user property definition
func (p UserProperty) ParseDefinition() (*UserPropertyDefinition, error) {
	var def UserPropertyDefinition
	if err := json.Unmarshal(p.Definition, &def); err != nil {
		return nil, fmt.Errorf("%w: user property %s: %v", ErrInvalidDefinition, p.ID, err)
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("user property %s: %w", p.ID, err)
	}
	return &def, nil
}

// UserPropertyType discriminates user property kinds
type UserPropertyType string

const (
	UserPropertyTypeID             UserPropertyType = "Id"
	UserPropertyTypeAnonymousID    UserPropertyType = "AnonymousId"
	UserPropertyTypeTrait          UserPropertyType = "Trait"
	UserPropertyTypePerformed      UserPropertyType = "Performed"
	UserPropertyTypePerformedCount UserPropertyType = "PerformedCount"
	UserPropertyTypeAnyOf          UserPropertyType = "AnyOf"
)

// UserPropertyKind is implemented by every user property payload
type UserPropertyKind interface {
	PropertyType() UserPropertyType
}

// IDProperty resolves to the user id
type IDProperty struct{}

// AnonymousIDProperty resolves to the latest anonymous id seen for the user
type AnonymousIDProperty struct{}

// TraitProperty resolves to the latest value of a trait
type TraitProperty struct {
	Path string `json:"path"`
}

// PerformedProperty resolves to Path of the latest matching Event
type PerformedProperty struct {
	Event      string           `json:"event"`
	Path       string           `json:"path"`
	Properties []PropertyFilter `json:"properties,omitempty"`
}

// PerformedCountProperty resolves to the number of matching events, optionally within a rolling window
type PerformedCountProperty struct {
	Event         string           `json:"event"`
	WithinSeconds int64            `json:"withinSeconds,omitempty"`
	Properties    []PropertyFilter `json:"properties,omitempty"`
}

// AnyOfProperty resolves to the first child with a value
type AnyOfProperty struct {
	Children []UserPropertyDefinition `json:"children"`
}

func (IDProperty) PropertyType() UserPropertyType             { return UserPropertyTypeID }
func (AnonymousIDProperty) PropertyType() UserPropertyType    { return UserPropertyTypeAnonymousID }
func (TraitProperty) PropertyType() UserPropertyType          { return UserPropertyTypeTrait }
func (PerformedProperty) PropertyType() UserPropertyType      { return UserPropertyTypePerformed }
func (PerformedCountProperty) PropertyType() UserPropertyType { return UserPropertyTypePerformedCount }
func (AnyOfProperty) PropertyType() UserPropertyType          { return UserPropertyTypeAnyOf }

// Window returns the rolling window, zero when unbounded
func (p PerformedCountProperty) Window() time.Duration {
	return time.Duration(p.WithinSeconds) * time.Second
}

// UserPropertyDefinition is a tagged user property definition
type UserPropertyDefinition struct {
	Kind UserPropertyKind
}

// MarshalJSON flattens the definition into {"type", ...payload}
func (d UserPropertyDefinition) MarshalJSON() ([]byte, error) {
	if d.Kind == nil {
		return nil, fmt.Errorf("user property definition has no kind")
	}
	return marshalTagged(d.Kind, map[string]any{"type": d.Kind.PropertyType()})
}

// UnmarshalJSON decodes a flattened definition
func (d *UserPropertyDefinition) UnmarshalJSON(data []byte) error {
	var header struct {
		Type UserPropertyType `json:"type"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return err
	}

	var kind UserPropertyKind
	switch header.Type {
	case UserPropertyTypeID:
		kind = IDProperty{}
	case UserPropertyTypeAnonymousID:
		kind = AnonymousIDProperty{}
	case UserPropertyTypeTrait:
		var k TraitProperty
		if err := json.Unmarshal(data, &k); err != nil {
			return err
		}
		kind = k
	case UserPropertyTypePerformed:
		var k PerformedProperty
		if err := json.Unmarshal(data, &k); err != nil {
			return err
		}
		kind = k
	case UserPropertyTypePerformedCount:
		var k PerformedCountProperty
		if err := json.Unmarshal(data, &k); err != nil {
			return err
		}
		kind = k
	case UserPropertyTypeAnyOf:
		var k AnyOfProperty
		if err := json.Unmarshal(data, &k); err != nil {
			return err
		}
		kind = k
	default:
		return fmt.Errorf("unknown user property type %q", header.Type)
	}

	d.Kind = kind
	return nil
}

// Leaves returns the leaf definitions with their state ids.
// AnyOf children are numbered by position; a plain definition is its own leaf "0".
func (d UserPropertyDefinition) Leaves() []UserPropertyLeaf {
	anyOf, ok := d.Kind.(AnyOfProperty)
	if !ok {
		return []UserPropertyLeaf{{StateID: "0", Kind: d.Kind}}
	}
	leaves := make([]UserPropertyLeaf, 0, len(anyOf.Children))
	for i, child := range anyOf.Children {
		leaves = append(leaves, UserPropertyLeaf{StateID: strconv.Itoa(i), Kind: child.Kind})
	}
	return leaves
}

// UserPropertyLeaf is an accumulating leaf of a user property definition
type UserPropertyLeaf struct {
	StateID string
	Kind    UserPropertyKind
}

// Validate checks the definition
func (d UserPropertyDefinition) Validate() error {
	return validateUserPropertyKind(d.Kind, true)
}

func validateUserPropertyKind(kind UserPropertyKind, allowAnyOf bool) error {
	switch k := kind.(type) {
	case IDProperty, AnonymousIDProperty:
	case TraitProperty:
		if k.Path == "" {
			return fmt.Errorf("%w: trait path is required", ErrInvalidDefinition)
		}
	case PerformedProperty:
		if k.Event == "" || k.Path == "" {
			return fmt.Errorf("%w: performed property requires event and path", ErrInvalidDefinition)
		}
	case PerformedCountProperty:
		if k.Event == "" {
			return fmt.Errorf("%w: performed count requires event", ErrInvalidDefinition)
		}
		if k.WithinSeconds < 0 {
			return fmt.Errorf("%w: withinSeconds must not be negative", ErrInvalidDefinition)
		}
	case AnyOfProperty:
		if !allowAnyOf {
			return fmt.Errorf("%w: AnyOf cannot be nested", ErrInvalidDefinition)
		}
		if len(k.Children) == 0 {
			return fmt.Errorf("%w: AnyOf requires children", ErrInvalidDefinition)
		}
		for _, child := range k.Children {
			if err := validateUserPropertyKind(child.Kind, false); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: unsupported user property kind %T", ErrInvalidDefinition, kind)
	}
	return nil
}

package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPropertyDefinition_JSON(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected UserPropertyKind
	}{
		{name: "id", raw: `{"type": "Id"}`, expected: IDProperty{}},
		{name: "anonymous id", raw: `{"type": "AnonymousId"}`, expected: AnonymousIDProperty{}},
		{name: "trait", raw: `{"type": "Trait", "path": "email"}`, expected: TraitProperty{Path: "email"}},
		{
			name:     "performed",
			raw:      `{"type": "Performed", "event": "Purchase", "path": "amount"}`,
			expected: PerformedProperty{Event: "Purchase", Path: "amount"},
		},
		{
			name:     "performed count",
			raw:      `{"type": "PerformedCount", "event": "Login", "withinSeconds": 86400}`,
			expected: PerformedCountProperty{Event: "Login", WithinSeconds: 86400},
		},
		{
			name: "any of",
			raw:  `{"type": "AnyOf", "children": [{"type": "Trait", "path": "email"}, {"type": "Id"}]}`,
			expected: AnyOfProperty{Children: []UserPropertyDefinition{
				{Kind: TraitProperty{Path: "email"}},
				{Kind: IDProperty{}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var def UserPropertyDefinition
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &def))
			if diff := cmp.Diff(tt.expected, def.Kind); diff != "" {
				t.Errorf("kind mismatch (-want +got):\n%s", diff)
			}

			encoded, err := json.Marshal(def)
			require.NoError(t, err)
			assert.JSONEq(t, tt.raw, string(encoded))
		})
	}
}

func TestUserPropertyDefinition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		kind    UserPropertyKind
		wantErr bool
	}{
		{name: "trait", kind: TraitProperty{Path: "email"}},
		{name: "trait without path", kind: TraitProperty{}, wantErr: true},
		{name: "performed without path", kind: PerformedProperty{Event: "Purchase"}, wantErr: true},
		{name: "negative window", kind: PerformedCountProperty{Event: "Login", WithinSeconds: -1}, wantErr: true},
		{name: "empty any of", kind: AnyOfProperty{}, wantErr: true},
		{
			name: "nested any of",
			kind: AnyOfProperty{Children: []UserPropertyDefinition{
				{Kind: AnyOfProperty{Children: []UserPropertyDefinition{{Kind: IDProperty{}}}}},
			}},
			wantErr: true,
		},
		{name: "no kind", kind: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := UserPropertyDefinition{Kind: tt.kind}.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDefinition)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUserPropertyDefinition_Leaves(t *testing.T) {
	plain := UserPropertyDefinition{Kind: TraitProperty{Path: "email"}}
	assert.Equal(t, []UserPropertyLeaf{{StateID: "0", Kind: TraitProperty{Path: "email"}}}, plain.Leaves())

	anyOf := UserPropertyDefinition{Kind: AnyOfProperty{Children: []UserPropertyDefinition{
		{Kind: TraitProperty{Path: "email"}},
		{Kind: PerformedProperty{Event: "Signup", Path: "email"}},
	}}}
	leaves := anyOf.Leaves()
	require.Len(t, leaves, 2)
	assert.Equal(t, "0", leaves[0].StateID)
	assert.Equal(t, "1", leaves[1].StateID)
	assert.Equal(t, UserPropertyTypePerformed, leaves[1].Kind.PropertyType())
}

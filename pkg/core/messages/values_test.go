package messages

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueUnmarshalForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, v Value)
	}{
		{
			name:  "plain string",
			input: `"hello"`,
			check: func(t *testing.T, v Value) {
				literal, ok := v.Literal()
				require.True(t, ok)
				assert.Equal(t, "hello", literal)
			},
		},
		{
			name:  "plain number",
			input: `42`,
			check: func(t *testing.T, v Value) {
				literal, ok := v.Literal()
				require.True(t, ok)
				assert.Equal(t, 42.0, literal)
			},
		},
		{
			name:  "plain boolean",
			input: `true`,
			check: func(t *testing.T, v Value) {
				literal, ok := v.Literal()
				require.True(t, ok)
				assert.Equal(t, true, literal)
			},
		},
		{
			name:  "tagged literalString",
			input: `{"literalString": "hi"}`,
			check: func(t *testing.T, v Value) {
				literal, ok := v.Literal()
				require.True(t, ok)
				assert.Equal(t, "hi", literal)
			},
		},
		{
			name:  "tagged literalBoolean",
			input: `{"literalBoolean": false}`,
			check: func(t *testing.T, v Value) {
				literal, ok := v.Literal()
				require.True(t, ok)
				assert.Equal(t, false, literal)
			},
		},
		{
			name:  "path reference",
			input: `{"path": "/plant/name"}`,
			check: func(t *testing.T, v Value) {
				assert.True(t, v.IsPath())
				assert.Equal(t, "/plant/name", *v.Path)
				_, ok := v.Literal()
				assert.False(t, ok)
			},
		},
		{
			name:  "empty path references the context itself",
			input: `{"path": ""}`,
			check: func(t *testing.T, v Value) {
				assert.True(t, v.IsPath())
				assert.False(t, v.IsZero())
			},
		},
		{
			name:  "null is zero",
			input: `null`,
			check: func(t *testing.T, v Value) {
				assert.True(t, v.IsZero())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Value
			require.NoError(t, json.Unmarshal([]byte(tt.input), &v))
			tt.check(t, v)
		})
	}
}

func TestValueMarshalCanonicalForm(t *testing.T) {
	data, err := json.Marshal(LiteralStringValue("hi"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"literalString": "hi"}`, string(data))

	data, err = json.Marshal(PathValue("/x"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"path": "/x"}`, string(data))
}

func TestDataEntryValue(t *testing.T) {
	input := `[
		{"key": "name", "valueString": "Neem"},
		{"key": "height", "valueNumber": 12.5},
		{"key": "native", "valueBoolean": true},
		{"key": "tags", "valueList": [
			{"valueString": "canopy"},
			{"valueString": "evergreen"}
		]},
		{"key": "detail", "valueMap": [
			{"key": "family", "valueString": "Meliaceae"}
		]},
		{"valueString": "dropped: no key"}
	]`
	var entries []DataEntry
	require.NoError(t, json.Unmarshal([]byte(input), &entries))

	result := EntriesToMap(entries)
	assert.Equal(t, map[string]any{
		"name":   "Neem",
		"height": 12.5,
		"native": true,
		"tags":   []any{"canopy", "evergreen"},
		"detail": map[string]any{"family": "Meliaceae"},
	}, result)
}

func TestActionValidate(t *testing.T) {
	valid := &Action{
		Name: "select",
		Context: []ContextEntry{
			{Key: "k", Value: LiteralBoolValue(true)},
			{Key: "p", Value: PathValue("item")},
		},
	}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&Action{}).Validate())
	assert.Error(t, (&Action{Name: "a", Context: []ContextEntry{{Value: LiteralStringValue("x")}}}).Validate())
	assert.Error(t, (&Action{Name: "a", Context: []ContextEntry{{Key: "k"}}}).Validate())
}

package messages

import (
	"encoding/json"
	"fmt"
)

// Value is a component property value: either a literal string, number, or
// boolean, or a path reference into the surface's data model. On the wire a
// value is a plain JSON string, number, or boolean, or an object with exactly
// one of the keys literalString, literalNumber, literalBoolean, or path.
type Value struct {
	LiteralString *string
	LiteralNumber *float64
	LiteralBool   *bool

	// Path is non-nil for path references. The empty path is meaningful: it
	// references the data context itself, as a list item template does when
	// it binds to the whole element.
	Path *string
}

// LiteralStringValue creates a literal string value
func LiteralStringValue(s string) Value {
	return Value{LiteralString: &s}
}

// LiteralNumberValue creates a literal number value
func LiteralNumberValue(n float64) Value {
	return Value{LiteralNumber: &n}
}

// LiteralBoolValue creates a literal boolean value
func LiteralBoolValue(b bool) Value {
	return Value{LiteralBool: &b}
}

// PathValue creates a path reference value
func PathValue(path string) Value {
	return Value{Path: &path}
}

// IsZero reports whether the value carries neither a literal nor a path
func (v Value) IsZero() bool {
	return v.LiteralString == nil && v.LiteralNumber == nil && v.LiteralBool == nil && v.Path == nil
}

// IsPath reports whether the value is a path reference
func (v Value) IsPath() bool {
	return v.Path != nil
}

// Literal returns the literal payload, if any
func (v Value) Literal() (any, bool) {
	switch {
	case v.LiteralString != nil:
		return *v.LiteralString, true
	case v.LiteralNumber != nil:
		return *v.LiteralNumber, true
	case v.LiteralBool != nil:
		return *v.LiteralBool, true
	}
	return nil, false
}

// UnmarshalJSON parses a value from its wire form
func (v *Value) UnmarshalJSON(data []byte) error {
	*v = Value{}

	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("failed to parse value: %w", err)
	}

	switch raw := probe.(type) {
	case nil:
		return nil
	case string:
		v.LiteralString = &raw
		return nil
	case float64:
		v.LiteralNumber = &raw
		return nil
	case bool:
		v.LiteralBool = &raw
		return nil
	case map[string]any:
		var tagged struct {
			LiteralString  *string  `json:"literalString"`
			LiteralNumber  *float64 `json:"literalNumber"`
			LiteralBoolean *bool    `json:"literalBoolean"`
			Path           *string  `json:"path"`
		}
		if err := json.Unmarshal(data, &tagged); err != nil {
			return fmt.Errorf("failed to parse value: %w", err)
		}
		v.LiteralString = tagged.LiteralString
		v.LiteralNumber = tagged.LiteralNumber
		v.LiteralBool = tagged.LiteralBoolean
		v.Path = tagged.Path
		return nil
	default:
		return fmt.Errorf("unsupported value shape: %T", probe)
	}
}

// MarshalJSON serializes the value in its canonical tagged object form
func (v Value) MarshalJSON() ([]byte, error) {
	tagged := struct {
		LiteralString  *string  `json:"literalString,omitempty"`
		LiteralNumber  *float64 `json:"literalNumber,omitempty"`
		LiteralBoolean *bool    `json:"literalBoolean,omitempty"`
		Path           *string  `json:"path,omitempty"`
	}{
		LiteralString:  v.LiteralString,
		LiteralNumber:  v.LiteralNumber,
		LiteralBoolean: v.LiteralBool,
		Path:           v.Path,
	}
	return json.Marshal(tagged)
}

// DataEntry is a single keyed entry in a dataModelUpdate payload. Exactly one
// of the value fields is set. ValueMap nests keyed entries; ValueList carries
// an ordered sequence whose entry keys are ignored.
type DataEntry struct {
	Key          string      `json:"key"`
	ValueString  *string     `json:"valueString,omitempty"`
	ValueNumber  *float64    `json:"valueNumber,omitempty"`
	ValueBoolean *bool       `json:"valueBoolean,omitempty"`
	ValueMap     []DataEntry `json:"valueMap,omitempty"`
	ValueList    []DataEntry `json:"valueList,omitempty"`
}

// Value returns the entry's payload as a plain Go value: a scalar, a
// map[string]any for ValueMap, or a []any for ValueList.
func (e DataEntry) Value() any {
	switch {
	case e.ValueString != nil:
		return *e.ValueString
	case e.ValueNumber != nil:
		return *e.ValueNumber
	case e.ValueBoolean != nil:
		return *e.ValueBoolean
	case e.ValueMap != nil:
		return EntriesToMap(e.ValueMap)
	case e.ValueList != nil:
		items := make([]any, 0, len(e.ValueList))
		for _, item := range e.ValueList {
			items = append(items, item.Value())
		}
		return items
	}
	return nil
}

// EntriesToMap converts a list of entries to a keyed map. Entries without a
// key are dropped; later entries win over earlier ones with the same key.
func EntriesToMap(entries []DataEntry) map[string]any {
	result := make(map[string]any, len(entries))
	for _, entry := range entries {
		if entry.Key == "" {
			continue
		}
		result[entry.Key] = entry.Value()
	}
	return result
}

// Action describes how a component reports a user interaction back to the
// agent: the action name plus a template of context entries gathered at
// dispatch time.
type Action struct {
	Name    string         `json:"name"`
	Context []ContextEntry `json:"context,omitempty"`
}

// ContextEntry is one key in an action's context template. A literal value is
// copied verbatim into the outbound event; a path value is resolved against
// the surface data model using the firing component's data context.
type ContextEntry struct {
	Key   string `json:"key"`
	Value Value  `json:"value"`
}

// Validate validates the action definition
func (a *Action) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("action name is required")
	}
	for i, entry := range a.Context {
		if entry.Key == "" {
			return fmt.Errorf("context entry %d: key is required", i)
		}
		if entry.Value.IsZero() {
			return fmt.Errorf("context entry %d: value is required", i)
		}
	}
	return nil
}

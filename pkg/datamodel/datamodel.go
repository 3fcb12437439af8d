package datamodel

import (
	"encoding/json"
	"fmt"
	"strconv"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/a2ui/go-sdk/pkg/core/messages"
)

// DataModel holds the hierarchical data bound to one surface. It is not safe
// for concurrent use; the owning processor serializes access.
type DataModel struct {
	root map[string]any
}

// New creates an empty data model
func New() *DataModel {
	return &DataModel{root: make(map[string]any)}
}

// FromData creates a data model over a deep copy of the given contents
func FromData(data map[string]any) *DataModel {
	dm := New()
	dm.Replace(data)
	return dm
}

// Replace swaps the whole model for a deep copy of the given contents
func (m *DataModel) Replace(data map[string]any) {
	if data == nil {
		m.root = make(map[string]any)
		return
	}
	m.root = deepCopy(data).(map[string]any)
}

// SetEntries applies a dataModelUpdate contents list. An empty or root path
// replaces the whole model; any other path gets the decoded entries set at
// that location, creating intermediate maps as needed.
func (m *DataModel) SetEntries(path Path, entries []messages.DataEntry) {
	contents := messages.EntriesToMap(entries)
	if path.IsRoot() {
		m.root = contents
		return
	}
	m.Set(path, contents)
}

// Set writes a value at a path, creating intermediate maps for missing
// segments. A numeric segment descends into an existing sequence when the
// index is in range; otherwise it is treated as a map key.
func (m *DataModel) Set(path Path, value any) {
	segments := path.Segments()
	if len(segments) == 0 {
		if contents, ok := value.(map[string]any); ok {
			m.root = contents
		}
		return
	}

	var current any = m.root
	for _, segment := range segments[:len(segments)-1] {
		next, ok := descend(current, segment)
		if !ok {
			parent, isMap := current.(map[string]any)
			if !isMap {
				return
			}
			child := make(map[string]any)
			parent[segment] = child
			next = child
		} else if _, isContainer := next.(map[string]any); !isContainer {
			if _, isSeq := next.([]any); !isSeq {
				parent, isMap := current.(map[string]any)
				if !isMap {
					return
				}
				child := make(map[string]any)
				parent[segment] = child
				next = child
			}
		}
		current = next
	}

	last := segments[len(segments)-1]
	switch container := current.(type) {
	case map[string]any:
		container[last] = value
	case []any:
		if i, err := strconv.Atoi(last); err == nil && i >= 0 && i < len(container) {
			container[i] = value
		}
	}
}

// Get reads the value at an absolute path. Missing keys and out-of-range
// indices yield (nil, false), never an error.
func (m *DataModel) Get(path Path) (any, bool) {
	var current any = m.root
	for _, segment := range path.Segments() {
		next, ok := descend(current, segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// descend walks one segment into a map or sequence
func descend(value any, segment string) (any, bool) {
	switch container := value.(type) {
	case map[string]any:
		child, ok := container[segment]
		return child, ok
	case []any:
		i, err := strconv.Atoi(segment)
		if err != nil || i < 0 || i >= len(container) {
			return nil, false
		}
		return container[i], true
	default:
		return nil, false
	}
}

// ApplyPatch applies RFC 6902 operations to the model. The model is left
// unchanged when the patch does not apply.
func (m *DataModel) ApplyPatch(ops []messages.PatchOperation) error {
	patchData, err := json.Marshal(ops)
	if err != nil {
		return fmt.Errorf("failed to encode patch: %w", err)
	}
	patch, err := jsonpatch.DecodePatch(patchData)
	if err != nil {
		return fmt.Errorf("failed to decode patch: %w", err)
	}

	doc, err := json.Marshal(m.root)
	if err != nil {
		return fmt.Errorf("failed to encode data model: %w", err)
	}
	patched, err := patch.Apply(doc)
	if err != nil {
		return fmt.Errorf("failed to apply patch: %w", err)
	}

	var root map[string]any
	if err := json.Unmarshal(patched, &root); err != nil {
		return fmt.Errorf("patch result is not a keyed map: %w", err)
	}
	m.root = root
	return nil
}

// Resolve evaluates a component property value. Literals resolve to
// themselves; a path value is resolved against the model using the supplied
// context path. An absent binding yields (nil, false).
func (m *DataModel) Resolve(value messages.Value, context Path) (any, bool) {
	if literal, ok := value.Literal(); ok {
		return literal, true
	}
	if value.IsPath() {
		return m.Get(Path(*value.Path).Resolve(context))
	}
	return nil, false
}

// ResolveString evaluates a value and formats it for display, falling back
// when the value is empty or its binding is absent.
func (m *DataModel) ResolveString(value messages.Value, context Path, fallback string) string {
	resolved, ok := m.Resolve(value, context)
	if !ok || resolved == nil {
		return fallback
	}
	switch v := resolved.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Data returns a deep copy of the model contents
func (m *DataModel) Data() map[string]any {
	return deepCopy(m.root).(map[string]any)
}

// Clear resets the model to empty
func (m *DataModel) Clear() {
	m.root = make(map[string]any)
}

// Clone returns an independent copy of the model
func (m *DataModel) Clone() *DataModel {
	return &DataModel{root: m.Data()}
}

func deepCopy(value any) any {
	switch v := value.(type) {
	case map[string]any:
		result := make(map[string]any, len(v))
		for key, child := range v {
			result[key] = deepCopy(child)
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, child := range v {
			result[i] = deepCopy(child)
		}
		return result
	default:
		return v
	}
}

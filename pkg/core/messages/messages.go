package messages

import (
	"encoding/json"
	"fmt"
	"sort"
)

// MessageKind identifies the action carried by a server-to-client message
type MessageKind string

// A2UI server-to-client message kinds - matching the v0.8 protocol
const (
	MessageKindBeginRendering  MessageKind = "beginRendering"
	MessageKindSurfaceUpdate   MessageKind = "surfaceUpdate"
	MessageKindDataModelUpdate MessageKind = "dataModelUpdate"
	MessageKindDeleteSurface   MessageKind = "deleteSurface"

	// MessageKindUnknown represents an unrecognized action key
	MessageKindUnknown MessageKind = "unknown"
)

// DefaultSurfaceID is assumed when a message names no surface at all
const DefaultSurfaceID = "default"

// validMessageKinds is a map for O(1) lookup of valid message kinds
var validMessageKinds = map[MessageKind]bool{
	MessageKindBeginRendering:  true,
	MessageKindSurfaceUpdate:   true,
	MessageKindDataModelUpdate: true,
	MessageKindDeleteSurface:   true,
}

// IsValidMessageKind checks if the given message kind is valid
func IsValidMessageKind(kind MessageKind) bool {
	return validMessageKinds[kind]
}

// Message is one server-to-client A2UI message. Exactly one of the payload
// fields is set, selected by Kind. SurfaceID holds the envelope-level
// surfaceId some agents emit alongside the action payload; TargetSurfaceID
// merges the two forms.
type Message struct {
	SurfaceID string
	Kind      MessageKind

	BeginRendering  *BeginRendering
	SurfaceUpdate   *SurfaceUpdate
	DataModelUpdate *DataModelUpdate
	DeleteSurface   *DeleteSurface

	// UnknownKey holds the raw action key when Kind is MessageKindUnknown
	UnknownKey string
}

// BeginRendering creates a surface and names its root component
type BeginRendering struct {
	SurfaceID string         `json:"surfaceId,omitempty"`
	CatalogID string         `json:"catalogId,omitempty"`
	Root      string         `json:"root,omitempty"`
	Styles    map[string]any `json:"styles,omitempty"`
}

// SurfaceUpdate upserts components into a surface's tree by id
type SurfaceUpdate struct {
	SurfaceID  string      `json:"surfaceId,omitempty"`
	Components []Component `json:"components"`
}

// DataModelUpdate replaces or patches a surface's data model. An empty or "/"
// path with Contents replaces the whole model; a non-root path sets the
// decoded contents at that location. Patch is the RFC 6902 alternative to
// Contents and can install any JSON value, sequences included.
type DataModelUpdate struct {
	SurfaceID string           `json:"surfaceId,omitempty"`
	Path      string           `json:"path,omitempty"`
	Contents  []DataEntry      `json:"contents,omitempty"`
	Patch     []PatchOperation `json:"patch,omitempty"`
}

// DeleteSurface removes a surface
type DeleteSurface struct {
	SurfaceID string `json:"surfaceId,omitempty"`
}

// PatchOperation represents a JSON Patch operation (RFC 6902)
type PatchOperation struct {
	Op    string `json:"op"`              // "add", "remove", "replace", "move", "copy", "test"
	Path  string `json:"path"`            // JSON Pointer path
	Value any    `json:"value,omitempty"` // Value for add, replace, test operations
	From  string `json:"from,omitempty"`  // Source path for move, copy operations
}

// validPatchOps contains the valid JSON Patch operations for efficient lookup
var validPatchOps = map[string]bool{
	"add":     true,
	"remove":  true,
	"replace": true,
	"move":    true,
	"copy":    true,
	"test":    true,
}

// validatePatchOperation validates a single JSON patch operation
func validatePatchOperation(op PatchOperation) error {
	if !validPatchOps[op.Op] {
		return fmt.Errorf("op field must be one of: add, remove, replace, move, copy, test, got: %s", op.Op)
	}
	if op.Path == "" {
		return fmt.Errorf("path field is required")
	}
	if (op.Op == "add" || op.Op == "replace" || op.Op == "test") && op.Value == nil {
		return fmt.Errorf("value field is required for %s operation", op.Op)
	}
	if (op.Op == "move" || op.Op == "copy") && op.From == "" {
		return fmt.Errorf("from field is required for %s operation", op.Op)
	}
	return nil
}

// TargetSurfaceID returns the surface the message addresses: the payload's
// surfaceId when present, otherwise the envelope surfaceId, otherwise
// DefaultSurfaceID.
func (m *Message) TargetSurfaceID() string {
	var payload string
	switch m.Kind {
	case MessageKindBeginRendering:
		if m.BeginRendering != nil {
			payload = m.BeginRendering.SurfaceID
		}
	case MessageKindSurfaceUpdate:
		if m.SurfaceUpdate != nil {
			payload = m.SurfaceUpdate.SurfaceID
		}
	case MessageKindDataModelUpdate:
		if m.DataModelUpdate != nil {
			payload = m.DataModelUpdate.SurfaceID
		}
	case MessageKindDeleteSurface:
		if m.DeleteSurface != nil {
			payload = m.DeleteSurface.SurfaceID
		}
	}
	if payload != "" {
		return payload
	}
	if m.SurfaceID != "" {
		return m.SurfaceID
	}
	return DefaultSurfaceID
}

// Validate validates the message structure and content
func (m *Message) Validate() error {
	switch m.Kind {
	case MessageKindBeginRendering:
		if m.BeginRendering == nil {
			return fmt.Errorf("BeginRendering validation failed: payload is required")
		}
	case MessageKindSurfaceUpdate:
		if m.SurfaceUpdate == nil {
			return fmt.Errorf("SurfaceUpdate validation failed: payload is required")
		}
		for i, comp := range m.SurfaceUpdate.Components {
			if err := comp.Validate(); err != nil {
				return fmt.Errorf("SurfaceUpdate validation failed: component %d: %w", i, err)
			}
		}
	case MessageKindDataModelUpdate:
		if m.DataModelUpdate == nil {
			return fmt.Errorf("DataModelUpdate validation failed: payload is required")
		}
		if len(m.DataModelUpdate.Contents) > 0 && len(m.DataModelUpdate.Patch) > 0 {
			return fmt.Errorf("DataModelUpdate validation failed: contents and patch are mutually exclusive")
		}
		for i, op := range m.DataModelUpdate.Patch {
			if err := validatePatchOperation(op); err != nil {
				return fmt.Errorf("DataModelUpdate validation failed: invalid operation at index %d: %w", i, err)
			}
		}
	case MessageKindDeleteSurface:
		if m.DeleteSurface == nil {
			return fmt.Errorf("DeleteSurface validation failed: payload is required")
		}
	case MessageKindUnknown:
		return fmt.Errorf("unknown message kind %q", m.UnknownKey)
	default:
		return fmt.Errorf("invalid message kind %q", m.Kind)
	}
	return nil
}

// UnmarshalJSON parses a message from its wire form. An unrecognized action
// key yields Kind MessageKindUnknown rather than an error so callers can skip
// the message with a diagnostic.
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse message: %w", err)
	}

	*m = Message{}
	if surfaceID, ok := raw["surfaceId"]; ok {
		if err := json.Unmarshal(surfaceID, &m.SurfaceID); err != nil {
			return fmt.Errorf("failed to parse surfaceId: %w", err)
		}
	}

	var actions []MessageKind
	for key := range raw {
		if IsValidMessageKind(MessageKind(key)) {
			actions = append(actions, MessageKind(key))
		}
	}
	if len(actions) > 1 {
		return fmt.Errorf("message must contain exactly one action, got %d", len(actions))
	}

	if len(actions) == 0 {
		// Keep the lexically first non-envelope key for the diagnostic
		var keys []string
		for key := range raw {
			if key != "surfaceId" {
				keys = append(keys, key)
			}
		}
		if len(keys) == 0 {
			return fmt.Errorf("message contains no action")
		}
		sort.Strings(keys)
		m.Kind = MessageKindUnknown
		m.UnknownKey = keys[0]
		return nil
	}

	kind := actions[0]
	payload := raw[string(kind)]
	var err error
	switch kind {
	case MessageKindBeginRendering:
		m.BeginRendering = &BeginRendering{}
		err = json.Unmarshal(payload, m.BeginRendering)
	case MessageKindSurfaceUpdate:
		m.SurfaceUpdate = &SurfaceUpdate{}
		err = json.Unmarshal(payload, m.SurfaceUpdate)
	case MessageKindDataModelUpdate:
		m.DataModelUpdate = &DataModelUpdate{}
		err = json.Unmarshal(payload, m.DataModelUpdate)
	case MessageKindDeleteSurface:
		m.DeleteSurface = &DeleteSurface{}
		err = json.Unmarshal(payload, m.DeleteSurface)
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s payload: %w", kind, err)
	}
	m.Kind = kind
	return nil
}

// MarshalJSON serializes the message to its wire form
func (m Message) MarshalJSON() ([]byte, error) {
	raw := make(map[string]any, 2)
	if m.SurfaceID != "" {
		raw["surfaceId"] = m.SurfaceID
	}
	switch m.Kind {
	case MessageKindBeginRendering:
		raw[string(m.Kind)] = m.BeginRendering
	case MessageKindSurfaceUpdate:
		raw[string(m.Kind)] = m.SurfaceUpdate
	case MessageKindDataModelUpdate:
		raw[string(m.Kind)] = m.DataModelUpdate
	case MessageKindDeleteSurface:
		raw[string(m.Kind)] = m.DeleteSurface
	default:
		return nil, fmt.Errorf("cannot marshal message of kind %q", m.Kind)
	}
	return json.Marshal(raw)
}

// MessageFromJSON parses a single message from JSON data
func MessageFromJSON(data []byte) (*Message, error) {
	msg := &Message{}
	if err := json.Unmarshal(data, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// MessagesFromJSON parses an ordered batch of messages from a JSON array
func MessagesFromJSON(data []byte) ([]*Message, error) {
	var rawBatch []json.RawMessage
	if err := json.Unmarshal(data, &rawBatch); err != nil {
		return nil, fmt.Errorf("failed to parse message batch: %w", err)
	}
	batch := make([]*Message, 0, len(rawBatch))
	for i, raw := range rawBatch {
		msg, err := MessageFromJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		batch = append(batch, msg)
	}
	return batch, nil
}

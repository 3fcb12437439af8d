package messages

import (
	"encoding/json"
	"fmt"
)

// UserAction is the resolved form of a user interaction, sent to the agent.
// Context holds the action's context template resolved against the surface
// data model at dispatch time.
type UserAction struct {
	SurfaceID         string         `json:"surfaceId"`
	Name              string         `json:"name"`
	SourceComponentID string         `json:"sourceComponentId"`
	Timestamp         string         `json:"timestamp"`
	Context           map[string]any `json:"context,omitempty"`
}

// ClientEvent is the client-to-agent message envelope. userAction is the only
// event kind the v0.8 protocol defines.
type ClientEvent struct {
	UserAction *UserAction `json:"userAction,omitempty"`
}

// NewUserActionEvent wraps a user action in its client event envelope
func NewUserActionEvent(action *UserAction) *ClientEvent {
	return &ClientEvent{UserAction: action}
}

// Validate validates the client event structure
func (e *ClientEvent) Validate() error {
	if e.UserAction == nil {
		return fmt.Errorf("ClientEvent validation failed: userAction is required")
	}
	if e.UserAction.Name == "" {
		return fmt.Errorf("ClientEvent validation failed: action name is required")
	}
	if e.UserAction.SurfaceID == "" {
		return fmt.Errorf("ClientEvent validation failed: surfaceId is required")
	}
	if e.UserAction.Timestamp == "" {
		return fmt.Errorf("ClientEvent validation failed: timestamp is required")
	}
	return nil
}

// ToJSON serializes the event to JSON
func (e *ClientEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ClientEventFromJSON parses a client event from JSON data
func ClientEventFromJSON(data []byte) (*ClientEvent, error) {
	event := &ClientEvent{}
	if err := json.Unmarshal(data, event); err != nil {
		return nil, fmt.Errorf("failed to parse client event: %w", err)
	}
	return event, nil
}

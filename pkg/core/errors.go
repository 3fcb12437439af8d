package core

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrSurfaceNotFound   = errors.New("surface not found")
	ErrComponentNotFound = errors.New("component not found")
	ErrNoAction          = errors.New("component has no action")
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrStreamClosed      = errors.New("stream closed")
)

// ConfigError represents configuration-related errors
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in field %s (value: %v): %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ProtocolError represents a malformed or inapplicable inbound message
type ProtocolError struct {
	Operation string
	SurfaceID string
	Err       error
}

func (e *ProtocolError) Error() string {
	if e.SurfaceID == "" {
		return fmt.Sprintf("protocol error in %s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("protocol error in %s (surface: %s): %v", e.Operation, e.SurfaceID, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// ActionError represents a failure to build an outbound user action event
type ActionError struct {
	SurfaceID   string
	ComponentID string
	Err         error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action error for component %s on surface %s: %v", e.ComponentID, e.SurfaceID, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// Package core provides the foundational types for the A2UI client engine.
//
// This package defines the shared error types used across the engine. The
// protocol itself — server-issued declarative UI messages, the per-surface
// component tree and data model, and outbound user action events — is defined
// in the subpackages:
//
//   - pkg/core/messages: wire types for inbound and outbound A2UI v0.8 messages
//   - pkg/datamodel: the per-surface hierarchical data model and path resolution
//   - pkg/processor: the message processor and surface store
//
// The A2UI protocol lets a remote agent drive a live UI surface on the client:
// the agent emits ordered batches of messages (create a surface, update its
// component tree, update its data model, delete it), the client engine applies
// them, and user interactions flow back to the agent as resolved action events.
package core

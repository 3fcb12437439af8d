// Package messages provides the wire types for the A2UI v0.8 protocol.
//
// The A2UI (Agent-to-UI) protocol defines four server-to-client message kinds
// that let a remote agent drive a declarative UI surface on the client:
//
//   - beginRendering: creates a surface and names its root component
//   - surfaceUpdate: upserts components into a surface's tree by id
//   - dataModelUpdate: replaces or patches a surface's data model
//   - deleteSurface: removes a surface
//
// Each message carries exactly one of these actions. The surface id may appear
// on the message envelope or inside the action payload; both forms occur in
// the wild and both are accepted, with the payload taking precedence.
//
// Component property values are a tagged union: a literal string, number, or
// boolean, or a path reference into the surface's data model. Components of
// container kinds (Row, Column, List, Card) reference their children by id,
// either as an explicit ordered list or as a template bound to a data model
// sequence.
//
// In the other direction the client emits a single event kind, the user
// action, carrying the action name, the source surface and component, a
// timestamp, and a context mapping resolved against the surface data model.
//
// # Basic Usage
//
//	batch, err := messages.MessagesFromJSON(payload)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, msg := range batch {
//		fmt.Println(msg.Kind, msg.TargetSurfaceID())
//	}
//
// Field shapes are agent/version-specific and parsed defensively: unknown
// action keys produce a Message of MessageKindUnknown rather than an error, so
// that a processor can skip them with a diagnostic while applying the rest of
// the batch.
package messages

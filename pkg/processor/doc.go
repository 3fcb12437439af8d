// Package processor provides the A2UI message processor and surface store.
//
// The MessageProcessor is the heart of the client engine: it applies ordered
// batches of server-issued messages to a store of live surfaces, each surface
// holding a component tree and a bound data model. Renderers read surfaces
// through the query API and are notified of changes through subscriptions;
// user interactions are turned into outbound user action events with
// BuildUserAction.
//
// Batches are applied skip-and-continue: a structurally invalid message — an
// unknown action key, an update addressed to a surface that does not exist, a
// component set that would make the tree cyclic — is skipped and reported as
// a Diagnostic while the remaining messages still apply. No failure leaves
// the store in a state where a subsequent valid batch cannot be applied.
//
// A processor is a constructed instance, one per conversation session:
//
//	p := processor.New()
//	diags := p.ProcessMessages(batch)
//	for _, d := range diags {
//		log.Println(d)
//	}
//	surface, ok := p.Surface("s1")
//
// At most one ProcessMessages call may be active at a time per instance.
// Concurrent readers always observe a surface strictly before or strictly
// after the in-flight batch; Surface and Surfaces return snapshots that later
// batches never mutate. ClearSurfaces may be called at any time, including
// while a conversation turn is in flight, to implement reset semantics.
package processor

// Package client provides the transport collaborator for the A2UI engine.
//
// The engine itself performs no I/O; this package carries resolved user
// action events to the agent endpoint and brings back the next message batch
// for the processor to apply. Two transports are supported: plain HTTP
// request/response, and a WebSocket stream for agents that push surface
// updates without waiting for a user action.
//
// Example usage:
//
//	c, err := client.New(client.Config{BaseURL: "http://localhost:10004"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer c.Close()
//
//	batch, err := c.SendAction(ctx, event)
//	if err != nil {
//		log.Fatal(err)
//	}
//	p.ProcessMessages(batch)
//
// Cancellation is coarse-grained by design: a caller abandons a conversation
// turn by discarding the pending response when it arrives and calling
// ClearSurfaces on the processor; the transport does not retry on its own.
package client

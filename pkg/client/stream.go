package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/a2ui/go-sdk/pkg/core"
	"github.com/a2ui/go-sdk/pkg/core/messages"
)

// Stream is a WebSocket connection to an agent that pushes message batches.
// Each inbound frame carries one JSON batch; frames that fail to parse are
// logged and dropped, matching the processor's skip-and-continue strategy.
type Stream struct {
	conn    *websocket.Conn
	batches chan []*messages.Message
	group   *errgroup.Group
	cancel  context.CancelFunc
	logger  interface{ Warnf(string, ...any) }
}

// Stream opens a streaming connection to the agent endpoint
func (c *Client) Stream(ctx context.Context) (*Stream, error) {
	wsURL := *c.baseURL
	switch wsURL.Scheme {
	case "http":
		wsURL.Scheme = "ws"
	case "https":
		wsURL.Scheme = "wss"
	case "ws", "wss":
	default:
		return nil, &core.ConfigError{
			Field: "BaseURL",
			Value: c.baseURL.String(),
			Err:   fmt.Errorf("unsupported scheme %q for streaming", wsURL.Scheme),
		}
	}
	wsURL.RawQuery = url.Values{"contextId": {c.contextID}}.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", wsURL.String(), err)
	}

	ctx, cancel := context.WithCancel(ctx)
	group, ctx := errgroup.WithContext(ctx)
	s := &Stream{
		conn:    conn,
		batches: make(chan []*messages.Message),
		group:   group,
		cancel:  cancel,
		logger:  c.logger,
	}

	group.Go(func() error {
		<-ctx.Done()
		return conn.Close()
	})
	group.Go(func() error {
		defer close(s.batches)
		defer cancel()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() != nil {
					return core.ErrStreamClosed
				}
				return fmt.Errorf("read failed: %w", err)
			}
			batch, err := messages.MessagesFromJSON(data)
			if err != nil {
				s.logger.Warnf("dropping malformed frame: %v", err)
				continue
			}
			select {
			case s.batches <- batch:
			case <-ctx.Done():
				return core.ErrStreamClosed
			}
		}
	})

	return s, nil
}

// Batches returns the channel of inbound message batches. The channel is
// closed when the stream ends.
func (s *Stream) Batches() <-chan []*messages.Message {
	return s.batches
}

// Send writes a user action event to the stream
func (s *Stream) Send(event *messages.ClientEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}
	return s.conn.WriteJSON(event)
}

// Close tears down the connection and waits for the pumps to exit
func (s *Stream) Close() error {
	s.cancel()
	if err := s.group.Wait(); err != nil && !errors.Is(err, core.ErrStreamClosed) {
		return err
	}
	return nil
}

package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/a2ui/go-sdk/pkg/core"
	"github.com/a2ui/go-sdk/pkg/core/messages"
)

// Config contains configuration options for the client
type Config struct {
	// BaseURL is the agent endpoint the client posts user actions to
	BaseURL string

	// HTTPClient overrides the HTTP client used for requests
	HTTPClient *http.Client

	// Logger overrides the logger used for transport diagnostics
	Logger logrus.FieldLogger
}

// Client carries user action events to an agent endpoint and returns the
// message batches it responds with. One client represents one conversation
// context; Reset starts a new one.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     logrus.FieldLogger

	contextID string
}

// New creates a client for the given agent endpoint
func New(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, &core.ConfigError{
			Field: "BaseURL",
			Value: config.BaseURL,
			Err:   errors.New("base URL cannot be empty"),
		}
	}
	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, &core.ConfigError{
			Field: "BaseURL",
			Value: config.BaseURL,
			Err:   fmt.Errorf("invalid base URL: %w", err),
		}
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
		contextID:  uuid.NewString(),
	}, nil
}

// ContextID returns the conversation context identifier sent with every request
func (c *Client) ContextID() string {
	return c.contextID
}

// Reset starts a new conversation context. Responses to requests issued under
// the previous context should be treated as stale by the caller.
func (c *Client) Reset() {
	c.contextID = uuid.NewString()
}

// SendAction posts a user action event to the agent and returns the message
// batch it responds with. A transport failure leaves engine state untouched;
// the caller decides whether to retry or reset.
func (c *Client) SendAction(ctx context.Context, event *messages.ClientEvent) ([]*messages.Message, error) {
	if event == nil {
		return nil, &core.ConfigError{
			Field: "event",
			Value: event,
			Err:   errors.New("event cannot be nil"),
		}
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}

	body, err := event.ToJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}

	requestID := uuid.NewString()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-A2UI-Context-Id", c.contextID)
	req.Header.Set("X-Request-Id", requestID)

	c.logger.WithFields(logrus.Fields{
		"requestId": requestID,
		"action":    event.UserAction.Name,
		"surfaceId": event.UserAction.SurfaceID,
	}).Debug("sending user action")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &core.ProtocolError{
			Operation: "SendAction",
			SurfaceID: event.UserAction.SurfaceID,
			Err:       fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	batch, err := messages.MessagesFromJSON(data)
	if err != nil {
		return nil, &core.ProtocolError{Operation: "SendAction", Err: err}
	}
	return batch, nil
}

// Close closes the client and releases any resources
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

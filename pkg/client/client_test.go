package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a2ui/go-sdk/pkg/core"
	"github.com/a2ui/go-sdk/pkg/core/messages"
)

func quietLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testEvent() *messages.ClientEvent {
	return messages.NewUserActionEvent(&messages.UserAction{
		SurfaceID:         "card",
		Name:              "select_plant",
		SourceComponentID: "pick",
		Timestamp:         "2025-06-01T12:00:00Z",
		Context:           map[string]any{"plant": "Neem"},
	})
}

func TestNewValidation(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	var configErr *core.ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "BaseURL", configErr.Field)

	c, err := New(Config{BaseURL: "http://agent.local/a2ui", Logger: quietLogger()})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ContextID())
}

func TestResetStartsNewContext(t *testing.T) {
	c, err := New(Config{BaseURL: "http://agent.local", Logger: quietLogger()})
	require.NoError(t, err)

	before := c.ContextID()
	c.Reset()
	assert.NotEqual(t, before, c.ContextID())
}

func TestSendActionRoundTrip(t *testing.T) {
	var gotBody []byte
	var gotHeader http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{ "surfaceId": "card", "beginRendering": { "root": "r" } },
			{ "surfaceId": "card", "dataModelUpdate": { "contents": [ { "key": "k", "valueString": "v" } ] } }
		]`))
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL, Logger: quietLogger()})
	require.NoError(t, err)
	defer c.Close()

	batch, err := c.SendAction(context.Background(), testEvent())
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, messages.MessageKindBeginRendering, batch[0].Kind)
	assert.Equal(t, messages.MessageKindDataModelUpdate, batch[1].Kind)

	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	assert.Equal(t, c.ContextID(), gotHeader.Get("X-A2UI-Context-Id"))
	assert.NotEmpty(t, gotHeader.Get("X-Request-Id"))

	var wire map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &wire))
	userAction, ok := wire["userAction"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "select_plant", userAction["name"])
	assert.Equal(t, "card", userAction["surfaceId"])
}

func TestSendActionRejectsInvalidEvent(t *testing.T) {
	c, err := New(Config{BaseURL: "http://agent.local", Logger: quietLogger()})
	require.NoError(t, err)

	_, err = c.SendAction(context.Background(), nil)
	assert.Error(t, err)

	_, err = c.SendAction(context.Background(), &messages.ClientEvent{})
	assert.Error(t, err)
}

func TestSendActionNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "agent unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL, Logger: quietLogger()})
	require.NoError(t, err)

	_, err = c.SendAction(context.Background(), testEvent())
	require.Error(t, err)
	var protoErr *core.ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, "SendAction", protoErr.Operation)
	assert.Equal(t, "card", protoErr.SurfaceID)
}

func TestSendActionMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a batch"}`))
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL, Logger: quietLogger()})
	require.NoError(t, err)

	_, err = c.SendAction(context.Background(), testEvent())
	require.Error(t, err)
	var protoErr *core.ProtocolError
	assert.ErrorAs(t, err, &protoErr)
}

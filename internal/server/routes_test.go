package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	s := &Server{}
	server := httptest.NewServer(http.HandlerFunc(s.HelloWorldHandler))
	defer server.Close()
	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("error making request to server. Err: %v", err)
	}
	defer resp.Body.Close()
	// Assertions
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status OK; got %v", resp.Status)
	}
	expected := "{\"message\":\"Hello World\"}"
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("error reading response body. Err: %v", err)
	}
	if expected != string(body) {
		t.Errorf("expected response body to be %v; got %v", expected, string(body))
	}
}

func TestHealthWithoutDatabase(t *testing.T) {
	s := &Server{}
	server := httptest.NewServer(http.HandlerFunc(s.healthHandler))
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestLeaderboardWithoutStore(t *testing.T) {
	s := &Server{}
	server := httptest.NewServer(http.HandlerFunc(s.leaderboardHandler))
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestWebSocketPingPong(t *testing.T) {
	assert := assert.New(t)

	ctx := context.Background()
	_, url, cleanup := setupTestServer()
	defer cleanup()

	conn, _, err := websocket.Dial(ctx, url, nil)
	assert.NoError(err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	sendClientMessage(t, ctx, conn, EventPing, struct{}{})

	response := readServerMessage(t, ctx, conn)
	assert.Equal(EventPong, response.Type)
}

func TestWebSocketInvalidJSON(t *testing.T) {
	assert := assert.New(t)

	ctx := context.Background()
	_, url, cleanup := setupTestServer()
	defer cleanup()

	conn, _, err := websocket.Dial(ctx, url, nil)
	assert.NoError(err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	err = conn.Write(ctx, websocket.MessageText, []byte("junk"))
	assert.NoErrorf(err, "Failed to send junk")

	response := readServerMessage(t, ctx, conn)
	assert.Equal(EventErrorMessage, response.Type)

	// Ping to ensure the connection didn't close
	sendClientMessage(t, ctx, conn, EventPing, struct{}{})
	response = readServerMessage(t, ctx, conn)
	assert.Equal(EventPong, response.Type)
}

func TestWebSocketUnknownMessageType(t *testing.T) {
	assert := assert.New(t)

	ctx := context.Background()
	_, url, cleanup := setupTestServer()
	defer cleanup()

	conn, _, err := websocket.Dial(ctx, url, nil)
	assert.NoError(err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	sendClientMessage(t, ctx, conn, "shout", struct{}{})

	response := readServerMessage(t, ctx, conn)
	assert.Equal(EventErrorMessage, response.Type)

	var errText string
	decodePayload(t, response, &errText)
	assert.Contains(errText, "INVALID_MESSAGE_TYPE:")
}

func TestWebSocketRateLimited(t *testing.T) {
	assert := assert.New(t)

	ctx := context.Background()
	s := &Server{
		connectionManager: NewConnectionManager(),
		roomManager:       NewRoomManager(),
		rateLimiter:       NewRateLimiter(2, time.Second),
	}
	server := httptest.NewServer(http.HandlerFunc(s.websocketHandler))
	defer server.Close()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/websocket"

	conn, _, err := websocket.Dial(ctx, url, nil)
	assert.NoError(err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	for i := 0; i < 3; i++ {
		sendClientMessage(t, ctx, conn, EventPing, struct{}{})
	}

	assert.Equal(EventPong, readServerMessage(t, ctx, conn).Type)
	assert.Equal(EventPong, readServerMessage(t, ctx, conn).Type)

	response := readServerMessage(t, ctx, conn)
	assert.Equal(EventErrorMessage, response.Type)

	var errText string
	decodePayload(t, response, &errText)
	assert.Contains(errText, "RATE_LIMITED:")
}

func TestWebsocketConnectionRegistration(t *testing.T) {
	assert := assert.New(t)

	ctx := context.Background()
	s, url, cleanup := setupTestServer()
	defer cleanup()

	conn, _, err := websocket.Dial(ctx, url, nil)
	assert.NoError(err)

	assert.Eventually(func() bool {
		s.connectionManager.mu.RLock()
		defer s.connectionManager.mu.RUnlock()
		return len(s.connectionManager.connections) == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close(websocket.StatusNormalClosure, "")

	assert.Eventually(func() bool {
		s.connectionManager.mu.RLock()
		defer s.connectionManager.mu.RUnlock()
		return len(s.connectionManager.connections) == 0
	}, time.Second, 10*time.Millisecond)
}

// setupTestServer starts a websocket-only server with no database; match
// recording is skipped when the history store is absent.
func setupTestServer() (*Server, string, func()) {
	s := &Server{
		connectionManager: NewConnectionManager(),
		roomManager:       NewRoomManager(),
		rateLimiter:       NewRateLimiter(100, time.Second),
	}

	server := httptest.NewServer(http.HandlerFunc(s.websocketHandler))
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/websocket"

	cleanup := func() {
		server.Close()
	}

	return s, url, cleanup
}

func mustMarshal(v interface{}) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

func sendClientMessage(t *testing.T, ctx context.Context, conn *websocket.Conn, msgType string, payload interface{}) {
	t.Helper()
	req := ClientMessage{
		Type:    msgType,
		Payload: mustMarshal(payload),
	}
	require.NoError(t, conn.Write(ctx, websocket.MessageText, mustMarshal(req)))
}

func readServerMessage(t *testing.T, ctx context.Context, conn *websocket.Conn) ServerMessage {
	t.Helper()

	readCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, data, err := conn.Read(readCtx)
	require.NoError(t, err, "expected a server message")

	var msg ServerMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

// decodePayload re-marshals a generic payload into its concrete shape.
func decodePayload(t *testing.T, msg ServerMessage, out interface{}) {
	t.Helper()
	data, err := json.Marshal(msg.Payload)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

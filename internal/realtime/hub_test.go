package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/warehouse-inventory/internal/middleware"
	"github.com/tair/warehouse-inventory/internal/notify"
	"github.com/tair/warehouse-inventory/pkg/auth"
)

func newHubServer(t *testing.T) (*Hub, *httptest.Server, *auth.TokenManager) {
	t.Helper()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	hub := NewHub(middleware.NewAuthenticator(tokens, nil), nil)

	router := mux.NewRouter()
	hub.RegisterRoutes(router)
	server := httptest.NewServer(router)
	t.Cleanup(func() {
		hub.Close()
		server.Close()
	})
	return hub, server, tokens
}

func wsURL(server *httptest.Server, token string) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?token=" + token
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Clients() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHubBroadcastsEvents(t *testing.T) {
	hub, server, tokens := newHubServer(t)
	token, err := tokens.GenerateToken("u1", "u1@example.com", auth.RoleUser)
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, token), nil)
	require.NoError(t, err)
	defer conn.Close()
	waitForClients(t, hub, 1)

	event := notify.NewEvent(notify.EventAlertsNew, map[string]int{"count": 2})
	require.NoError(t, hub.Publish(context.Background(), event))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, body, err := conn.ReadMessage()
	require.NoError(t, err)

	var got struct {
		ID      string         `json:"id"`
		Event   string         `json:"event"`
		Payload map[string]int `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, notify.EventAlertsNew, got.Event)
	assert.Equal(t, 2, got.Payload["count"])
}

func TestHubRejectsMissingOrInvalidToken(t *testing.T) {
	_, server, _ := newHubServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(server, ""), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(wsURL(server, "garbage"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHubDropsClientOnDisconnect(t *testing.T) {
	hub, server, tokens := newHubServer(t)
	token, err := tokens.GenerateToken("u1", "u1@example.com", auth.RoleUser)
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, token), nil)
	require.NoError(t, err)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	hub, server, tokens := newHubServer(t)
	token, err := tokens.GenerateToken("u1", "u1@example.com", auth.RoleUser)
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, token), nil)
	require.NoError(t, err)
	defer conn.Close()
	waitForClients(t, hub, 1)

	hub.Close()
	assert.Equal(t, 0, hub.Clients())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://app.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Origin", "https://app.example.com")
	assert.True(t, check(req))

	req.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, check(req))

	assert.True(t, originChecker([]string{"*"})(req))
}

package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"motelhub/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var secret = []byte("ws-secret")

func newServer(t *testing.T, hub *Hub) *httptest.Server {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", func(c *gin.Context) { ServeWs(hub, c, secret) })
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server, token string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + token
}

func TestSendToUserReachesOnlyThatUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zap.NewNop())
	go hub.Run(ctx)
	srv := newServer(t, hub)

	alice, bob := uuid.New(), uuid.New()
	aliceToken, err := auth.IssueToken(secret, alice, "tenant", time.Hour)
	require.NoError(t, err)
	bobToken, err := auth.IssueToken(secret, bob, "landlord", time.Hour)
	require.NoError(t, err)

	aliceConn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, aliceToken), nil)
	require.NoError(t, err)
	defer aliceConn.Close()
	bobConn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, bobToken), nil)
	require.NoError(t, err)
	defer bobConn.Close()

	require.Eventually(t, func() bool {
		return hub.Connections(alice.String()) == 1 && hub.Connections(bob.String()) == 1
	}, time.Second, 10*time.Millisecond)

	hub.SendToUser(bob.String(), []byte(`{"type":"PAYMENT_RECEIVED"}`))

	_ = bobConn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := bobConn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"PAYMENT_RECEIVED"}`, string(msg))

	_ = aliceConn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err = aliceConn.ReadMessage()
	assert.Error(t, err, "alice must not receive bob's message")
}

func TestServeWsRejectsMissingOrBadToken(t *testing.T) {
	hub := NewHub(zap.NewNop())
	srv := newServer(t, hub)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, ""), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(wsURL(srv, "not-a-jwt"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

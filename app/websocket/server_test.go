package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	srv := NewServer(":0", false)
	srv.Run()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Stop()
		ts.Close()
	})
	return srv, "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?type=display"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads messages until one of the wanted type arrives
func readUntil(t *testing.T, conn *websocket.Conn, want MessageType) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		if msg.Type == want {
			return msg
		}
	}
}

func TestDisplayReceivesInvoice(t *testing.T) {
	srv, url := newTestServer(t)
	conn := dial(t, url)
	readUntil(t, conn, TypeWelcome)

	srv.BroadcastInvoice(map[string]string{"grand_total_text": "2,500"})

	msg := readUntil(t, conn, TypeInvoicePreview)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(msg.Data, &payload))
	assert.Equal(t, "2,500", payload["grand_total_text"])

	srv.BroadcastInvoiceClosed()
	readUntil(t, conn, TypeInvoiceClosed)
}

func TestLateDisplayGetsCurrentInvoice(t *testing.T) {
	srv, url := newTestServer(t)
	srv.BroadcastInvoice(map[string]string{"customer_label": "Customer #1"})

	conn := dial(t, url)
	msg := readUntil(t, conn, TypeInvoicePreview)
	assert.Contains(t, string(msg.Data), "Customer #1")
}

func TestHeartbeatReply(t *testing.T) {
	_, url := newTestServer(t)
	conn := dial(t, url)
	readUntil(t, conn, TypeWelcome)

	require.NoError(t, conn.WriteJSON(Message{Type: TypeHeartbeat, Timestamp: time.Now()}))
	msg := readUntil(t, conn, TypeHeartbeat)
	assert.JSONEq(t, `{"status":"alive"}`, string(msg.Data))
}

func TestHealthAndStatus(t *testing.T) {
	srv, url := newTestServer(t)
	conn := dial(t, url)
	readUntil(t, conn, TypeWelcome)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)

	status := srv.GetServerStatus()
	assert.Equal(t, 1, status["display_clients"])
	assert.Equal(t, ":0", srv.GetPort())
}

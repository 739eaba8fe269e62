package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vango-dev/routeview/pkg/middleware"
)

func dial(t *testing.T, srv *Server, path string) (*websocket.Conn, func()) {
	t.Helper()
	ts := httptest.NewServer(srv)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + WebSocketPath + "?path=" + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		ts.Close()
		t.Fatalf("Dial: %v", err)
	}
	return conn, func() {
		conn.Close()
		ts.Close()
	}
}

// readUntil reads render messages until one contains want.
func readUntil(t *testing.T, conn *websocket.Conn, want string) ServerMessage {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for {
		conn.SetReadDeadline(deadline)
		var msg ServerMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for %q: %v", want, err)
		}
		if msg.Type == MsgRender && strings.Contains(msg.HTML, want) {
			return msg
		}
	}
}

func TestSessionRendersAndNavigates(t *testing.T) {
	srv := newTestServer(t)
	conn, cleanup := dial(t, srv, "/")
	defer cleanup()

	first := readUntil(t, conn, "<p>home</p>")
	if first.Path != "/" || first.Session == "" {
		t.Errorf("first render = %+v", first)
	}

	if err := conn.WriteJSON(ClientMessage{Type: MsgNavigate, Path: "/users/9"}); err != nil {
		t.Fatal(err)
	}
	msg := readUntil(t, conn, "loaded-user")
	if msg.Path != "/users/9" {
		t.Errorf("path = %q, want /users/9", msg.Path)
	}
	if msg.Sequence <= first.Sequence {
		t.Errorf("sequence did not advance: %d then %d", first.Sequence, msg.Sequence)
	}

	if err := conn.WriteJSON(ClientMessage{Type: MsgBack}); err != nil {
		t.Fatal(err)
	}
	readUntil(t, conn, "<p>home</p>")
}

func TestSessionRedirect(t *testing.T) {
	srv := newTestServer(t)
	conn, cleanup := dial(t, srv, "/old/5")
	defer cleanup()

	msg := readUntil(t, conn, "<p>user 5")
	if msg.Path != "/users/5" {
		t.Errorf("path = %q, want /users/5", msg.Path)
	}
}

func TestSessionMalformedMessage(t *testing.T) {
	srv := newTestServer(t)
	conn, cleanup := dial(t, srv, "/")
	defer cleanup()
	readUntil(t, conn, "<p>home</p>")

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		var msg ServerMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("ReadJSON: %v", err)
		}
		if msg.Type == MsgError {
			if !strings.Contains(msg.Message, "malformed") {
				t.Errorf("error message = %q", msg.Message)
			}
			return
		}
	}
}

func TestSessionMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(middleware.WithRegistry(reg))
	srv := newTestServer(t, func(c *Config) {
		c.Metrics = metrics
		c.Gatherer = reg
	})

	conn, cleanup := dial(t, srv, "/")
	readUntil(t, conn, "<p>home</p>")
	if got := srv.SessionCount(); got != 1 {
		t.Errorf("SessionCount() = %d, want 1", got)
	}
	cleanup()

	deadline := time.Now().Add(3 * time.Second)
	for srv.SessionCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := srv.SessionCount(); got != 0 {
		t.Fatalf("SessionCount() = %d after close", got)
	}
	if n := testutil.CollectAndCount(reg, "routeview_active_sessions"); n != 1 {
		t.Errorf("active_sessions series = %d, want 1", n)
	}
}

func TestSessionRejectsAbsoluteURL(t *testing.T) {
	srv := newTestServer(t)
	conn, cleanup := dial(t, srv, "/")
	defer cleanup()
	readUntil(t, conn, "<p>home</p>")

	if err := conn.WriteJSON(ClientMessage{Type: MsgNavigate, Path: "https://evil.example/"}); err != nil {
		t.Fatal(err)
	}
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		var msg ServerMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("ReadJSON: %v", err)
		}
		if msg.Type == MsgError {
			if msg.Path != "https://evil.example/" {
				t.Errorf("error path = %q", msg.Path)
			}
			return
		}
		if msg.Type == MsgRender && !strings.Contains(msg.HTML, "<p>home</p>") {
			t.Fatalf("session navigated away: %q", msg.HTML)
		}
	}
}

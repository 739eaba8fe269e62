package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	routeview "github.com/vango-dev/routeview"
	"github.com/vango-dev/routeview/internal/errors"
	"github.com/vango-dev/routeview/pkg/history"
	"github.com/vango-dev/routeview/pkg/render"
	"github.com/vango-dev/routeview/pkg/routepath"
)

// Message types exchanged over the session socket.
const (
	MsgNavigate = "navigate"
	MsgPreload  = "preload"
	MsgBack     = "back"
	MsgForward  = "forward"
	MsgRender   = "render"
	MsgError    = "error"
)

// ClientMessage is sent by the browser.
type ClientMessage struct {
	Type    string `json:"type"`
	Path    string `json:"path,omitempty"`
	Replace bool   `json:"replace,omitempty"`
}

// ServerMessage is sent to the browser.
type ServerMessage struct {
	Type     string `json:"type"`
	Session  string `json:"session,omitempty"`
	Path     string `json:"path,omitempty"`
	HTML     string `json:"html,omitempty"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
	Sequence uint64 `json:"seq,omitempty"`
}

// Session is a live connection driving one mounted App.
type Session struct {
	id     string
	server *Server
	conn   *websocket.Conn
	logger *slog.Logger

	app     *routeview.App
	history *history.Memory
	target  *render.Element

	writeMu sync.Mutex
	seq     uint64

	closeOnce sync.Once
	done      chan struct{}
}

// HandleWebSocket upgrades the request and runs a session until the
// connection closes. The "path" query parameter is the initial location.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	initial, err := routepath.NavigationPath(r.URL.Query().Get("path"))
	if err != nil {
		initial = s.config.Basename
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(s.config.MaxMessageSize)

	sess := &Session{
		id:      uuid.NewString(),
		server:  s,
		conn:    conn,
		history: history.NewMemory(history.MemoryOptions{InitialEntries: []string{initial}}),
		target:  render.NewElement(s.config.MountID),
		done:    make(chan struct{}),
	}
	sess.logger = s.logger.With("session", sess.id[:8])

	app, err := routeview.RenderClient(s.appConfig(r.Context(), routeview.Config{
		History:   sess.history,
		Target:    sess.target,
		Registry:  render.NewRegistry(),
		UseStream: s.config.UseStream,
		OnPaint:   sess.sendRender,
	}))
	if err != nil {
		sess.sendError(err)
		conn.Close()
		return
	}
	sess.app = app

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	if s.config.Metrics != nil {
		s.config.Metrics.RecordSessionOpen()
	}
	sess.logger.Info("session opened", "path", initial)

	go sess.WriteLoop()
	sess.ReadLoop()
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// App returns the app driven by the session.
func (s *Session) App() *routeview.App { return s.app }

// ReadLoop reads client messages until the connection closes.
func (s *Session) ReadLoop() {
	defer s.Close()

	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.server.config.ReadTimeout))
	})

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.server.config.ReadTimeout))

		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Warn("message decode error", "error", err)
			s.send(ServerMessage{Type: MsgError, Message: "malformed message: " + err.Error()})
			continue
		}
		s.handle(msg)
	}
}

func (s *Session) handle(msg ClientMessage) {
	switch msg.Type {
	case MsgNavigate:
		to, err := routepath.NavigationPath(msg.Path)
		if err != nil {
			s.send(ServerMessage{Type: MsgError, Path: msg.Path, Message: err.Error()})
			return
		}
		s.app.Dispatch(func() {
			if msg.Replace {
				s.history.Replace(to, nil)
			} else {
				s.history.Push(to, nil)
			}
		})

	case MsgPreload:
		to, err := routepath.NavigationPath(msg.Path)
		if err != nil {
			s.send(ServerMessage{Type: MsgError, Path: msg.Path, Message: err.Error()})
			return
		}
		s.app.Dispatch(func() { s.app.Preload(to) })

	case MsgBack:
		s.app.Dispatch(s.history.Back)

	case MsgForward:
		s.app.Dispatch(s.history.Forward)

	default:
		s.logger.Warn("unknown message type", "type", msg.Type)
	}
}

// WriteLoop sends heartbeat pings until the session closes.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.server.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deadline := time.Now().Add(s.server.config.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				s.logger.Debug("ping failed", "error", err)
				s.Close()
				return
			}

		case <-s.done:
			return
		}
	}
}

// sendRender pushes the painted HTML. It runs on the app event loop.
func (s *Session) sendRender() {
	s.send(ServerMessage{
		Type:    MsgRender,
		Session: s.id,
		Path:    s.history.Location().String(),
		HTML:    s.target.InnerHTML(),
	})
}

func (s *Session) sendError(err error) {
	msg := ServerMessage{Type: MsgError, Message: err.Error()}
	if code := errors.Code(err); code != "" {
		msg.Code = code
	}
	s.send(msg)
}

func (s *Session) send(msg ServerMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.seq++
	msg.Sequence = s.seq
	s.conn.SetWriteDeadline(time.Now().Add(s.server.config.WriteTimeout))
	if err := s.conn.WriteJSON(msg); err != nil {
		s.logger.Debug("write failed", "type", msg.Type, "error", err)
	}
}

// Close unmounts the app and closes the connection. It is safe to call
// more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		if s.app != nil {
			s.app.Unmount()
		}

		s.writeMu.Lock()
		s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		s.writeMu.Unlock()
		s.conn.Close()

		srv := s.server
		srv.mu.Lock()
		_, tracked := srv.sessions[s.id]
		delete(srv.sessions, s.id)
		srv.mu.Unlock()
		if tracked && srv.config.Metrics != nil {
			srv.config.Metrics.RecordSessionClose()
		}
		s.logger.Info("session closed")
	})
}

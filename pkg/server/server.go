package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	routeview "github.com/vango-dev/routeview"
	"github.com/vango-dev/routeview/pkg/routes"
)

// Server renders a routeview app for HTTP requests and live sessions.
type Server struct {
	config Config
	logger *slog.Logger

	site atomic.Pointer[site]

	router   chi.Router
	upgrader websocket.Upgrader

	mu         sync.Mutex
	sessions   map[string]*Session
	httpServer *http.Server
}

// site is the route table and components currently served.
type site struct {
	routes     *routes.Table
	components routes.Components
}

// New creates a Server from config.
func New(config Config) *Server {
	config = config.withDefaults()
	s := &Server{
		config:   config,
		logger:   config.Logger.With("component", "server"),
		sessions: make(map[string]*Session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
	}
	s.site.Store(&site{routes: config.Routes, components: config.Components})
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	if s.config.Metrics != nil {
		r.Method(http.MethodGet, s.config.MetricsPath,
			promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Get(WebSocketPath, s.HandleWebSocket)
	r.Get("/*", s.HandlePage)
	return r
}

// SetSite replaces the route table and components. Pages rendered and
// sessions opened afterwards use the new site; open sessions keep theirs.
func (s *Server) SetSite(table *routes.Table, components routes.Components) {
	if table == nil {
		table = routes.MustTable()
	}
	s.site.Store(&site{routes: table, components: components})
	s.logger.Info("site reloaded", "routes", table.Len())
}

// appConfig returns the App configuration shared by pages and sessions.
func (s *Server) appConfig(ctx context.Context, h routeview.Config) routeview.Config {
	cur := s.site.Load()
	h.Routes = cur.routes
	h.Components = cur.components
	h.Basename = s.config.Basename
	h.Logger = s.logger
	h.Context = ctx
	h.LoaderMiddleware = s.config.LoaderMiddleware
	h.Hooks = s.config.Hooks
	if m := s.config.Metrics; m != nil {
		h.LoaderMiddleware = append([]routes.LoaderMiddleware{m.Loader()}, h.LoaderMiddleware...)
		h.Hooks = routes.MergeHooks(m.Hooks(), h.Hooks)
	}
	return h
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on addr and blocks until the listener fails or the process
// receives SIGINT or SIGTERM.
func (s *Server) Run(addr string) error {
	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: s.config.WriteTimeout,
	}
	srv := s.httpServer
	s.mu.Unlock()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil

	case <-shutdown:
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every live session and gracefully stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	srv := s.httpServer
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}

	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Config returns the server configuration.
func (s *Server) Config() Config {
	return s.config
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

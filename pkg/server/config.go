package server

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/routeview/pkg/middleware"
	"github.com/vango-dev/routeview/pkg/routes"
)

// WebSocketPath is the path of the live session endpoint.
const WebSocketPath = "/_routeview/ws"

// Config configures a Server.
type Config struct {
	// Routes is the route table.
	Routes *routes.Table

	// Components maps route ids to the components that render them.
	Components routes.Components

	// Basename is the URL prefix the routes live under.
	// Default: "/".
	Basename string

	// Title is the document title of rendered pages.
	Title string

	// MountID is the id of the element pages render the app into.
	// Default: "root".
	MountID string

	// Scripts are script URLs appended to rendered pages.
	Scripts []string

	// UseStream shows loading placeholders in live sessions.
	// Pages are always rendered with every lazy component resolved.
	UseStream *bool

	// LoaderMiddleware wraps every loader call.
	LoaderMiddleware []routes.LoaderMiddleware

	// Hooks observe route changes of every page and session.
	Hooks routes.Hooks

	// Metrics records renders, loads and sessions. Nil disables metrics.
	Metrics *middleware.Metrics

	// MetricsPath is where the metrics are exposed when Metrics is set.
	// Default: "/metrics".
	MetricsPath string

	// Gatherer is scraped at MetricsPath.
	// Default: prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// CheckOrigin validates the Origin header of WebSocket upgrades.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	// ReadTimeout is the maximum time to wait for a client message.
	// Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a message.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// HeartbeatInterval is the time between pings.
	// Default: 30 seconds.
	HeartbeatInterval time.Duration

	// MaxMessageSize is the maximum size of a client message.
	// Default: 64KB.
	MaxMessageSize int64

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 30 seconds.
	ShutdownTimeout time.Duration

	// Logger is the structured logger.
	// Default: slog.Default().
	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Basename == "" {
		c.Basename = "/"
	}
	if c.MountID == "" {
		c.MountID = "root"
	}
	if c.MetricsPath == "" {
		c.MetricsPath = "/metrics"
	}
	if c.Gatherer == nil {
		c.Gatherer = prometheus.DefaultGatherer
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = SameOriginCheck
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 60 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.HeartbeatInterval == 0 {
		c.HeartbeatInterval = 30 * time.Second
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = 64 * 1024
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Routes == nil {
		c.Routes = routes.MustTable()
	}
	return c
}

// SameOriginCheck accepts WebSocket upgrades whose Origin host matches the
// request host, and requests without an Origin header.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return r.Host != "" && u.Host == r.Host
}

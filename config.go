package routeview

import (
	"context"
	"log/slog"

	"github.com/vango-dev/routeview/pkg/history"
	"github.com/vango-dev/routeview/pkg/render"
	"github.com/vango-dev/routeview/pkg/routes"
)

// =============================================================================
// Configuration Types
// =============================================================================

// Config configures RenderClient.
type Config struct {
	// Routes is the route table. A nil table renders nothing.
	Routes *routes.Table

	// Components maps route ids to the components that render them.
	Components routes.Components

	// History is the navigation history. Required.
	History history.History

	// Target is the element to mount into. When nil, TargetID is looked up
	// in Document.
	Target *render.Element

	// Document resolves TargetID when Target is nil.
	Document *render.Document

	// TargetID is the id of the mount element.
	// Default: "root".
	TargetID string

	// Basename is the URL prefix the routes live under.
	// Default: "/".
	Basename string

	// Loading is shown while lazy route components load.
	// Default: an empty div.
	Loading routes.Component

	// UseStream wraps route components in Suspense boundaries so lazy
	// components show Loading instead of blocking the render.
	// Default: true.
	UseStream *bool

	// Callback is invoked once, after the first paint of a mounted app.
	Callback func()

	// OnPaint is invoked on the event loop after every paint of a mounted
	// app, including the first.
	OnPaint func()

	// ComponentsOnly returns the composed app without mounting it.
	ComponentsOnly bool

	// Logger is the structured logger for the app.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// LoaderMiddleware wraps every loader call, first outermost.
	LoaderMiddleware []routes.LoaderMiddleware

	// Hooks observe route changes and the built route tree.
	Hooks routes.Hooks

	// Registry tracks render roots.
	// Default: render.DefaultRegistry.
	Registry *render.Registry

	// Context is passed to loaders and lazy components. Unmount cancels
	// the context derived from it.
	// Default: context.Background().
	Context context.Context
}

// DefaultTargetID is the mount element id used when none is configured.
const DefaultTargetID = "root"

func (c Config) withDefaults() Config {
	if c.TargetID == "" {
		c.TargetID = DefaultTargetID
	}
	if c.Basename == "" {
		c.Basename = "/"
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Registry == nil {
		c.Registry = render.DefaultRegistry
	}
	if c.Context == nil {
		c.Context = context.Background()
	}
	if c.Routes == nil {
		c.Routes = routes.MustTable()
	}
	return c
}

// Bool returns a pointer to b, for optional settings such as UseStream.
func Bool(b bool) *bool {
	return &b
}

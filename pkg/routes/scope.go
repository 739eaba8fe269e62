package routes

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vango-dev/routeview/internal/errors"
	"github.com/vango-dev/routeview/pkg/history"
	"github.com/vango-dev/routeview/pkg/render"
	"github.com/vango-dev/routeview/pkg/vdom"
)

// AppData is the app-wide state shared by every scope of a render.
type AppData struct {
	// Routes is the route table the app was built from.
	Routes *Table

	// Components is the component map the app was built from.
	Components Components

	// ClientRoutes is the built route tree.
	ClientRoutes []*ClientRoute

	// Basename is the URL prefix the routes live under.
	Basename string

	// History is the navigation history.
	History history.History

	// Target is the mount target, nil for unmounted renders.
	Target *render.Element

	// Preload starts the loaders of the routes matching a path.
	Preload func(path string)

	// Cache holds loader data per route id.
	Cache *Cache
}

// LoaderData returns the data of every resolved loader keyed by route id.
func (a *AppData) LoaderData() map[string]any {
	if a == nil || a.Cache == nil {
		return map[string]any{}
	}
	return a.Cache.Snapshot()
}

// NavigateOptions configures a navigation.
type NavigateOptions struct {
	// Replace replaces the current history entry instead of pushing.
	Replace bool

	// State is attached to the new history entry.
	State any
}

// NavigateOption is a functional option for Navigate.
type NavigateOption func(*NavigateOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// WithState attaches state to the new history entry.
func WithState(state any) NavigateOption {
	return func(o *NavigateOptions) {
		o.State = state
	}
}

// NavigationRequest is a navigation queued during a render.
type NavigationRequest struct {
	Path    string
	Options NavigateOptions
}

// ScopeOptions configures NewScope.
type ScopeOptions struct {
	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Invalidate asks the owner of the render to render again.
	Invalidate func()
}

// renderState is shared by all scopes derived from one root scope.
type renderState struct {
	logger     *slog.Logger
	invalidate func()

	mu      sync.Mutex
	pending *NavigationRequest
}

// Scope is the context a component renders in. It is passed explicitly to
// every Component.Render and carries the app data, the current location and
// matches, and the route that encloses the component.
type Scope struct {
	ctx     context.Context
	app     *AppData
	route   *Route
	loc     history.Location
	matches []Match
	depth   int
	state   *renderState
}

// NewScope creates the root scope of a render pass.
func NewScope(ctx context.Context, app *AppData, loc history.Location, matches []Match, opts ScopeOptions) *Scope {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Scope{
		ctx:     ctx,
		app:     app,
		loc:     loc,
		matches: matches,
		state: &renderState{
			logger:     opts.Logger,
			invalidate: opts.Invalidate,
		},
	}
}

func (s *Scope) clone() *Scope {
	c := *s
	return &c
}

func (s *Scope) withRoute(r *Route) *Scope {
	c := s.clone()
	c.route = r
	return c
}

func (s *Scope) logger() *slog.Logger {
	if s == nil || s.state == nil {
		return slog.Default()
	}
	return s.state.logger
}

// Context returns the context of the render.
func (s *Scope) Context() context.Context {
	if s == nil || s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

// App returns the app data. It fails with R002 for scopes not created by an app.
func (s *Scope) App() (*AppData, error) {
	if s == nil || s.app == nil {
		return nil, errors.New("R002")
	}
	return s.app, nil
}

// RouteData returns the route enclosing the component.
// It fails with ErrNoRouteScope outside a route element.
func (s *Scope) RouteData() (*Route, error) {
	if s == nil || s.route == nil {
		return nil, errors.New("R001")
	}
	return s.route, nil
}

// Location returns the current location.
func (s *Scope) Location() history.Location {
	return s.loc
}

// Params returns the path parameters of the current match.
func (s *Scope) Params() map[string]string {
	if len(s.matches) == 0 {
		return map[string]string{}
	}
	return s.matches[len(s.matches)-1].Params
}

// SelectedRoutes returns the matched routes from root to leaf.
func (s *Scope) SelectedRoutes() []*ClientRoute {
	out := make([]*ClientRoute, len(s.matches))
	for i, m := range s.matches {
		out[i] = m.Route
	}
	return out
}

// Matches returns the current matches from root to leaf.
func (s *Scope) Matches() []Match {
	return s.matches
}

// RouteProps returns the props of the deepest matched route.
func (s *Scope) RouteProps() map[string]any {
	if len(s.matches) == 0 {
		return map[string]any{}
	}
	if props := s.matches[len(s.matches)-1].Route.Props; props != nil {
		return props
	}
	return map[string]any{}
}

// LoaderData returns the loader data of the enclosing route.
// It returns nil data while the loader is absent or loading, and the
// loader's error once it has failed.
func (s *Scope) LoaderData() (any, error) {
	r, err := s.RouteData()
	if err != nil {
		return nil, err
	}
	app, err := s.App()
	if err != nil {
		return nil, err
	}
	if app.Cache == nil {
		return nil, nil
	}
	e := app.Cache.Get(r.ID)
	if e.State == Failed {
		return nil, e.Err
	}
	return e.Data, nil
}

// Routes renders the matched route tree from the root.
func (s *Scope) Routes() *vdom.VNode {
	c := s.clone()
	c.depth = 0
	return c.Outlet()
}

// Outlet renders the next matched route below the enclosing one.
// It renders nothing when the enclosing route is the deepest match.
func (s *Scope) Outlet() *vdom.VNode {
	if s.depth >= len(s.matches) {
		return nil
	}
	m := s.matches[s.depth]
	if m.Route == nil || m.Route.Element == nil {
		return nil
	}
	c := s.clone()
	c.depth = s.depth + 1
	return m.Route.Element.Render(c)
}

// Fetcher returns a fetcher bound to this scope.
func (s *Scope) Fetcher() Fetcher {
	return Fetcher{s: s}
}

// Navigate queues a navigation to run after the render pass.
// The first navigation queued in a pass wins.
func (s *Scope) Navigate(to string, opts ...NavigateOption) {
	var options NavigateOptions
	for _, opt := range opts {
		opt(&options)
	}
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	if s.state.pending != nil {
		return
	}
	s.state.pending = &NavigationRequest{Path: to, Options: options}
}

// Pending returns the navigation queued during the render, or nil.
func (s *Scope) Pending() *NavigationRequest {
	s.state.mu.Lock()
	defer s.state.mu.Unlock()
	return s.state.pending
}

// Invalidate asks the app to render again.
func (s *Scope) Invalidate() {
	if s == nil || s.state == nil || s.state.invalidate == nil {
		return
	}
	s.state.invalidate()
}

// Fetcher preloads route data.
type Fetcher struct {
	s *Scope
}

// Load starts the loaders of the routes matching path without navigating.
// An empty path means the current location.
func (f Fetcher) Load(path string) {
	app, err := f.s.App()
	if err != nil || app.Preload == nil {
		f.s.logger().Warn("fetcher used without an app", "path", path)
		return
	}
	if path == "" {
		path = f.s.Location().Pathname
	}
	app.Preload(path)
}

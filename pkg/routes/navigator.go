package routes

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vango-dev/routeview/pkg/history"
)

// NavigatorConfig configures a Navigator.
type NavigatorConfig struct {
	// Context is passed to loaders. Defaults to context.Background().
	Context context.Context

	// Routes is the built route tree. Hydrating loaders in it start on Start.
	Routes []*ClientRoute

	// Matcher resolves locations. Defaults to NewMatcher(Routes).
	Matcher *Matcher

	// History is the navigation history. Required.
	History history.History

	// Basename is stripped from locations before matching.
	Basename string

	// Cache receives loader data. Defaults to a new cache.
	Cache *Cache

	// Dispatch runs fn on the owner's event loop. Nil runs fn inline.
	Dispatch func(fn func())

	// Middleware wraps every loader call.
	Middleware []LoaderMiddleware

	// Hooks observe route changes.
	Hooks Hooks

	// OnChange runs on the event loop after a location change and after
	// each loader settles.
	OnChange func()

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Navigator keeps the matched routes in step with the history and starts
// the loaders of matched routes.
type Navigator struct {
	config NavigatorConfig

	mu       sync.Mutex
	loc      history.Location
	action   history.Action
	matches  []Match
	started  bool
	unlisten func()
}

// NewNavigator creates a navigator. It does nothing until Start.
func NewNavigator(config NavigatorConfig) *Navigator {
	if config.Context == nil {
		config.Context = context.Background()
	}
	if config.Matcher == nil {
		config.Matcher = NewMatcher(config.Routes)
	}
	if config.Cache == nil {
		config.Cache = NewCache()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Navigator{config: config}
}

// Cache returns the loader data cache.
func (n *Navigator) Cache() *Cache {
	return n.config.Cache
}

// Start handles the current location and subscribes to the history.
// Start must run on the owner's event loop. Calling it twice is a no-op.
func (n *Navigator) Start() {
	n.mu.Lock()
	if n.started {
		n.mu.Unlock()
		return
	}
	n.started = true
	n.mu.Unlock()

	n.hydrate(n.config.Routes)

	h := n.config.History
	n.handle(history.Update{Action: h.Action(), Location: h.Location()}, true)

	unlisten := h.Listen(func(u history.Update) {
		n.dispatch(func() { n.handle(u, false) })
	})
	n.mu.Lock()
	n.unlisten = unlisten
	n.mu.Unlock()
}

// Stop unsubscribes from the history. Loaders already running still write
// their results.
func (n *Navigator) Stop() {
	n.mu.Lock()
	unlisten := n.unlisten
	n.unlisten = nil
	n.mu.Unlock()
	if unlisten != nil {
		unlisten()
	}
}

// Location returns the last handled location.
func (n *Navigator) Location() history.Location {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.loc
}

// Action returns the action of the last handled location.
func (n *Navigator) Action() history.Action {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.action
}

// Matches returns the matches of the last handled location.
func (n *Navigator) Matches() []Match {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.matches
}

// Match resolves a pathname, stripping the basename first.
// Pathnames outside the basename match nothing.
func (n *Navigator) Match(pathname string) []Match {
	rel, ok := StripBasename(pathname, n.config.Basename)
	if !ok {
		return nil
	}
	return n.config.Matcher.Match(rel)
}

// Preload starts the loaders of the routes matching path without
// navigating. Relative paths resolve against the current location.
func (n *Navigator) Preload(path string) []Match {
	loc := history.Resolve(n.Location(), path)
	matches := n.Match(loc.Pathname)
	for _, m := range matches {
		n.ensure(m.Route)
	}
	n.config.Logger.Debug("preload", "path", loc.Pathname, "matches", len(matches))
	return matches
}

func (n *Navigator) handle(u history.Update, first bool) {
	matches := n.Match(u.Location.Pathname)

	n.mu.Lock()
	n.loc = u.Location
	n.action = u.Action
	n.matches = matches
	n.mu.Unlock()

	for _, m := range matches {
		n.ensure(m.Route)
	}

	if len(matches) == 0 {
		n.config.Logger.Warn("no route matches location", "path", u.Location.Pathname)
	}
	if fn := n.config.Hooks.OnRouteChange; fn != nil {
		fn(RouteChange{
			Location: u.Location,
			Action:   u.Action,
			Matches:  matches,
			IsFirst:  first,
			Basename: n.config.Basename,
		})
	}
	n.changed()
}

func (n *Navigator) hydrate(list []*ClientRoute) {
	for _, r := range list {
		if r.Loader != nil && r.Loader.Hydrate {
			n.ensure(r)
		}
		n.hydrate(r.Children)
	}
}

// ensure starts the loader of r unless its cache entry exists.
func (n *Navigator) ensure(r *ClientRoute) {
	if r == nil || r.Loader == nil || r.Loader.Load == nil {
		return
	}
	def := r.def
	if def == nil {
		def = &Route{ID: r.ID, Path: r.Path, Index: r.Index, ParentID: r.ParentID, Loader: r.Loader, Props: r.Props}
	}
	load := Chain(r.Loader.Load, def, n.config.Middleware...)
	logger := n.config.Logger
	id := r.ID

	started := n.config.Cache.Ensure(n.config.Context, id, load, func(settle func()) {
		n.dispatch(func() {
			settle()
			if e := n.config.Cache.Get(id); e.State == Failed {
				logger.Error("route loader failed", "route", id, "code", "R301", "error", e.Err)
			}
			n.changed()
		})
	})
	if started {
		logger.Debug("route loader started", "route", id)
	}
}

func (n *Navigator) dispatch(fn func()) {
	if n.config.Dispatch == nil {
		fn()
		return
	}
	n.config.Dispatch(fn)
}

func (n *Navigator) changed() {
	if n.config.OnChange != nil {
		n.config.OnChange()
	}
}

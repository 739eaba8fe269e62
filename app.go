package routeview

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/vango-dev/routeview/internal/errors"
	"github.com/vango-dev/routeview/pkg/render"
	"github.com/vango-dev/routeview/pkg/routes"
	"github.com/vango-dev/routeview/pkg/vdom"
)

// maxRedirects bounds consecutive redirect navigations without a paint.
const maxRedirects = 10

// =============================================================================
// App Type
// =============================================================================

// App is a composed route tree bound to a history and, once mounted, to a
// render target.
//
// Create an App with RenderClient:
//
//	app, err := routeview.RenderClient(routeview.Config{
//	    Routes:     table,
//	    Components: components,
//	    History:    history.NewMemory(history.MemoryOptions{}),
//	    Document:   doc,
//	})
type App struct {
	id     string
	config Config
	logger *slog.Logger

	tree     []*routes.ClientRoute
	data     *routes.AppData
	nav      *routes.Navigator
	cache    *routes.Cache
	renderer *render.Renderer

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	target    *render.Element
	root      *render.Root
	holder    *render.Holder
	mounted   bool
	disposed  bool
	redirects int

	// queue holds dispatched functions in order; wake signals the loop.
	queueMu  sync.Mutex
	queue    []func()
	wake     chan struct{}
	renderCh chan struct{}
	done     chan struct{}

	callbackOnce sync.Once
}

// RenderClient composes an app from cfg and mounts it, unless
// cfg.ComponentsOnly is set.
func RenderClient(cfg Config) (*App, error) {
	cfg = cfg.withDefaults()
	if cfg.History == nil {
		return nil, errors.New("R403")
	}

	tree, err := routes.Build(cfg.Routes, cfg.Components, routes.BuildOptions{
		Loading:   cfg.Loading,
		UseStream: cfg.UseStream,
		Logger:    cfg.Logger,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Hooks.PatchClientRoutes != nil {
		cfg.Hooks.PatchClientRoutes(tree)
	}

	ctx, cancel := context.WithCancel(cfg.Context)
	a := &App{
		id:         uuid.NewString(),
		config:     cfg,
		tree:       tree,
		cache:      routes.NewCache(),
		renderer:   render.NewRenderer(render.RendererConfig{}),
		ctx:        ctx,
		cancel:     cancel,
		wake:     make(chan struct{}, 1),
		renderCh: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	a.logger = cfg.Logger.With("app", a.id[:8])

	a.nav = routes.NewNavigator(routes.NavigatorConfig{
		Context:    ctx,
		Routes:     tree,
		History:    cfg.History,
		Basename:   cfg.Basename,
		Cache:      a.cache,
		Dispatch:   a.Dispatch,
		Middleware: cfg.LoaderMiddleware,
		Hooks:      cfg.Hooks,
		OnChange:   a.invalidate,
		Logger:     a.logger,
	})
	a.data = &routes.AppData{
		Routes:       cfg.Routes,
		Components:   cfg.Components,
		ClientRoutes: tree,
		Basename:     cfg.Basename,
		History:      cfg.History,
		Preload:      a.Preload,
		Cache:        a.cache,
	}

	target := cfg.Target
	if target == nil && cfg.Document != nil {
		target = cfg.Document.GetElementByID(cfg.TargetID)
	}
	a.target = target
	a.data.Target = target

	if cfg.ComponentsOnly {
		return a, nil
	}
	if target == nil {
		cancel()
		return nil, errors.New("R401").WithDetail("no element with id " + `"` + cfg.TargetID + `"`)
	}

	if err := a.Mount(); err != nil {
		return nil, err
	}
	return a, nil
}

// =============================================================================
// Lifecycle
// =============================================================================

// Mount creates (or reuses) the render root for the target, starts the
// event loop and renders. Mounting a mounted app is a no-op.
func (a *App) Mount() error {
	a.mu.Lock()
	if a.mounted {
		a.mu.Unlock()
		return nil
	}
	if a.disposed {
		a.mu.Unlock()
		return errors.New("R402").WithDetail("the app was unmounted and cannot be mounted again")
	}
	if a.target == nil {
		a.mu.Unlock()
		return errors.New("R401").WithDetail("the app was composed without a target")
	}
	holder, created := a.config.Registry.Acquire(a.target)
	a.holder = holder
	a.root = holder.Root()
	a.mounted = true
	a.mu.Unlock()

	if created {
		a.logger.Debug("render root created", "target", a.target.ID())
	} else {
		a.logger.Debug("render root reused", "target", a.target.ID())
	}

	go a.eventLoop()
	a.Dispatch(a.nav.Start)
	return nil
}

// Unmount stops the event loop, unsubscribes from the history and releases
// the render root, which is disposed once no other app holds it. An
// unmounted app cannot be mounted again.
func (a *App) Unmount() {
	a.mu.Lock()
	if !a.mounted {
		a.mu.Unlock()
		return
	}
	a.mounted = false
	a.disposed = true
	holder := a.holder
	a.mu.Unlock()

	a.nav.Stop()
	a.cancel()
	close(a.done)
	a.config.Registry.Release(holder)
}

// Mounted reports whether the app is mounted.
func (a *App) Mounted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mounted
}

// =============================================================================
// Event Loop
// =============================================================================

// Dispatch runs fn on the app event loop. Before Mount, and for apps
// composed with ComponentsOnly, fn runs on the calling goroutine.
// Dispatch never blocks, so it is safe to call from the loop itself.
func (a *App) Dispatch(fn func()) {
	if !a.Mounted() {
		fn()
		return
	}
	a.queueMu.Lock()
	a.queue = append(a.queue, fn)
	a.queueMu.Unlock()
	select {
	case a.wake <- struct{}{}:
	default:
	}
}

func (a *App) eventLoop() {
	for {
		select {
		case <-a.wake:
			a.drain()

		case <-a.renderCh:
			a.renderDirty()

		case <-a.done:
			return
		}
	}
}

// drain runs queued functions until the queue is empty or the app is
// unmounted.
func (a *App) drain() {
	for {
		a.queueMu.Lock()
		batch := a.queue
		a.queue = nil
		a.queueMu.Unlock()
		if len(batch) == 0 {
			return
		}
		for _, fn := range batch {
			select {
			case <-a.done:
				return
			default:
			}
			a.executeDispatch(fn)
		}
	}
}

// executeDispatch runs fn with panic recovery.
func (a *App) executeDispatch(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("dispatch panic", "panic", r)
		}
	}()
	fn()
}

// invalidate schedules a render on the event loop.
func (a *App) invalidate() {
	if !a.Mounted() {
		return
	}
	select {
	case a.renderCh <- struct{}{}:
	default:
	}
}

// renderDirty renders into the root, or follows the redirect the render
// asked for. It runs on the event loop.
func (a *App) renderDirty() {
	node, req := a.compose()
	if req != nil && a.redirects < maxRedirects {
		a.redirects++
		a.navigate(req)
		return
	}
	if req != nil {
		a.logger.Error("too many redirects", "path", a.nav.Location().Pathname, "to", req.Path)
	}
	a.redirects = 0

	a.mu.Lock()
	holder := a.holder
	a.mu.Unlock()
	if holder == nil {
		return
	}
	if err := holder.Render(node); err != nil {
		a.logger.Error("render failed", "error", err)
		return
	}
	if cb := a.config.Callback; cb != nil {
		a.callbackOnce.Do(cb)
	}
	if a.config.OnPaint != nil {
		a.config.OnPaint()
	}
}

// Sync waits until everything dispatched so far has run, including the
// render it scheduled.
func (a *App) Sync() error {
	if !a.Mounted() {
		return errors.New("R402")
	}
	done := make(chan struct{})
	a.Dispatch(func() {
		select {
		case <-a.renderCh:
			a.renderDirty()
		default:
		}
		close(done)
	})
	select {
	case <-done:
		return nil
	case <-a.done:
		return errors.New("R402")
	}
}

// =============================================================================
// Rendering
// =============================================================================

// compose renders the route tree for the current location.
func (a *App) compose() (*vdom.VNode, *routes.NavigationRequest) {
	s := routes.NewScope(a.ctx, a.data, a.nav.Location(), a.nav.Matches(), routes.ScopeOptions{
		Logger:     a.logger,
		Invalidate: a.invalidate,
	})
	return s.Routes(), s.Pending()
}

// composeSettled renders, following redirects inline. It is used by apps
// that are not mounted, where history listeners run synchronously.
func (a *App) composeSettled() *vdom.VNode {
	a.nav.Start()
	for i := 0; ; i++ {
		node, req := a.compose()
		if req == nil {
			return node
		}
		if i >= maxRedirects {
			a.logger.Error("too many redirects", "path", a.nav.Location().Pathname, "to", req.Path)
			return node
		}
		a.navigate(req)
	}
}

func (a *App) navigate(req *routes.NavigationRequest) {
	to := a.href(req.Path)
	a.logger.Debug("navigate", "to", to, "replace", req.Options.Replace)
	if req.Options.Replace {
		a.config.History.Replace(to, req.Options.State)
	} else {
		a.config.History.Push(to, req.Options.State)
	}
}

// href prefixes absolute paths with the basename.
func (a *App) href(to string) string {
	base := strings.TrimSuffix(a.config.Basename, "/")
	if base == "" || !strings.HasPrefix(to, "/") {
		return to
	}
	return base + to
}

// Render writes the HTML of the app. A mounted app writes what its root
// holds after pending work has run.
func (a *App) Render(w io.Writer) error {
	if a.Mounted() {
		if err := a.Sync(); err != nil {
			return err
		}
		_, err := io.WriteString(w, a.target.InnerHTML())
		return err
	}
	return a.renderer.RenderToWriter(w, a.composeSettled())
}

// HTML returns the rendered HTML of the app.
func (a *App) HTML() (string, error) {
	var buf bytes.Buffer
	if err := a.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Node returns the composed tree of an unmounted app for the current location.
func (a *App) Node() *vdom.VNode {
	return a.composeSettled()
}

// =============================================================================
// Data
// =============================================================================

// Preload starts the loaders of the routes matching path without navigating.
func (a *App) Preload(path string) {
	a.nav.Preload(path)
}

// Load starts the app if needed and waits for the loaders of the matched
// routes. For unmounted apps redirects are followed first.
func (a *App) Load(ctx context.Context) error {
	if !a.Mounted() {
		a.composeSettled()
	} else if err := a.Sync(); err != nil {
		return err
	}
	for _, m := range a.nav.Matches() {
		if _, err := a.cache.Wait(ctx, m.Route.ID); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Accessors
// =============================================================================

// ID returns the app id.
func (a *App) ID() string { return a.id }

// Cache returns the loader data cache.
func (a *App) Cache() *routes.Cache { return a.cache }

// ClientRoutes returns the built route tree.
func (a *App) ClientRoutes() []*routes.ClientRoute { return a.tree }

// Navigator returns the navigation bridge.
func (a *App) Navigator() *routes.Navigator { return a.nav }

// Data returns the app data shared with components.
func (a *App) Data() *routes.AppData { return a.data }

// Root returns the render root, or nil before Mount.
func (a *App) Root() *render.Root {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.root
}

// Target returns the mount target, or nil for apps composed without one.
func (a *App) Target() *render.Element { return a.target }

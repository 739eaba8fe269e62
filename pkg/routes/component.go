package routes

import (
	"context"
	"sync"

	"github.com/vango-dev/routeview/internal/errors"
	"github.com/vango-dev/routeview/pkg/vdom"
)

// Component renders a route.
type Component interface {
	Render(s *Scope) *vdom.VNode
}

// ComponentFunc adapts a function to Component.
type ComponentFunc func(s *Scope) *vdom.VNode

// Render implements Component.
func (f ComponentFunc) Render(s *Scope) *vdom.VNode {
	return f(s)
}

// Components maps route ids to the components that render them.
type Components map[string]Component

// DefaultLoading is the placeholder shown while a lazy component loads.
var DefaultLoading Component = ComponentFunc(func(*Scope) *vdom.VNode {
	return vdom.Div()
})

// Suspender is a component that may not be ready to render yet.
type Suspender interface {
	Component

	// Ready reports whether Render can run without waiting.
	Ready() bool

	// Start begins loading if needed and calls onReady once loading settles.
	Start(ctx context.Context, onReady func())
}

// LazyComponent loads its real component on first use.
type LazyComponent struct {
	load func(ctx context.Context) (Component, error)

	once sync.Once
	done chan struct{}

	mu      sync.Mutex
	comp    Component
	err     error
	waiters []func()
}

var _ Suspender = (*LazyComponent)(nil)

// Lazy creates a component whose implementation is produced by load.
// load runs at most once, on its own goroutine.
func Lazy(load func(ctx context.Context) (Component, error)) *LazyComponent {
	return &LazyComponent{
		load: load,
		done: make(chan struct{}),
	}
}

// Ready implements Suspender.
func (l *LazyComponent) Ready() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// Start implements Suspender.
func (l *LazyComponent) Start(ctx context.Context, onReady func()) {
	if onReady != nil {
		l.mu.Lock()
		if l.Ready() {
			l.mu.Unlock()
			onReady()
		} else {
			l.waiters = append(l.waiters, onReady)
			l.mu.Unlock()
		}
	}
	l.once.Do(func() {
		go l.run(ctx)
	})
}

func (l *LazyComponent) run(ctx context.Context) {
	comp, err := l.load(context.WithoutCancel(ctx))

	l.mu.Lock()
	l.comp, l.err = comp, err
	close(l.done)
	waiters := l.waiters
	l.waiters = nil
	l.mu.Unlock()

	for _, fn := range waiters {
		fn()
	}
}

// Wait blocks until the component has loaded or ctx is done.
func (l *LazyComponent) Wait(ctx context.Context) error {
	l.Start(ctx, nil)
	select {
	case <-l.done:
		l.mu.Lock()
		defer l.mu.Unlock()
		return l.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Render implements Component. Outside a Suspense boundary it waits for the
// component to load.
func (l *LazyComponent) Render(s *Scope) *vdom.VNode {
	if err := l.Wait(s.Context()); err != nil {
		return lazyError(s, err)
	}
	l.mu.Lock()
	comp := l.comp
	l.mu.Unlock()
	if comp == nil {
		return nil
	}
	return comp.Render(s)
}

func lazyError(s *Scope, err error) *vdom.VNode {
	e := errors.New("R202").Wrap(err)
	if r, rerr := s.RouteData(); rerr == nil {
		e = e.WithRoute(r.ID)
	}
	s.logger().Error("lazy component failed", "code", e.Code, "route", e.Route, "error", err)
	return vdom.Div(vdom.Role("alert"), vdom.Data("error", e.Code), vdom.Text(e.FormatCompact()))
}

// Suspense renders fallback while child is a Suspender that is not ready,
// and asks the scope to re-render once it is.
func Suspense(fallback, child Component) Component {
	return &suspense{fallback: fallback, child: child}
}

type suspense struct {
	fallback Component
	child    Component
}

func (b *suspense) Render(s *Scope) *vdom.VNode {
	if sus, ok := b.child.(Suspender); ok && !sus.Ready() {
		sus.Start(s.Context(), s.Invalidate)
		if !sus.Ready() {
			if b.fallback == nil {
				return DefaultLoading.Render(s)
			}
			return b.fallback.Render(s)
		}
	}
	return b.child.Render(s)
}

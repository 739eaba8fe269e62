package render

import (
	"sync"

	"github.com/vango-dev/routeview/pkg/vdom"
)

// Root renders trees into a single target element.
//
// A root may be shared by several holders. The most recently acquired live
// holder paints the target; the others keep their last render and take the
// target back when the holders after them release.
type Root struct {
	target   *Element
	renderer *Renderer

	mu       sync.Mutex
	disposed bool
	holders  []*Holder
}

// Holder is one claim on a shared root.
type Holder struct {
	root     *Root
	html     string
	rendered bool
	released bool
}

// Target returns the element this root renders into.
func (r *Root) Target() *Element {
	return r.target
}

// Render replaces the target content with node.
// Rendering into a disposed root is a no-op.
func (r *Root) Render(node *vdom.VNode) error {
	html, err := r.renderer.RenderToString(node)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed {
		return nil
	}
	r.target.SetInnerHTML(html)
	return nil
}

// Root returns the root h was acquired from.
func (h *Holder) Root() *Root {
	return h.root
}

// Render records node as the content of h and paints it when h is the
// active holder. Rendering through a released holder is a no-op.
func (h *Holder) Render(node *vdom.VNode) error {
	html, err := h.root.renderer.RenderToString(node)
	if err != nil {
		return err
	}
	r := h.root
	r.mu.Lock()
	defer r.mu.Unlock()
	if h.released || r.disposed {
		return nil
	}
	h.html = html
	h.rendered = true
	if r.active() == h {
		r.target.SetInnerHTML(html)
	}
	return nil
}

// Active reports whether h currently paints the target.
func (h *Holder) Active() bool {
	r := h.root
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.disposed && r.active() == h
}

// active returns the holder that paints the target. r.mu must be held.
func (r *Root) active() *Holder {
	if len(r.holders) == 0 {
		return nil
	}
	return r.holders[len(r.holders)-1]
}

// Holders returns the number of live holders.
func (r *Root) Holders() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.holders)
}

// Disposed reports whether the root was disposed.
func (r *Root) Disposed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disposed
}

// Registry tracks render roots by target identity.
type Registry struct {
	mu       sync.Mutex
	roots    map[*Element]*Root
	renderer *Renderer
}

// NewRegistry creates an empty root registry.
func NewRegistry() *Registry {
	return &Registry{
		roots:    make(map[*Element]*Root),
		renderer: NewRenderer(RendererConfig{}),
	}
}

// DefaultRegistry is the process-wide registry used when an app is not
// given one explicitly.
var DefaultRegistry = NewRegistry()

// CreateRoot returns the root for target, creating it on first use.
// created is false when an existing root was reused.
func (g *Registry) CreateRoot(target *Element) (root *Root, created bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if r, ok := g.roots[target]; ok {
		return r, false
	}
	r := &Root{target: target, renderer: g.renderer}
	g.roots[target] = r
	return r, true
}

// Acquire returns a new holder on the root for target, creating the root on
// first use. The new holder becomes the active one.
func (g *Registry) Acquire(target *Element) (h *Holder, created bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.roots[target]
	if !ok {
		r = &Root{target: target, renderer: g.renderer}
		g.roots[target] = r
	}
	h = &Holder{root: r}
	r.mu.Lock()
	r.holders = append(r.holders, h)
	r.mu.Unlock()
	return h, !ok
}

// Release drops h from its root. When h was the active holder the previous
// holder's last render is painted again. The root is disposed once its last
// holder releases; Release reports whether that happened.
func (g *Registry) Release(h *Holder) bool {
	r := h.root
	g.mu.Lock()
	defer g.mu.Unlock()

	r.mu.Lock()
	if h.released {
		r.mu.Unlock()
		return false
	}
	h.released = true
	wasActive := r.active() == h
	for i, x := range r.holders {
		if x == h {
			r.holders = append(r.holders[:i], r.holders[i+1:]...)
			break
		}
	}
	if len(r.holders) > 0 {
		if next := r.active(); wasActive && next.rendered && !r.disposed {
			r.target.SetInnerHTML(next.html)
		}
		r.mu.Unlock()
		return false
	}
	r.mu.Unlock()

	if g.roots[r.target] != r {
		return false
	}
	delete(g.roots, r.target)
	r.mu.Lock()
	r.disposed = true
	r.mu.Unlock()
	r.target.SetInnerHTML("")
	return true
}

// Root returns the root registered for target, or nil.
func (g *Registry) Root(target *Element) *Root {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.roots[target]
}

// Dispose removes the root for target regardless of its holders and clears
// the target content. It reports whether a root was registered.
func (g *Registry) Dispose(target *Element) bool {
	g.mu.Lock()
	r, ok := g.roots[target]
	delete(g.roots, target)
	g.mu.Unlock()
	if !ok {
		return false
	}
	r.mu.Lock()
	r.disposed = true
	for _, h := range r.holders {
		h.released = true
	}
	r.holders = nil
	r.mu.Unlock()
	target.SetInnerHTML("")
	return true
}

// Len returns the number of live roots.
func (g *Registry) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.roots)
}

package routes

import (
	"log/slog"
	"strings"

	"github.com/vango-dev/routeview/internal/errors"
	"github.com/vango-dev/routeview/pkg/vdom"
)

// ClientRoute is a route prepared for rendering: the route attributes minus
// the redirect target, plus its Element and nested children.
type ClientRoute struct {
	ID       string
	Path     string
	Index    bool
	ParentID string
	Loader   *Loader
	Props    map[string]any

	// Element renders the route.
	Element Component

	// Children are the nested routes in table order. Nil for leaves.
	Children []*ClientRoute

	def *Route
}

// Routes returns Children. Layout components that walk the tree by
// "routes" use this name.
func (c *ClientRoute) Routes() []*ClientRoute {
	return c.Children
}

// Definition returns the table route this client route was built from.
func (c *ClientRoute) Definition() *Route {
	return c.def
}

// IsRedirect reports whether the route renders a redirect.
func (c *ClientRoute) IsRedirect() bool {
	return c.def != nil && c.def.Redirect != ""
}

// BuildOptions configures Build.
type BuildOptions struct {
	// Loading is the placeholder shown by Suspense boundaries.
	// Defaults to DefaultLoading.
	Loading Component

	// UseStream wraps route components in Suspense boundaries.
	// Defaults to true.
	UseStream *bool

	// Logger receives build warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

func (o BuildOptions) stream() bool {
	return o.UseStream == nil || *o.UseStream
}

// Build converts a route table into a forest of client routes.
//
// Routes without a parent, or whose parent id is not in the table, become
// roots. Siblings keep table order. Parent chains that loop are rejected
// with ErrCycle.
func Build(table *Table, components Components, opts BuildOptions) ([]*ClientRoute, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Loading == nil {
		opts.Loading = DefaultLoading
	}
	if err := checkCycles(table); err != nil {
		return nil, err
	}

	groups := make(map[string][]*Route)
	table.Each(func(r *Route) bool {
		key := r.ParentID
		if key != "" && table.Get(key) == nil {
			key = ""
		}
		groups[key] = append(groups[key], r)
		return true
	})

	b := &builder{groups: groups, components: components, opts: opts}
	return b.build(""), nil
}

type builder struct {
	groups     map[string][]*Route
	components Components
	opts       BuildOptions
}

func (b *builder) build(parent string) []*ClientRoute {
	group := b.groups[parent]
	if len(group) == 0 {
		return nil
	}
	out := make([]*ClientRoute, 0, len(group))
	for _, r := range group {
		cr := b.clientRoute(r)
		if children := b.build(r.ID); len(children) > 0 {
			cr.Children = children
		}
		out = append(out, cr)
	}
	return out
}

// clientRoute builds the client route for a single definition.
func (b *builder) clientRoute(r *Route) *ClientRoute {
	cr := &ClientRoute{
		ID:       r.ID,
		Path:     r.Path,
		Index:    r.Index,
		ParentID: r.ParentID,
		Loader:   r.Loader,
		Props:    r.Props,
		def:      r,
	}
	if r.Redirect != "" {
		cr.Element = &redirectElement{to: r.Redirect}
		return cr
	}

	comp, ok := b.components[r.ID]
	if !ok || comp == nil {
		b.opts.Logger.Warn("route has no component",
			"code", ErrMissingComponent.Code, "route", r.ID)
		comp = nil
	}
	cr.Element = &routeElement{
		route:   r,
		comp:    comp,
		loading: b.opts.Loading,
		stream:  b.opts.stream(),
	}
	return cr
}

// checkCycles reports the first parent chain that loops back on itself.
func checkCycles(table *Table) error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, table.Len())

	var cycleErr error
	table.Each(func(r *Route) bool {
		var path []string
		cur := r
		for cur != nil && state[cur.ID] == unvisited {
			state[cur.ID] = visiting
			path = append(path, cur.ID)
			cur = table.Get(cur.ParentID)
		}
		if cur != nil && state[cur.ID] == visiting {
			start := 0
			for i, id := range path {
				if id == cur.ID {
					start = i
					break
				}
			}
			loop := append(append([]string{}, path[start:]...), cur.ID)
			cycleErr = errors.New("R103").
				WithRoute(cur.ID).
				WithDetail("parent chain: " + strings.Join(loop, " -> ")).
				WithSuggestion("Give one of these routes a parentId outside the loop, or none")
		}
		for _, id := range path {
			state[id] = done
		}
		return cycleErr == nil
	})
	return cycleErr
}

// routeElement is the element of a non-redirect route.
type routeElement struct {
	route   *Route
	comp    Component
	loading Component
	stream  bool
}

func (e *routeElement) Render(s *Scope) *vdom.VNode {
	scoped := s.withRoute(e.route)
	if e.comp == nil {
		return vdom.Fragment()
	}
	var node *vdom.VNode
	if e.stream {
		node = Suspense(e.loading, e.comp).Render(scoped)
	} else {
		node = e.comp.Render(scoped)
	}
	return vdom.Fragment(node)
}

// redirectElement replaces the current location with its target.
type redirectElement struct {
	to string
}

func (e *redirectElement) Render(s *Scope) *vdom.VNode {
	to, err := GeneratePath(e.to, s.Params())
	if err != nil {
		s.logger().Error("redirect failed", "code", errors.Code(err), "to", e.to, "error", err)
		return nil
	}
	if KeepQuery(s.RouteProps()) {
		loc := s.Location()
		to += loc.Search + loc.Hash
	}
	s.Navigate(to, WithReplace())
	return nil
}

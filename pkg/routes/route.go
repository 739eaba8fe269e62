package routes

import (
	"context"

	"github.com/vango-dev/routeview/internal/errors"
)

// LoaderFunc fetches the data a route needs.
type LoaderFunc func(ctx context.Context) (any, error)

// Loader is a route's data loader.
type Loader struct {
	// Load fetches the data.
	Load LoaderFunc

	// Hydrate starts the loader as soon as the app mounts, whether or not
	// the route matches the initial location.
	Hydrate bool
}

// Route is a single entry of a route table.
type Route struct {
	// ID uniquely identifies the route within its table.
	ID string

	// Path is the pattern relative to the parent ("users/:id", ":slug?",
	// "files/*"). A leading "/" makes it absolute.
	Path string

	// Index marks the route rendered at its parent's path.
	Index bool

	// ParentID names the parent route. Empty, or an id not in the table,
	// makes this a root route.
	ParentID string

	// Redirect, when set, turns the route into a navigation to this path.
	// Parameters in the target are filled from the current match.
	Redirect string

	// Loader optionally fetches data for the route.
	Loader *Loader

	// Props are free-form route properties. "keepQuery" (bool) on a
	// redirect route carries the current query and hash to the target.
	Props map[string]any
}

// KeepQuery reports whether props ask redirects to keep the query and hash.
func KeepQuery(props map[string]any) bool {
	v, _ := props["keepQuery"].(bool)
	return v
}

// Table is an ordered set of routes keyed by id.
// Iteration order is insertion order; it decides sibling order in the built tree.
type Table struct {
	order []*Route
	byID  map[string]*Route
}

// NewTable creates a table from routes in order.
func NewTable(routes ...Route) (*Table, error) {
	t := &Table{byID: make(map[string]*Route, len(routes))}
	for _, r := range routes {
		if err := t.Add(r); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// MustTable is like NewTable but panics on error.
func MustTable(routes ...Route) *Table {
	t, err := NewTable(routes...)
	if err != nil {
		panic(err)
	}
	return t
}

// Add appends a route. Ids must be non-empty and unique.
func (t *Table) Add(r Route) error {
	if t.byID == nil {
		t.byID = make(map[string]*Route)
	}
	if r.ID == "" {
		return errors.New("R101").WithDetail("route with path " + quote(r.Path) + " has no id")
	}
	if _, ok := t.byID[r.ID]; ok {
		return errors.New("R102").WithRoute(r.ID)
	}
	route := r
	t.order = append(t.order, &route)
	t.byID[r.ID] = &route
	return nil
}

// Get returns the route with the given id, or nil.
func (t *Table) Get(id string) *Route {
	if t == nil {
		return nil
	}
	return t.byID[id]
}

// IDs returns the route ids in insertion order.
func (t *Table) IDs() []string {
	if t == nil {
		return nil
	}
	ids := make([]string, len(t.order))
	for i, r := range t.order {
		ids[i] = r.ID
	}
	return ids
}

// Len returns the number of routes.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Each calls fn for every route in insertion order until fn returns false.
func (t *Table) Each(fn func(r *Route) bool) {
	if t == nil {
		return
	}
	for _, r := range t.order {
		if !fn(r) {
			return
		}
	}
}

func quote(s string) string {
	return `"` + s + `"`
}

// Package routes builds and runs client route trees.
//
// An application describes its routes as a flat Table of Route definitions,
// each naming an optional parent by id, plus a Components map from route id
// to the Component that renders it. Build turns the two into a nested forest
// of ClientRoutes whose sibling order is the table insertion order:
//
//	table := routes.MustTable(
//	    routes.Route{ID: "layout", Path: "/"},
//	    routes.Route{ID: "home", ParentID: "layout", Index: true},
//	    routes.Route{ID: "user", ParentID: "layout", Path: "users/:id",
//	        Loader: &routes.Loader{Load: fetchUser}},
//	    routes.Route{ID: "old", ParentID: "layout", Path: "u/:id", Redirect: "/users/:id",
//	        Props: map[string]any{"keepQuery": true}},
//	)
//	tree, err := routes.Build(table, components, routes.BuildOptions{})
//
// # Elements
//
// Every ClientRoute carries an Element. Redirect routes get a navigation
// element that fills path parameters from the current match and replaces
// the current history entry. Other routes get their component wrapped in a
// route scope and, unless streaming is disabled, a Suspense boundary that
// shows a loading placeholder while a Lazy component loads.
//
// # Scope
//
// Components receive a *Scope instead of reading ambient context. The scope
// exposes the app data, the enclosing route, the current location and
// matches, loader data for the enclosing route, an Outlet for the next
// matched child and a Fetcher that preloads other paths.
//
// # Loaders
//
// A Navigator watches a history, matches each new location and starts the
// loaders of matched routes that have no cache entry yet. Results are
// written to a Cache exactly once per route id; failures are stored too and
// are not retried.
package routes

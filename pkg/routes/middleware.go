package routes

import "github.com/vango-dev/routeview/pkg/history"

// LoaderMiddleware wraps the loader of a route.
type LoaderMiddleware func(next LoaderFunc, route *Route) LoaderFunc

// Chain wraps load with middleware. The first middleware is the outermost.
func Chain(load LoaderFunc, route *Route, middleware ...LoaderMiddleware) LoaderFunc {
	for i := len(middleware) - 1; i >= 0; i-- {
		if middleware[i] != nil {
			load = middleware[i](load, route)
		}
	}
	return load
}

// RouteChange describes a handled location change.
type RouteChange struct {
	Location history.Location
	Action   history.Action
	Matches  []Match
	IsFirst  bool
	Basename string
}

// Hooks observe the route lifecycle.
type Hooks struct {
	// OnRouteChange runs on the app event loop after every location change,
	// once the loaders of the matched routes have been started.
	OnRouteChange func(RouteChange)

	// PatchClientRoutes may modify the built route tree before it is used.
	PatchClientRoutes func(routes []*ClientRoute)
}

// MergeHooks combines hooks. Each hook runs in argument order.
func MergeHooks(hooks ...Hooks) Hooks {
	var onChange []func(RouteChange)
	var patch []func([]*ClientRoute)
	for _, h := range hooks {
		if h.OnRouteChange != nil {
			onChange = append(onChange, h.OnRouteChange)
		}
		if h.PatchClientRoutes != nil {
			patch = append(patch, h.PatchClientRoutes)
		}
	}
	var merged Hooks
	if len(onChange) > 0 {
		merged.OnRouteChange = func(c RouteChange) {
			for _, fn := range onChange {
				fn(c)
			}
		}
	}
	if len(patch) > 0 {
		merged.PatchClientRoutes = func(routes []*ClientRoute) {
			for _, fn := range patch {
				fn(routes)
			}
		}
	}
	return merged
}

// Package errors provides coded, actionable errors for routeview.
//
// Every failure that routeview reports to an application author carries a
// short code (e.g. "R103") that maps to a registered template with a
// message, a longer explanation and a category:
//
//   - scope: route scope or app data read outside a provider
//   - route: route table problems (duplicate ids, parent cycles)
//   - render: missing or failing route components
//   - loader: loader failures
//   - mount: render target and lifecycle problems
//   - config: invalid routeview.json / routeview.yaml
//
// # Usage
//
//	err := errors.New("R103").
//	    WithDetail("parent chain: a -> b -> a").
//	    WithSuggestion("Point one of the routes at an existing root")
//
//	fmt.Println(err.Format())
//
// Errors compare by code, so a package can export sentinels and callers can
// match them with the standard library:
//
//	var ErrCycle = errors.New("R103")
//	if stderrors.Is(err, ErrCycle) { ... }
package errors

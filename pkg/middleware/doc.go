// Package middleware provides observability for routeview apps.
//
// This package includes:
//   - Prometheus metrics for loaders, navigations, renders and sessions
//   - OpenTelemetry tracing of route loaders
//   - Structured logging of route loaders
//
// Loader middleware plugs into routeview.Config.LoaderMiddleware and hooks
// into routeview.Config.Hooks:
//
//	m := middleware.NewMetrics(middleware.WithNamespace("site"))
//	app, err := routeview.RenderClient(routeview.Config{
//	    // ...
//	    LoaderMiddleware: []routes.LoaderMiddleware{
//	        middleware.OpenTelemetry(),
//	        m.Loader(),
//	        middleware.Logging(logger),
//	    },
//	    Hooks: m.Hooks(),
//	})
//
// Expose the metrics with promhttp:
//
//	http.Handle("/metrics", promhttp.Handler())
//
// # Context Propagation
//
// The tracing middleware passes the span context to the loader, so HTTP
// clients and S3 calls made by the loader inherit the trace.
package middleware

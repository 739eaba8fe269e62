// Package server serves a routeview app over HTTP.
//
// Every page request is rendered on the server: the request path seeds a
// memory history, the matched loaders run to completion and the composed
// tree is written as a full HTML document. Redirect routes answer with an
// HTTP redirect.
//
// Live previews connect to the WebSocket endpoint. Each connection gets
// its own mounted App; the client sends navigate, preload and back/forward
// messages and receives the HTML of every paint.
//
// # Endpoints
//
//	GET /_routeview/ws   WebSocket session
//	GET /metrics         Prometheus metrics (when enabled)
//	GET /*               server-rendered pages
//
// # Usage
//
//	srv := server.New(server.Config{
//	    Routes:     table,
//	    Components: components,
//	})
//	r := chi.NewRouter()
//	r.Mount("/", srv.Handler())
//	http.ListenAndServe(":3000", r)
package server

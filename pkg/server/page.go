package server

import (
	"bytes"
	"net/http"

	routeview "github.com/vango-dev/routeview"
	"github.com/vango-dev/routeview/pkg/history"
	"github.com/vango-dev/routeview/pkg/render"
	"github.com/vango-dev/routeview/pkg/routepath"
)

// HandlePage renders the page for the request path. Loaders of the matched
// routes run before rendering; a redirect route answers 302 and an
// unmatched path renders with status 404. Non-canonical paths answer 308
// with the canonical path.
func (s *Server) HandlePage(w http.ResponseWriter, r *http.Request) {
	input := r.URL.EscapedPath()
	if r.URL.RawQuery != "" {
		input += "?" + r.URL.RawQuery
	}
	canon, err := routepath.Canonicalize(input)
	if err != nil {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return
	}
	if canon.Changed {
		http.Redirect(w, r, canon.String(), http.StatusPermanentRedirect)
		return
	}

	ctx := r.Context()
	requested := canon.String()
	hist := history.NewMemory(history.MemoryOptions{InitialEntries: []string{requested}})
	initial := hist.Location().Key

	app, err := routeview.RenderClient(s.appConfig(ctx, routeview.Config{
		History:        hist,
		ComponentsOnly: true,
		UseStream:      routeview.Bool(false),
	}))
	if err != nil {
		s.renderFailed(w, r, err)
		return
	}
	defer app.Navigator().Stop()

	if err := app.Load(ctx); err != nil {
		s.renderFailed(w, r, err)
		return
	}

	if loc := hist.Location(); loc.Key != initial {
		s.logger.Debug("page redirect", "from", requested, "to", loc.String())
		s.recordRender(nil)
		http.Redirect(w, r, loc.String(), http.StatusFound)
		return
	}

	var buf bytes.Buffer
	renderer := render.NewRenderer(render.RendererConfig{})
	err = renderer.RenderPage(&buf, render.PageData{
		Title:   s.config.Title,
		MountID: s.config.MountID,
		Body:    app.Node(),
		Scripts: s.config.Scripts,
	})
	if err != nil {
		s.renderFailed(w, r, err)
		return
	}
	s.recordRender(nil)

	status := http.StatusOK
	if len(app.Navigator().Matches()) == 0 {
		status = http.StatusNotFound
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Debug("page write failed", "error", err)
	}
}

func (s *Server) renderFailed(w http.ResponseWriter, r *http.Request, err error) {
	s.recordRender(err)
	s.logger.Error("page render failed", "path", r.URL.Path, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Server) recordRender(err error) {
	if s.config.Metrics != nil {
		s.config.Metrics.RecordRender(err)
	}
}

package routes

import (
	"context"
	"testing"

	"github.com/vango-dev/routeview/pkg/history"
	"github.com/vango-dev/routeview/pkg/render"
	"github.com/vango-dev/routeview/pkg/vdom"
)

func text(s string) Component {
	return ComponentFunc(func(*Scope) *vdom.VNode { return vdom.P(s) })
}

func layout(name string) Component {
	return ComponentFunc(func(s *Scope) *vdom.VNode {
		return vdom.Div(vdom.Class(name), s.Outlet())
	})
}

func toHTML(t *testing.T, node *vdom.VNode) string {
	t.Helper()
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(node)
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	return html
}

func mustBuild(t *testing.T, table *Table, comps Components, opts BuildOptions) []*ClientRoute {
	t.Helper()
	tree, err := Build(table, comps, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return tree
}

// scopeAt returns a root scope for path over tree.
func scopeAt(tree []*ClientRoute, path string, opts ScopeOptions) *Scope {
	loc := history.ParsePath(path)
	app := &AppData{ClientRoutes: tree, Cache: NewCache()}
	return NewScope(context.Background(), app, loc, NewMatcher(tree).Match(loc.Pathname), opts)
}

func boolPtr(b bool) *bool { return &b }

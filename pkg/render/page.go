package render

import (
	"io"

	"github.com/vango-dev/routeview/pkg/vdom"
)

// PageData contains what is needed to render a complete HTML page around a
// mount target.
type PageData struct {
	// Title is the page title.
	Title string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string

	// MountID is the id of the element the app is rendered into.
	// Defaults to "root".
	MountID string

	// Body is the rendered app, placed inside the mount element.
	Body *vdom.VNode

	// Scripts are script URLs appended to the body.
	Scripts []string
}

// RenderPage renders a complete HTML document.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	if page.Lang == "" {
		page.Lang = "en"
	}
	if page.MountID == "" {
		page.MountID = "root"
	}

	scripts := make([]*vdom.VNode, 0, len(page.Scripts))
	for _, src := range page.Scripts {
		scripts = append(scripts, vdom.Script(vdom.Src(src)))
	}

	doc := vdom.Html(
		vdom.Attr{Key: "lang", Value: page.Lang},
		vdom.Head(
			vdom.Meta(vdom.Charset("utf-8")),
			vdom.If(page.Title != "", vdom.Title(page.Title)),
		),
		vdom.Body(
			vdom.Div(vdom.ID(page.MountID), page.Body),
			scripts,
		),
	)

	if _, err := io.WriteString(w, "<!DOCTYPE html>"); err != nil {
		return err
	}
	return r.RenderToWriter(w, doc)
}

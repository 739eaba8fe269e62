package render

import (
	"strings"
	"testing"

	"github.com/vango-dev/routeview/pkg/vdom"
)

func TestRenderToString(t *testing.T) {
	r := NewRenderer(RendererConfig{})

	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{"nil", nil, ""},
		{"text escaped", vdom.Text(`<a href="x">&</a>`), "&lt;a href=&quot;x&quot;&gt;&amp;&lt;/a&gt;"},
		{"element", vdom.Div(vdom.ID("main"), vdom.Text("hi")), `<div id="main">hi</div>`},
		{"sorted attrs", vdom.Div(vdom.Class("c"), vdom.ID("i")), `<div class="c" id="i"></div>`},
		{"void", vdom.Br(), "<br>"},
		{"fragment", vdom.Fragment(vdom.Span("a"), vdom.Span("b")), "<span>a</span><span>b</span>"},
		{"component", vdom.Div(vdom.Func(func() *vdom.VNode { return vdom.P("x") })), "<div><p>x</p></div>"},
		{"boolean true", vdom.Div(vdom.Hidden()), "<div hidden></div>"},
		{"boolean false", vdom.Div(vdom.Attr{Key: "hidden", Value: false}), "<div></div>"},
		{"internal prop skipped", vdom.Div(vdom.Attr{Key: "_ref", Value: "x"}), "<div></div>"},
		{"attr escaped", vdom.Div(vdom.Data("v", "a\"b\n")), `<div data-v="a&quot;b&#10;"></div>`},
		{"aria bool", vdom.Div(vdom.AriaBusy(true)), `<div aria-busy="true"></div>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.RenderToString(tt.node)
			if err != nil {
				t.Fatalf("RenderToString() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RenderToString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderUnknownKind(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	if _, err := r.RenderToString(&vdom.VNode{Kind: vdom.VKind(99)}); err == nil {
		t.Error("expected error for unknown node kind")
	}
}

func TestRenderPretty(t *testing.T) {
	r := NewRenderer(RendererConfig{Pretty: true})
	got, err := r.RenderToString(vdom.Div(vdom.P("x")))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "<div>\n  <p>") {
		t.Errorf("pretty output not indented: %q", got)
	}
}

func TestRenderPage(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	var b strings.Builder
	err := r.RenderPage(&b, PageData{
		Title:   "Home",
		Body:    vdom.H1("Welcome"),
		Scripts: []string{"/app.js"},
	})
	if err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		"<title>Home</title>",
		`<div id="root"><h1>Welcome</h1></div>`,
		`<script src="/app.js"></script>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderPage() missing %q in %s", want, out)
		}
	}
}

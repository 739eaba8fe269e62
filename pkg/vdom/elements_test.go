package vdom

import "testing"

func TestCreateElement(t *testing.T) {
	node := Div(
		ID("main"),
		[]Attr{Class("a", "b"), Role("main")},
		nil,
		"text",
		P("para"),
		[]*VNode{Span("x"), nil},
	)

	if node.Kind != KindElement || node.Tag != "div" {
		t.Fatalf("node = %+v", node)
	}
	if node.Props["id"] != "main" {
		t.Errorf("id = %v", node.Props["id"])
	}
	if node.Props["class"] != "a b" || node.Props["role"] != "main" {
		t.Errorf("props = %v", node.Props)
	}
	if len(node.Children) != 3 {
		t.Fatalf("children = %d, want 3", len(node.Children))
	}
	if node.Children[0].Kind != KindText || node.Children[0].Text != "text" {
		t.Errorf("first child = %+v", node.Children[0])
	}
}

func TestEl(t *testing.T) {
	node := El("custom-tag", Data("route", "home"))
	if node.Tag != "custom-tag" || node.Props["data-route"] != "home" {
		t.Errorf("El() = %+v", node)
	}
}

func TestIsVoidElement(t *testing.T) {
	if !IsVoidElement("br") || IsVoidElement("div") {
		t.Error("IsVoidElement mismatch")
	}
}

func TestEmptyAttrIgnored(t *testing.T) {
	node := Div(Attr{})
	if len(node.Props) != 0 {
		t.Errorf("Props = %v, want empty", node.Props)
	}
}

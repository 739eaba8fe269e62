// Package vdom provides the virtual node tree that routeview renders into.
//
// A VNode is an element, a text node, a fragment, a component or raw HTML.
// Route components return VNodes, route elements wrap them in fragments, and
// the render package turns the finished tree into HTML for a render root.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	)
//
// Arguments may be attributes, child nodes, slices of child nodes,
// components or plain strings (shorthand for Text). Nil arguments are
// skipped so conditional children can be written inline:
//
//	Div(If(loggedIn, Span(Text("hi"))))
package vdom

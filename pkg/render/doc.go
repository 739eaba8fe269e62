// Package render turns vdom trees into HTML and manages render roots.
//
// A Renderer writes a VNode tree as HTML with proper text and attribute
// escaping, void element handling and boolean attributes. A Document holds
// Elements addressable by id; an Element is the target a Root renders into.
//
// # Roots
//
// Roots are tracked by a Registry keyed by target identity. Creating a root
// for a target that already has one returns the existing root, so mounting
// twice into the same element never produces two independent roots:
//
//	doc := render.NewDocument()
//	target := doc.CreateElement("root")
//
//	reg := render.NewRegistry()
//	root, created := reg.CreateRoot(target) // created == true
//	again, created := reg.CreateRoot(target) // again == root, created == false
//
//	root.Render(vdom.Div(vdom.Text("hello")))
//	target.InnerHTML() // "<div>hello</div>"
//
// Apps share a root through holders. Acquire adds a holder, which becomes
// the one that paints; Release drops it and disposes the root once the last
// holder is gone. Dispose removes a root outright and clears its target.
package render

package render

import "sync"

// Document is a set of mount targets addressable by element id.
type Document struct {
	mu       sync.RWMutex
	elements map[string]*Element
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{elements: make(map[string]*Element)}
}

// CreateElement returns the element with the given id, creating it if needed.
func (d *Document) CreateElement(id string) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	if el, ok := d.elements[id]; ok {
		return el
	}
	el := &Element{id: id}
	d.elements[id] = el
	return el
}

// GetElementByID returns the element with the given id, or nil.
func (d *Document) GetElementByID(id string) *Element {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.elements[id]
}

// Element is a render target. Its identity (the pointer) keys render roots.
type Element struct {
	id string

	mu      sync.RWMutex
	html    string
	renders int
}

// NewElement creates a detached element with the given id.
func NewElement(id string) *Element {
	return &Element{id: id}
}

// ID returns the element id.
func (e *Element) ID() string {
	return e.id
}

// InnerHTML returns the current rendered content.
func (e *Element) InnerHTML() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.html
}

// SetInnerHTML replaces the rendered content.
func (e *Element) SetInnerHTML(html string) {
	e.mu.Lock()
	e.html = html
	e.renders++
	e.mu.Unlock()
}

// Renders returns how many times content was written to the element.
func (e *Element) Renders() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.renders
}

package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Role sets the ARIA role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaBusy sets aria-busy, used on loading placeholders.
func AriaBusy(busy bool) Attr { return attr("aria-busy", busy) }

// Hidden sets the hidden attribute.
func Hidden() Attr { return attr("hidden", true) }

// Charset sets the charset attribute.
func Charset(cs string) Attr { return attr("charset", cs) }

// Src sets the src attribute.
func Src(src string) Attr { return attr("src", src) }

package render

import "github.com/vango-dev/routeview/pkg/vdom"

// inlineElements do not get a newline after their opening tag in pretty mode.
var inlineElements = map[string]bool{
	"a": true, "abbr": true, "b": true, "code": true, "em": true, "i": true,
	"label": true, "small": true, "span": true, "strong": true, "sub": true,
	"sup": true, "time": true, "title": true,
}

// booleanAttrs are rendered as a bare attribute name when true.
var booleanAttrs = map[string]bool{
	"async": true, "autofocus": true, "checked": true, "defer": true,
	"disabled": true, "hidden": true, "multiple": true, "open": true,
	"readonly": true, "required": true, "selected": true,
}

func isVoidElement(tag string) bool { return vdom.IsVoidElement(tag) }

func isInlineElement(tag string) bool { return inlineElements[tag] }

func isBooleanAttr(name string) bool { return booleanAttrs[name] }

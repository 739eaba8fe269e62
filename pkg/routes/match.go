package routes

import (
	"net/url"
	"strings"
)

// Match is one level of a matched route branch.
type Match struct {
	// Route is the matched client route.
	Route *ClientRoute

	// Params holds every parameter of the branch. Splat values are keyed "*".
	Params map[string]string

	// Pathname is the part of the URL this level matched.
	Pathname string

	// Pattern is the full pattern of the route.
	Pattern string
}

// branch is a route together with its ancestors, root first.
type branch struct {
	routes   []*ClientRoute
	patterns []string
	order    int
}

func (b *branch) leaf() *ClientRoute {
	return b.routes[len(b.routes)-1]
}

// better reports whether b should win over other for the same pattern.
// Index routes beat their layouts, deeper branches beat shallower ones,
// and otherwise the first in tree order wins.
func (b *branch) better(other *branch) bool {
	if b.leaf().Index != other.leaf().Index {
		return b.leaf().Index
	}
	if len(b.routes) != len(other.routes) {
		return len(b.routes) > len(other.routes)
	}
	return b.order < other.order
}

// node is a segment of the match tree.
type node struct {
	segment    string
	isParam    bool
	isCatchAll bool
	paramName  string

	// branch ends at this node.
	branch *branch

	children      []*node
	paramChildren []*node
	catchAllChild *node
}

func (n *node) findChild(segment string) *node {
	for _, child := range n.children {
		if child.segment == segment {
			return child
		}
	}
	return nil
}

func (n *node) addChild(segment string) *node {
	if child := n.findChild(segment); child != nil {
		return child
	}
	child := &node{segment: segment}
	n.children = append(n.children, child)
	return child
}

// addParamChild returns the parameter child for name. Parameters with
// different names at the same position get separate children, tried in
// insertion order.
func (n *node) addParamChild(name string) *node {
	for _, child := range n.paramChildren {
		if child.paramName == name {
			return child
		}
	}
	child := &node{isParam: true, paramName: name}
	n.paramChildren = append(n.paramChildren, child)
	return child
}

func (n *node) addCatchAllChild() *node {
	if n.catchAllChild == nil {
		n.catchAllChild = &node{isCatchAll: true, paramName: "*"}
	}
	return n.catchAllChild
}

func (n *node) insert(pattern string, b *branch) {
	current := n
	for _, seg := range splitPath(pattern) {
		switch {
		case seg == "*":
			current = current.addCatchAllChild()
		case strings.HasPrefix(seg, ":"):
			current = current.addParamChild(seg[1:])
		default:
			current = current.addChild(seg)
		}
		if current.isCatchAll {
			break
		}
	}
	if current.branch == nil || b.better(current.branch) {
		current.branch = b
	}
}

// match finds the branch for segments. Static children are tried before
// parameters, and parameters before the catch-all, backtracking on failure.
func (n *node) match(segments []string, params map[string]string) *branch {
	if len(segments) == 0 {
		if n.branch != nil {
			return n.branch
		}
		if n.catchAllChild != nil && n.catchAllChild.branch != nil {
			params["*"] = ""
			return n.catchAllChild.branch
		}
		return nil
	}

	segment := segments[0]
	remaining := segments[1:]

	if child := n.findChild(segment); child != nil {
		if b := child.match(remaining, params); b != nil {
			return b
		}
	}

	for _, child := range n.paramChildren {
		params[child.paramName] = decodeSegment(segment)
		if b := child.match(remaining, params); b != nil {
			return b
		}
		delete(params, child.paramName)
	}

	if n.catchAllChild != nil && n.catchAllChild.branch != nil {
		all := make([]string, len(segments))
		for i, s := range segments {
			all[i] = decodeSegment(s)
		}
		params["*"] = strings.Join(all, "/")
		return n.catchAllChild.branch
	}

	return nil
}

func decodeSegment(s string) string {
	if v, err := url.PathUnescape(s); err == nil {
		return v
	}
	return s
}

// Matcher resolves pathnames against a client route tree.
type Matcher struct {
	root     *node
	branches int
}

// NewMatcher indexes every route of the tree. Index routes share their
// parent's pattern. Pathless layouts are only matched through their
// children, never on their own.
func NewMatcher(tree []*ClientRoute) *Matcher {
	m := &Matcher{root: &node{}}
	m.add(tree, nil, nil, "/")
	return m
}

func (m *Matcher) add(list []*ClientRoute, ancestors []*ClientRoute, patterns []string, parent string) {
	for _, r := range list {
		pattern := parent
		if !r.Index && r.Path != "" {
			pattern = JoinPaths(parent, r.Path)
		}
		b := &branch{
			routes:   append(append([]*ClientRoute{}, ancestors...), r),
			patterns: append(append([]string{}, patterns...), pattern),
			order:    m.branches,
		}
		m.branches++
		if r.Index || r.Path != "" {
			for _, variant := range expandOptional(pattern) {
				m.root.insert(variant, b)
			}
		}
		if len(r.Children) > 0 {
			m.add(r.Children, b.routes, b.patterns, pattern)
		}
	}
}

// Match returns the matched branch for pathname, root first, or nil.
func (m *Matcher) Match(pathname string) []Match {
	params := make(map[string]string)
	b := m.root.match(splitPath(pathname), params)
	if b == nil {
		return nil
	}
	out := make([]Match, len(b.routes))
	for i, r := range b.routes {
		out[i] = Match{
			Route:    r,
			Params:   params,
			Pathname: matchedPathname(b.patterns[i], params),
			Pattern:  b.patterns[i],
		}
	}
	return out
}

func matchedPathname(pattern string, params map[string]string) string {
	p, err := GeneratePath(pattern, params)
	if err != nil {
		return pattern
	}
	return p
}

// expandOptional returns every variant of a pattern with optional
// parameters present or absent, the fullest variant first.
func expandOptional(pattern string) []string {
	variants := [][]string{nil}
	for _, seg := range splitPath(pattern) {
		if strings.HasPrefix(seg, ":") && strings.HasSuffix(seg, "?") {
			required := strings.TrimSuffix(seg, "?")
			next := make([][]string, 0, len(variants)*2)
			for _, v := range variants {
				next = append(next, append(append([]string{}, v...), required))
			}
			next = append(next, variants...)
			variants = next
			continue
		}
		for i := range variants {
			variants[i] = append(variants[i], seg)
		}
	}
	out := make([]string, len(variants))
	for i, v := range variants {
		out[i] = "/" + strings.Join(v, "/")
	}
	return out
}

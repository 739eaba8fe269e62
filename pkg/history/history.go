package history

import (
	"net/url"
	"strings"
)

// Action is the kind of navigation that produced the current location.
type Action string

const (
	// Pop is a traversal of the stack (initial load, back, forward, go).
	Pop Action = "POP"
	// Push adds a new entry.
	Push Action = "PUSH"
	// Replace overwrites the current entry.
	Replace Action = "REPLACE"
)

// Location is a single history entry.
type Location struct {
	// Pathname is the URL path, always starting with "/".
	Pathname string
	// Search is the query string including the leading "?", or empty.
	Search string
	// Hash is the fragment including the leading "#", or empty.
	Hash string
	// State is arbitrary data attached by the navigator.
	State any
	// Key uniquely identifies the entry.
	Key string
}

// String returns pathname + search + hash.
func (l Location) String() string {
	return l.Pathname + l.Search + l.Hash
}

// Update is delivered to listeners after every navigation.
type Update struct {
	Action   Action
	Location Location
}

// Listener receives history updates.
type Listener func(Update)

// History is a navigation stack with change notification.
type History interface {
	// Action returns the action that produced the current location.
	Action() Action

	// Location returns the current location.
	Location() Location

	// Push navigates to a new entry.
	Push(to string, state any)

	// Replace overwrites the current entry.
	Replace(to string, state any)

	// Go moves delta entries through the stack.
	Go(delta int)

	// Back is Go(-1).
	Back()

	// Forward is Go(1).
	Forward()

	// Listen registers fn and returns a function that removes it.
	Listen(fn Listener) (unlisten func())

	// CreateHref returns the href for a path.
	CreateHref(to string) string
}

// ParsePath splits a path into pathname, search and hash.
// An empty pathname becomes "/".
func ParsePath(p string) Location {
	var loc Location
	if i := strings.IndexByte(p, '#'); i >= 0 {
		if i < len(p)-1 {
			loc.Hash = p[i:]
		}
		p = p[:i]
	}
	if i := strings.IndexByte(p, '?'); i >= 0 {
		if i < len(p)-1 {
			loc.Search = p[i:]
		}
		p = p[:i]
	}
	loc.Pathname = p
	if loc.Pathname == "" {
		loc.Pathname = "/"
	}
	return loc
}

// Resolve resolves to against the current location.
// Absolute paths are returned as is; relative paths and bare "?query" or
// "#hash" references resolve the way a browser would.
func Resolve(current Location, to string) Location {
	if strings.HasPrefix(to, "/") {
		return ParsePath(to)
	}
	base, err := url.Parse(current.Pathname + current.Search)
	if err != nil {
		return ParsePath(to)
	}
	ref, err := url.Parse(to)
	if err != nil {
		return ParsePath(to)
	}
	resolved := base.ResolveReference(ref)
	loc := Location{Pathname: resolved.EscapedPath()}
	if resolved.RawQuery != "" {
		loc.Search = "?" + resolved.RawQuery
	}
	if resolved.Fragment != "" {
		loc.Hash = "#" + resolved.EscapedFragment()
	}
	if loc.Pathname == "" {
		loc.Pathname = "/"
	}
	return loc
}

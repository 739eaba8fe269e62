package routes

import (
	"strings"

	"github.com/vango-dev/routeview/internal/errors"
)

// GeneratePath fills the parameters of a route pattern.
//
//	GeneratePath("/users/:id", map[string]string{"id": "5"}) // "/users/5"
//	GeneratePath("/docs/:lang?/intro", nil)                  // "/docs/intro"
//	GeneratePath("/files/*", map[string]string{"*": "a/b"})  // "/files/a/b"
//
// A required parameter missing from params is an ErrMissingParam error.
func GeneratePath(pattern string, params map[string]string) (string, error) {
	segments := strings.Split(pattern, "/")
	out := make([]string, 0, len(segments))

	for i, seg := range segments {
		switch {
		case seg == "*" && i == len(segments)-1:
			if splat := strings.Trim(params["*"], "/"); splat != "" {
				out = append(out, splat)
			}
		case strings.HasPrefix(seg, ":"):
			name := seg[1:]
			optional := strings.HasSuffix(name, "?")
			name = strings.TrimSuffix(name, "?")
			value, ok := params[name]
			if !ok || value == "" {
				if optional {
					continue
				}
				return "", errors.New("R104").
					WithDetail("pattern " + quote(pattern) + " needs parameter " + quote(name))
			}
			out = append(out, value)
		case seg != "":
			out = append(out, seg)
		}
	}

	path := strings.Join(out, "/")
	if strings.HasPrefix(pattern, "/") {
		return "/" + path, nil
	}
	return path, nil
}

// JoinPaths joins a parent pattern and a child path.
// An absolute child path replaces the parent.
func JoinPaths(parent, child string) string {
	if strings.HasPrefix(child, "/") {
		return cleanPattern(child)
	}
	if child == "" {
		return cleanPattern(parent)
	}
	return cleanPattern(parent + "/" + child)
}

// cleanPattern collapses repeated slashes and ensures a leading slash.
func cleanPattern(p string) string {
	segs := splitPath(p)
	return "/" + strings.Join(segs, "/")
}

// splitPath splits a path into non-empty segments.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// StripBasename removes basename from pathname.
// It reports false when pathname is outside basename.
func StripBasename(pathname, basename string) (string, bool) {
	if basename == "" || basename == "/" {
		return pathname, true
	}
	base := strings.TrimSuffix(basename, "/")
	if !strings.HasPrefix(strings.ToLower(pathname), strings.ToLower(base)) {
		return "", false
	}
	rest := pathname[len(base):]
	if rest == "" {
		return "/", true
	}
	if rest[0] != '/' {
		return "", false
	}
	return rest, true
}

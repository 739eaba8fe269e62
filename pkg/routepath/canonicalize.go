// Package routepath normalizes request and navigation paths before they
// reach the route matcher.
package routepath

import (
	"errors"
	"strings"
)

// Result is a canonicalized path.
type Result struct {
	// Path is the canonical path, without query string.
	Path string

	// Query is the query string, without the leading "?".
	Query string

	// Changed reports whether Path differs from the input path.
	Changed bool
}

// String returns the path with its query string.
func (r Result) String() string {
	if r.Query == "" {
		return r.Path
	}
	return r.Path + "?" + r.Query
}

// Canonicalization errors.
var (
	ErrBackslash       = errors.New("path contains backslash")
	ErrNullByte        = errors.New("path contains null byte")
	ErrBadEscape       = errors.New("invalid percent escape sequence")
	ErrEscapesRoot     = errors.New("path escapes root via ..")
	ErrAbsoluteURL     = errors.New("navigation target must be a path, not a URL")
	ErrNotRootRelative = errors.New("navigation target must start with /")
)

// Canonicalize collapses repeated slashes, resolves "." and ".." segments
// and drops the trailing slash of any path but "/". Paths with a
// backslash, a NUL byte, a malformed escape or a ".." above the root are
// rejected. The query string is kept as is.
func Canonicalize(input string) (Result, error) {
	p, query, _ := strings.Cut(input, "?")
	if p == "" {
		return Result{Path: "/", Query: query, Changed: true}, nil
	}
	if strings.ContainsRune(p, '\\') {
		return Result{}, ErrBackslash
	}
	if strings.ContainsRune(p, 0) || strings.Contains(strings.ToUpper(p), "%00") {
		return Result{}, ErrNullByte
	}
	if !validEscapes(p) {
		return Result{}, ErrBadEscape
	}

	var out []string
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(out) == 0 {
				return Result{}, ErrEscapesRoot
			}
			out = out[:len(out)-1]
		default:
			out = append(out, seg)
		}
	}
	canonical := "/" + strings.Join(out, "/")
	return Result{Path: canonical, Query: query, Changed: canonical != p}, nil
}

// NavigationPath canonicalizes a client navigation target. Only
// root-relative paths are accepted, so a session cannot be steered to
// another origin.
func NavigationPath(target string) (string, error) {
	switch {
	case strings.HasPrefix(target, "//"), strings.Contains(target, "://"):
		return "", ErrAbsoluteURL
	case !strings.HasPrefix(target, "/"):
		return "", ErrNotRootRelative
	}

	frag := ""
	if i := strings.IndexByte(target, '#'); i >= 0 {
		target, frag = target[:i], target[i:]
	}
	res, err := Canonicalize(target)
	if err != nil {
		return "", err
	}
	return res.String() + frag, nil
}

func validEscapes(p string) bool {
	for i := 0; i < len(p); i++ {
		if p[i] != '%' {
			continue
		}
		if i+2 >= len(p) || !isHex(p[i+1]) || !isHex(p[i+2]) {
			return false
		}
		i += 2
	}
	return true
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

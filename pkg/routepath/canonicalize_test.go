package routepath

import (
	"errors"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		changed bool
	}{
		{"/", "/", false},
		{"", "/", true},
		{"/users/42", "/users/42", false},
		{"/users/42/", "/users/42", true},
		{"/users//42", "/users/42", true},
		{"/users/./42", "/users/42", true},
		{"/users/x/../42", "/users/42", true},
		{"/search?q=a//b", "/search?q=a//b", false},
		{"/files/a%20b", "/files/a%20b", false},
		{"users", "/users", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Canonicalize(tt.input)
			if err != nil {
				t.Fatalf("Canonicalize(%q) error = %v", tt.input, err)
			}
			if got.String() != tt.want || got.Changed != tt.changed {
				t.Errorf("Canonicalize(%q) = %q changed=%v, want %q changed=%v",
					tt.input, got.String(), got.Changed, tt.want, tt.changed)
			}
		})
	}
}

func TestCanonicalizeRejects(t *testing.T) {
	tests := []struct {
		input string
		err   error
	}{
		{`/a\b`, ErrBackslash},
		{"/a%00b", ErrNullByte},
		{"/a%2", ErrBadEscape},
		{"/a%GG", ErrBadEscape},
		{"/../etc", ErrEscapesRoot},
	}
	for _, tt := range tests {
		if _, err := Canonicalize(tt.input); !errors.Is(err, tt.err) {
			t.Errorf("Canonicalize(%q) error = %v, want %v", tt.input, err, tt.err)
		}
	}
}

func TestNavigationPath(t *testing.T) {
	got, err := NavigationPath("/docs//intro/?tab=1#top")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/docs/intro?tab=1#top" {
		t.Errorf("NavigationPath() = %q", got)
	}

	for _, bad := range []string{"https://evil.com/x", "//evil.com", "relative/path"} {
		if _, err := NavigationPath(bad); err == nil {
			t.Errorf("NavigationPath(%q) accepted", bad)
		}
	}
}

package history

import "testing"

func TestParsePath(t *testing.T) {
	tests := []struct {
		in                 string
		path, search, hash string
	}{
		{"", "/", "", ""},
		{"/", "/", "", ""},
		{"/users/5", "/users/5", "", ""},
		{"/x?q=1#frag", "/x", "?q=1", "#frag"},
		{"/x#frag?notquery", "/x", "", "#frag?notquery"},
		{"/x?#", "/x", "", ""},
		{"?q=1", "/", "?q=1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			loc := ParsePath(tt.in)
			if loc.Pathname != tt.path || loc.Search != tt.search || loc.Hash != tt.hash {
				t.Errorf("ParsePath(%q) = %+v", tt.in, loc)
			}
		})
	}
}

func TestLocationString(t *testing.T) {
	loc := Location{Pathname: "/a", Search: "?b=1", Hash: "#c"}
	if loc.String() != "/a?b=1#c" {
		t.Errorf("String() = %q", loc.String())
	}
}

func TestResolve(t *testing.T) {
	current := Location{Pathname: "/users/5", Search: "?tab=posts"}

	tests := []struct {
		to   string
		want string
	}{
		{"/home", "/home"},
		{"edit", "/users/edit"},
		{"../teams", "/teams"},
		{"?tab=likes", "/users/5?tab=likes"},
		{"#top", "/users/5?tab=posts#top"},
	}

	for _, tt := range tests {
		t.Run(tt.to, func(t *testing.T) {
			if got := Resolve(current, tt.to).String(); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.to, got, tt.want)
			}
		})
	}
}

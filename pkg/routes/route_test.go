package routes

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTableOrder(t *testing.T) {
	table := MustTable(
		Route{ID: "c"},
		Route{ID: "a"},
		Route{ID: "b"},
	)
	if diff := cmp.Diff([]string{"c", "a", "b"}, table.IDs()); diff != "" {
		t.Errorf("IDs mismatch (-want +got):\n%s", diff)
	}
	if table.Len() != 3 {
		t.Errorf("Len() = %d, want 3", table.Len())
	}
	if table.Get("a") == nil || table.Get("z") != nil {
		t.Error("Get mismatch")
	}

	var seen []string
	table.Each(func(r *Route) bool {
		seen = append(seen, r.ID)
		return len(seen) < 2
	})
	if len(seen) != 2 {
		t.Errorf("Each should stop when fn returns false, saw %v", seen)
	}
}

func TestTableAddErrors(t *testing.T) {
	if _, err := NewTable(Route{Path: "/"}); !errors.Is(err, ErrEmptyID) {
		t.Errorf("empty id error = %v", err)
	}
	if _, err := NewTable(Route{ID: "a"}, Route{ID: "a"}); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("duplicate id error = %v", err)
	}
}

func TestTableAddCopies(t *testing.T) {
	r := Route{ID: "a", Path: "/a"}
	table := MustTable(r)
	r.Path = "/changed"
	if table.Get("a").Path != "/a" {
		t.Error("Add should copy the route")
	}
}

func TestNilTable(t *testing.T) {
	var table *Table
	if table.Len() != 0 || table.Get("a") != nil || table.IDs() != nil {
		t.Error("nil table should behave as empty")
	}
}

func TestKeepQuery(t *testing.T) {
	tests := []struct {
		props map[string]any
		want  bool
	}{
		{nil, false},
		{map[string]any{"keepQuery": true}, true},
		{map[string]any{"keepQuery": false}, false},
		{map[string]any{"keepQuery": "yes"}, false},
	}
	for _, tt := range tests {
		if got := KeepQuery(tt.props); got != tt.want {
			t.Errorf("KeepQuery(%v) = %v, want %v", tt.props, got, tt.want)
		}
	}
}

package dev

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "routeview.yaml")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(target, []byte("routes: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(WatcherConfig{Paths: []string{target}, Debounce: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()

	changes := make(chan Change, 8)
	w.OnChange(func(c Change) { changes <- c })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	// Give the event loop a moment to start.
	time.Sleep(20 * time.Millisecond)
	if err := os.WriteFile(other, []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(target, []byte("routes: []\n# edit\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case c := <-changes:
		want, _ := filepath.Abs(target)
		if c.Path != want {
			t.Errorf("change path = %q, want %q", c.Path, want)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case c := <-changes:
		t.Errorf("unexpected extra change %+v", c)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcherStop(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(WatcherConfig{Paths: []string{filepath.Join(dir, "routeview.json")}})
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- w.Start(context.Background()) }()
	time.Sleep(10 * time.Millisecond)
	w.Stop()
	w.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() = %v after Stop", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Start did not return after Stop")
	}
}

func TestChangeTypeString(t *testing.T) {
	if ChangeRemove.String() != "remove" || ChangeType(9).String() != "unknown" {
		t.Error("unexpected ChangeType names")
	}
}

package routes

import (
	"context"
	"fmt"
	"sync"

	"github.com/vango-dev/routeview/internal/errors"
)

// State is the lifecycle state of a cache entry.
type State int

const (
	// Absent means the loader has never been started.
	Absent State = iota
	// Loading means the loader is running.
	Loading
	// Resolved means the loader returned data.
	Resolved
	// Failed means the loader returned an error. Failed entries are not retried.
	Failed
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case Loading:
		return "loading"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Entry is a snapshot of one route's loader data.
type Entry struct {
	State State
	Data  any
	Err   error
}

type cacheEntry struct {
	Entry
	done chan struct{}
}

// Cache holds loader data per route id for the lifetime of an app.
// Entries only move forward: Absent, Loading, then Resolved or Failed.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*cacheEntry)}
}

// Begin moves id from Absent to Loading.
// It reports false when the id already has an entry.
func (c *Cache) Begin(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[id]; ok {
		return false
	}
	c.entries[id] = &cacheEntry{
		Entry: Entry{State: Loading},
		done:  make(chan struct{}),
	}
	return true
}

// Resolve settles a Loading entry with the loader's result.
// A non-nil err marks the entry Failed with an ErrLoaderFailed error.
// Entries that are not Loading are left untouched.
func (c *Cache) Resolve(id string, data any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	if !ok || e.State != Loading {
		return
	}
	if err != nil {
		e.State = Failed
		e.Err = errors.New("R301").WithRoute(id).Wrap(err)
	} else {
		e.State = Resolved
		e.Data = data
	}
	close(e.done)
}

// Ensure starts load for id unless the cache already has an entry.
// The loader runs on its own goroutine; the write of its result is handed
// to dispatch so that it happens on the caller's event loop. A nil dispatch
// writes directly. Ensure reports whether the loader was started.
func (c *Cache) Ensure(ctx context.Context, id string, load LoaderFunc, dispatch func(func())) bool {
	if load == nil || !c.Begin(id) {
		return false
	}
	go func() {
		data, err := runLoader(ctx, load)
		settle := func() { c.Resolve(id, data, err) }
		if dispatch == nil {
			settle()
			return
		}
		dispatch(settle)
	}()
	return true
}

func runLoader(ctx context.Context, load LoaderFunc) (data any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("loader panic: %v", r)
		}
	}()
	return load(ctx)
}

// Get returns the entry for id. Unknown ids are Absent.
func (c *Cache) Get(id string) Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[id]; ok {
		return e.Entry
	}
	return Entry{State: Absent}
}

// Wait blocks until the entry for id has settled or ctx is done.
// Absent entries return immediately.
func (c *Cache) Wait(ctx context.Context, id string) (Entry, error) {
	c.mu.Lock()
	e, ok := c.entries[id]
	c.mu.Unlock()
	if !ok {
		return Entry{State: Absent}, nil
	}
	select {
	case <-e.done:
		return c.Get(id), nil
	case <-ctx.Done():
		return c.Get(id), ctx.Err()
	}
}

// Snapshot returns the data of every resolved entry.
func (c *Cache) Snapshot() map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]any, len(c.entries))
	for id, e := range c.entries {
		if e.State == Resolved {
			out[id] = e.Data
		}
	}
	return out
}

// Len returns the number of entries in any state other than Absent.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

package history

import (
	"sync"

	"github.com/google/uuid"
)

// MemoryOptions configures a Memory history.
type MemoryOptions struct {
	// InitialEntries seeds the stack. Defaults to ["/"].
	InitialEntries []string

	// InitialIndex selects the current entry. Defaults to the last entry.
	// Out-of-range values are clamped.
	InitialIndex *int
}

// Memory is an in-process History.
// It is safe for concurrent use; listeners are called synchronously on the
// navigating goroutine, outside the internal lock.
type Memory struct {
	mu        sync.Mutex
	entries   []Location
	index     int
	action    Action
	listeners map[uint64]Listener
	order     []uint64
	nextID    uint64
}

var _ History = (*Memory)(nil)

// NewMemory creates a Memory history.
func NewMemory(opts MemoryOptions) *Memory {
	initial := opts.InitialEntries
	if len(initial) == 0 {
		initial = []string{"/"}
	}
	entries := make([]Location, len(initial))
	for i, p := range initial {
		loc := ParsePath(p)
		loc.Key = newKey()
		entries[i] = loc
	}
	index := len(entries) - 1
	if opts.InitialIndex != nil {
		index = clamp(*opts.InitialIndex, 0, len(entries)-1)
	}
	return &Memory{
		entries:   entries,
		index:     index,
		action:    Pop,
		listeners: make(map[uint64]Listener),
	}
}

// Action implements History.
func (m *Memory) Action() Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.action
}

// Location implements History.
func (m *Memory) Location() Location {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[m.index]
}

// Index returns the position of the current entry in the stack.
func (m *Memory) Index() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index
}

// Len returns the number of entries in the stack.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Push implements History. Entries after the current one are discarded.
func (m *Memory) Push(to string, state any) {
	m.mu.Lock()
	loc := Resolve(m.entries[m.index], to)
	loc.State = state
	loc.Key = newKey()
	m.entries = append(m.entries[:m.index+1], loc)
	m.index++
	m.action = Push
	m.mu.Unlock()
	m.notify(Update{Action: Push, Location: loc})
}

// Replace implements History.
func (m *Memory) Replace(to string, state any) {
	m.mu.Lock()
	loc := Resolve(m.entries[m.index], to)
	loc.State = state
	loc.Key = newKey()
	m.entries[m.index] = loc
	m.action = Replace
	m.mu.Unlock()
	m.notify(Update{Action: Replace, Location: loc})
}

// Go implements History. Moves past either end of the stack are clamped;
// a move that does not change the index notifies nobody.
func (m *Memory) Go(delta int) {
	m.mu.Lock()
	next := clamp(m.index+delta, 0, len(m.entries)-1)
	if next == m.index {
		m.mu.Unlock()
		return
	}
	m.index = next
	m.action = Pop
	loc := m.entries[next]
	m.mu.Unlock()
	m.notify(Update{Action: Pop, Location: loc})
}

// Back implements History.
func (m *Memory) Back() { m.Go(-1) }

// Forward implements History.
func (m *Memory) Forward() { m.Go(1) }

// Listen implements History.
func (m *Memory) Listen(fn Listener) func() {
	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.listeners[id] = fn
	m.order = append(m.order, id)
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.listeners, id)
			for i, v := range m.order {
				if v == id {
					m.order = append(m.order[:i], m.order[i+1:]...)
					break
				}
			}
			m.mu.Unlock()
		})
	}
}

// CreateHref implements History.
func (m *Memory) CreateHref(to string) string {
	return Resolve(m.Location(), to).String()
}

// notify calls listeners in registration order.
func (m *Memory) notify(u Update) {
	m.mu.Lock()
	fns := make([]Listener, 0, len(m.order))
	for _, id := range m.order {
		fns = append(fns, m.listeners[id])
	}
	m.mu.Unlock()
	for _, fn := range fns {
		fn(u)
	}
}

func newKey() string {
	return uuid.NewString()[:8]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

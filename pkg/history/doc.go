// Package history models navigation history: a stack of locations, the
// action that produced the current one, and listeners notified on change.
//
// History is the interface routeview consumes. Memory is an in-process
// implementation used for server rendering, WebSocket sessions and tests:
//
//	h := history.NewMemory(history.MemoryOptions{InitialEntries: []string{"/"}})
//	unlisten := h.Listen(func(u history.Update) {
//	    log.Println(u.Action, u.Location.Pathname)
//	})
//	defer unlisten()
//
//	h.Push("/users/5?tab=posts", nil)
//	h.Replace("/login", nil)
//	h.Back()
package history

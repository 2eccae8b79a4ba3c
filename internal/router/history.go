package router

import "sync"

// Entry is one step of navigation history. Resume carries view state to
// restore when the entry becomes current again (for example list settings).
type Entry struct {
	Match  Match
	Resume any
}

// History is a stack of visited routes, the way a browser's history API
// tracks pushState calls.
type History struct {
	mu      sync.Mutex
	entries []Entry
}

func newHistory() *History {
	return &History{entries: make([]Entry, 0, 8)}
}

func (h *History) push(m Match) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, Entry{Match: m})
}

func (h *History) pop() (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) < 2 {
		return Entry{}, false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return h.entries[len(h.entries)-1], true
}

func (h *History) current() (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

func (h *History) setResume(resume any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		return
	}
	h.entries[len(h.entries)-1].Resume = resume
}

func (h *History) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Navigate resolves p and pushes it onto the history.
func (r *Router) Navigate(p string) Match {
	m := r.Resolve(p)
	r.history.push(m)
	return m
}

// Back discards the current entry and returns the previous one. It reports
// false when there is nothing to go back to.
func (r *Router) Back() (Entry, bool) {
	return r.history.pop()
}

// Current returns the entry on top of the history. Before any navigation it
// resolves the home route.
func (r *Router) Current() Entry {
	if e, ok := r.history.current(); ok {
		return e
	}
	return Entry{Match: r.Resolve(r.HomePath())}
}

// SetResume attaches resume state to the current entry.
func (r *Router) SetResume(resume any) {
	r.history.setResume(resume)
}

// Len returns the number of history entries.
func (r *Router) Len() int {
	return r.history.len()
}

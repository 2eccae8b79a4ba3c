// Package loader tracks named in-flight operations so views can render
// loading indicators.
package loader

import (
	"sort"
	"sync"

	"go.uber.org/atomic"
)

// Tracker is the loading-state interface every async action reports to.
type Tracker interface {
	Start(name string)
	End(name string)
}

// Registry is a process-wide set of named counters. A name is loading while
// its counter is above zero, so overlapping operations sharing a name do not
// clear each other's flag.
type Registry struct {
	mu    sync.RWMutex
	flags map[string]*atomic.Int64
}

var _ Tracker = (*Registry)(nil)

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{flags: make(map[string]*atomic.Int64)}
}

// Start marks one more in-flight operation under name. A nil registry
// ignores the call.
func (r *Registry) Start(name string) {
	if r == nil {
		return
	}
	r.counter(name).Inc()
}

// End marks one operation under name as finished. Unmatched calls are ignored.
func (r *Registry) End(name string) {
	c := r.lookup(name)
	if c == nil {
		return
	}
	for {
		cur := c.Load()
		if cur <= 0 {
			return
		}
		if c.CompareAndSwap(cur, cur-1) {
			return
		}
	}
}

// Track starts name and returns a function that ends it exactly once.
func (r *Registry) Track(name string) (done func()) {
	if r == nil {
		return func() {}
	}
	r.Start(name)
	var once sync.Once
	return func() { once.Do(func() { r.End(name) }) }
}

// IsLoading reports whether name has operations in flight.
func (r *Registry) IsLoading(name string) bool {
	c := r.lookup(name)
	return c != nil && c.Load() > 0
}

// Any reports whether any operation is in flight.
func (r *Registry) Any() bool {
	return len(r.Active()) > 0
}

// Active returns the sorted names with operations in flight.
func (r *Registry) Active() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for name, c := range r.flags {
		if c.Load() > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (r *Registry) lookup(name string) *atomic.Int64 {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.flags[name]
}

func (r *Registry) counter(name string) *atomic.Int64 {
	if c := r.lookup(name); c != nil {
		return c
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.flags[name]; ok {
		return c
	}
	c := atomic.NewInt64(0)
	r.flags[name] = c
	return c
}

// Track is a helper for Tracker implementations without their own Track.
func Track(t Tracker, name string) (done func()) {
	if t == nil {
		return func() {}
	}
	if r, ok := t.(*Registry); ok {
		return r.Track(name)
	}
	t.Start(name)
	var once sync.Once
	return func() { once.Do(func() { t.End(name) }) }
}

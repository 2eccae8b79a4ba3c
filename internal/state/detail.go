package state

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"github.com/five82/curio/internal/api"
	"github.com/five82/curio/internal/loader"
)

// LoaderFetchObject is the loader flag raised while an object is fetched.
const LoaderFetchObject = "objectDetail/fetchObject"

// DetailState holds at most one object.
type DetailState struct {
	Object *api.Object
}

func initialDetailState() DetailState {
	return DetailState{}
}

// DetailModule is the object-detail slice of the store.
type DetailModule struct {
	root *Store

	mu    sync.RWMutex
	state DetailState
	gen   atomic.Uint64
}

func newDetailModule(root *Store) *DetailModule {
	m := &DetailModule{root: root, state: initialDetailState()}
	root.OnReset(func() { m.Commit(Reset{}) })
	return m
}

// Commit applies a mutation. A Reset also invalidates in-flight fetches.
func (m *DetailModule) Commit(mut DetailMutation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commitLocked(mut)
}

func (m *DetailModule) commitLocked(mut DetailMutation) {
	if _, ok := mut.(Reset); ok {
		m.gen.Inc()
	}
	mut.applyDetail(&m.state)
	m.root.traceCommit("objectDetail", mut)
}

// commitIfCurrent applies mut only when token is still the latest issued.
func (m *DetailModule) commitIfCurrent(token uint64, mut DetailMutation) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen.Load() != token {
		return false
	}
	m.commitLocked(mut)
	return true
}

// FetchObject loads the object with id and stores it. On failure the stored
// object is left untouched and the error is returned to the caller.
func (m *DetailModule) FetchObject(ctx context.Context, id int64) error {
	done := loader.Track(m.root.Loaders, LoaderFetchObject)
	defer done()

	if id <= 0 {
		return fmt.Errorf("fetch object %d: %w", id, ErrInvalidObjectID)
	}
	if m.root.fetcher == nil {
		return fmt.Errorf("fetch object %d: no api client configured", id)
	}

	token := m.gen.Inc()
	obj, err := m.root.fetcher.FetchObject(ctx, id)
	if err != nil {
		m.root.logger.Error("an error has occurred while fetching the object detail", "object_id", id, "error", err)
		return fmt.Errorf("fetch object %d: %w", id, err)
	}
	if !m.commitIfCurrent(token, SetObject{Object: obj}) {
		m.root.logger.Debug("dropping superseded object response", "object_id", id)
		return ErrSuperseded
	}
	return nil
}

// ResetStore broadcasts the store-wide reset.
func (m *DetailModule) ResetStore() {
	m.root.Reset()
}

// GetObject returns a copy of the current object, if any.
func (m *DetailModule) GetObject() (api.Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state.Object == nil {
		return api.Object{}, false
	}
	return m.state.Object.Clone(), true
}

// Snapshot returns a copy of the module state.
func (m *DetailModule) Snapshot() DetailState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := m.state
	if snap.Object != nil {
		obj := snap.Object.Clone()
		snap.Object = &obj
	}
	return snap
}

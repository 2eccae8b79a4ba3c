package state

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"github.com/five82/curio/internal/api"
	"github.com/five82/curio/internal/loader"
	"github.com/five82/curio/internal/urlquery"
)

// LoaderFetchObjects is the loader flag raised while a page is fetched.
const LoaderFetchObjects = "objectsList/fetchObjects"

// ListQuery selects one page of objects.
type ListQuery struct {
	Page       int
	FilterTerm string
	FilterType string
	SortBy     string
}

// Params returns the key/value form handed to the query serializer.
func (q ListQuery) Params() map[string]any {
	page := q.Page
	if page < 1 {
		page = 1
	}
	return map[string]any{
		"page":       page,
		"filterTerm": q.FilterTerm,
		"filterType": q.FilterType,
		"sortBy":     q.SortBy,
	}
}

// Settings is a partial update of the list settings. Nil fields are left
// unchanged when applied.
type Settings struct {
	Page       *int
	FilterTerm *string
	FilterType *string
	SortBy     *string
}

// WithPage returns a copy of s that sets the page.
func (s Settings) WithPage(page int) Settings {
	s.Page = &page
	return s
}

// WithFilterTerm returns a copy of s that sets the filter term.
func (s Settings) WithFilterTerm(term string) Settings {
	s.FilterTerm = &term
	return s
}

// WithFilterType returns a copy of s that sets the filter type.
func (s Settings) WithFilterType(kind string) Settings {
	s.FilterType = &kind
	return s
}

// WithSortBy returns a copy of s that sets the sort key.
func (s Settings) WithSortBy(key string) Settings {
	s.SortBy = &key
	return s
}

// SettingsFromQuery returns Settings that set every field of q.
func SettingsFromQuery(q ListQuery) Settings {
	return Settings{}.WithPage(q.Page).WithFilterTerm(q.FilterTerm).WithFilterType(q.FilterType).WithSortBy(q.SortBy)
}

// ListState is the objects-list slice of the store.
type ListState struct {
	Objects     []api.Object
	CurrentPage int
	FilterTerm  string
	FilterType  string
	SortBy      string
	Pagination  api.Pagination
}

// Query returns the list settings as a ListQuery.
func (s ListState) Query() ListQuery {
	return ListQuery{Page: s.CurrentPage, FilterTerm: s.FilterTerm, FilterType: s.FilterType, SortBy: s.SortBy}
}

func initialListState() ListState {
	return ListState{CurrentPage: 1}
}

// ListModule holds a page of object summaries and the settings that
// produced it.
type ListModule struct {
	root *Store

	mu    sync.RWMutex
	state ListState
	gen   atomic.Uint64
}

func newListModule(root *Store) *ListModule {
	m := &ListModule{root: root, state: initialListState()}
	root.OnReset(func() { m.Commit(Reset{}) })
	return m
}

// Commit applies a mutation. A Reset also invalidates in-flight fetches.
func (m *ListModule) Commit(mut ListMutation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commitLocked(mut)
}

func (m *ListModule) commitLocked(mut ListMutation) {
	if _, ok := mut.(Reset); ok {
		m.gen.Inc()
	}
	mut.applyList(&m.state)
	m.root.traceCommit("objectsList", mut)
}

// FetchObjects loads the page described by q. The collection and the
// pagination totals are committed together, and only if no newer fetch or
// reset was issued meanwhile.
func (m *ListModule) FetchObjects(ctx context.Context, q ListQuery) error {
	done := loader.Track(m.root.Loaders, LoaderFetchObjects)
	defer done()

	serialized := urlquery.Encode(q.Params())
	if m.root.fetcher == nil {
		return fmt.Errorf("fetch objects%s: no api client configured", serialized)
	}

	token := m.gen.Inc()
	page, err := m.root.fetcher.FetchObjects(ctx, serialized)
	if err != nil {
		m.root.logger.Error("an error has occurred while fetching the objects", "query", serialized, "error", err)
		return fmt.Errorf("fetch objects%s: %w", serialized, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen.Load() != token {
		m.root.logger.Debug("dropping superseded objects response", "query", serialized)
		return ErrSuperseded
	}
	objects := page.Objects
	if objects == nil {
		objects = []api.Object{}
	}
	m.commitLocked(SetObjects(objects))
	m.commitLocked(SetPagination(page.Pagination))
	return nil
}

// ApplySettings commits settings as a single patch. It does not fetch.
func (m *ListModule) ApplySettings(settings Settings) {
	m.Commit(SetSettings(settings))
}

// GetObjects returns a copy of the current collection.
func (m *ListModule) GetObjects() []api.Object {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneObjects(m.state.Objects)
}

// GetCurrentPage returns the current page number.
func (m *ListModule) GetCurrentPage() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.CurrentPage
}

// GetPagination returns the last server-reported totals.
func (m *ListModule) GetPagination() api.Pagination {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Pagination
}

// GetQuery returns the current settings as a ListQuery.
func (m *ListModule) GetQuery() ListQuery {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Query()
}

// Snapshot returns a copy of the module state.
func (m *ListModule) Snapshot() ListState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := m.state
	snap.Objects = cloneObjects(m.state.Objects)
	return snap
}

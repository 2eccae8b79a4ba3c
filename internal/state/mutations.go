package state

import "github.com/five82/curio/internal/api"

// Mutation is a synchronous, named state write.
type Mutation interface {
	Name() string
}

// DetailMutation is a Mutation the detail module knows how to apply.
type DetailMutation interface {
	Mutation
	applyDetail(*DetailState)
}

// ListMutation is a Mutation the list module knows how to apply.
type ListMutation interface {
	Mutation
	applyList(*ListState)
}

// Reset restores a module to its initial snapshot.
type Reset struct{}

func (Reset) Name() string { return "RESET_STORE" }

func (Reset) applyDetail(s *DetailState) { *s = initialDetailState() }

func (Reset) applyList(s *ListState) { *s = initialListState() }

// SetObject replaces the current object.
type SetObject struct{ Object api.Object }

func (SetObject) Name() string { return "SET_OBJECT" }

func (m SetObject) applyDetail(s *DetailState) {
	obj := m.Object.Clone()
	s.Object = &obj
}

// SetObjects replaces the object collection.
type SetObjects []api.Object

func (SetObjects) Name() string { return "SET_OBJECTS" }

func (m SetObjects) applyList(s *ListState) { s.Objects = cloneObjects(m) }

// SetCurrentPage sets the page number.
type SetCurrentPage int

func (SetCurrentPage) Name() string { return "SET_CURRENT_PAGE" }

func (m SetCurrentPage) applyList(s *ListState) { s.CurrentPage = int(m) }

// SetFilterTerm sets the free-text filter.
type SetFilterTerm string

func (SetFilterTerm) Name() string { return "SET_FILTER_TERM" }

func (m SetFilterTerm) applyList(s *ListState) { s.FilterTerm = string(m) }

// SetFilterType sets the filter category.
type SetFilterType string

func (SetFilterType) Name() string { return "SET_FILTER_TYPE" }

func (m SetFilterType) applyList(s *ListState) { s.FilterType = string(m) }

// SetSortBy sets the sort key.
type SetSortBy string

func (SetSortBy) Name() string { return "SET_SORT_BY" }

func (m SetSortBy) applyList(s *ListState) { s.SortBy = string(m) }

// SetSettings patches the fields present in Settings.
type SetSettings Settings

func (SetSettings) Name() string { return "SET_SETTINGS" }

func (m SetSettings) applyList(s *ListState) {
	if m.Page != nil {
		s.CurrentPage = *m.Page
	}
	if m.FilterTerm != nil {
		s.FilterTerm = *m.FilterTerm
	}
	if m.FilterType != nil {
		s.FilterType = *m.FilterType
	}
	if m.SortBy != nil {
		s.SortBy = *m.SortBy
	}
}

// SetPagination stores the server-reported totals.
type SetPagination api.Pagination

func (SetPagination) Name() string { return "SET_PAGINATION_SETTINGS" }

func (m SetPagination) applyList(s *ListState) { s.Pagination = api.Pagination(m) }

var (
	_ DetailMutation = Reset{}
	_ DetailMutation = SetObject{}
	_ ListMutation   = Reset{}
	_ ListMutation   = SetObjects(nil)
	_ ListMutation   = SetCurrentPage(0)
	_ ListMutation   = SetFilterTerm("")
	_ ListMutation   = SetFilterType("")
	_ ListMutation   = SetSortBy("")
	_ ListMutation   = SetSettings{}
	_ ListMutation   = SetPagination{}
)

func cloneObjects(items []api.Object) []api.Object {
	if items == nil {
		return nil
	}
	dup := make([]api.Object, len(items))
	for i, item := range items {
		dup[i] = item.Clone()
	}
	return dup
}

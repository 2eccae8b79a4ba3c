package state

import (
	"context"
	"errors"
	"net/url"
	"reflect"
	"testing"

	"github.com/five82/curio/internal/api"
)

func TestList_FetchObjectsSerializesQueryAndStoresPage(t *testing.T) {
	returned := []api.Object{object(7, "g"), object(3, "c"), object(5, "e")}
	f := &fakeFetcher{page: api.ObjectPage{
		Objects:    returned,
		Pagination: api.Pagination{TotalObjects: 43, TotalPages: 5},
	}}
	s := New(f)

	err := s.List.FetchObjects(context.Background(), ListQuery{Page: 2, FilterTerm: "foo"})
	if err != nil {
		t.Fatalf("FetchObjects returned error: %v", err)
	}

	if len(f.queries) != 1 {
		t.Fatalf("fetcher called %d times, want 1", len(f.queries))
	}
	if f.queries[0] != "?filterTerm=foo&page=2" {
		t.Fatalf("serialized query = %q, want ?filterTerm=foo&page=2", f.queries[0])
	}
	values, err := url.ParseQuery(f.queries[0][1:])
	if err != nil {
		t.Fatalf("ParseQuery returned error: %v", err)
	}
	if len(values) != 2 || values.Get("page") != "2" || values.Get("filterTerm") != "foo" {
		t.Fatalf("query values = %v, want exactly page=2 filterTerm=foo", values)
	}

	if got := s.List.GetObjects(); !reflect.DeepEqual(got, returned) {
		t.Fatalf("GetObjects = %#v, want %#v", got, returned)
	}
	if got := s.List.GetPagination(); got != (api.Pagination{TotalObjects: 43, TotalPages: 5}) {
		t.Fatalf("GetPagination = %#v, want 43/5 from response", got)
	}
	if s.Loaders.IsLoading(LoaderFetchObjects) {
		t.Fatalf("loader flag still raised after success")
	}
}

func TestList_FetchObjectsEmptyPageIsNotNil(t *testing.T) {
	s := New(&fakeFetcher{})
	if err := s.List.FetchObjects(context.Background(), ListQuery{}); err != nil {
		t.Fatalf("FetchObjects returned error: %v", err)
	}
	got := s.List.GetObjects()
	if got == nil || len(got) != 0 {
		t.Fatalf("GetObjects = %#v, want empty non-nil slice", got)
	}
}

func TestList_FetchObjectsFailureIsReturned(t *testing.T) {
	f := &fakeFetcher{page: api.ObjectPage{Objects: []api.Object{object(1, "a")}}}
	s := New(f)
	if err := s.List.FetchObjects(context.Background(), ListQuery{Page: 1}); err != nil {
		t.Fatalf("FetchObjects returned error: %v", err)
	}

	f.setErr(errBoom)
	err := s.List.FetchObjects(context.Background(), ListQuery{Page: 2})
	if !errors.Is(err, errBoom) {
		t.Fatalf("FetchObjects error = %v, want wrapped boom", err)
	}
	if got := s.List.GetObjects(); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("GetObjects = %#v, want previous page kept", got)
	}
	if s.Loaders.IsLoading(LoaderFetchObjects) {
		t.Fatalf("loader flag still raised after failure")
	}
}

func TestList_ApplySettingsPatchesOnlyGivenFields(t *testing.T) {
	s := New(&fakeFetcher{})
	s.List.Commit(SetFilterTerm("blue"))
	s.List.Commit(SetFilterType("painting"))
	s.List.Commit(SetSortBy("-date"))
	s.List.Commit(SetPagination{TotalObjects: 9, TotalPages: 3})
	before := s.List.Snapshot()

	s.List.ApplySettings(Settings{}.WithPage(3))

	after := s.List.Snapshot()
	if after.CurrentPage != 3 {
		t.Fatalf("CurrentPage = %d, want 3", after.CurrentPage)
	}
	after.CurrentPage = before.CurrentPage
	if !reflect.DeepEqual(after, before) {
		t.Fatalf("ApplySettings changed other fields: got %#v, want %#v", after, before)
	}
}

func TestList_ApplySettingsDoesNotFetch(t *testing.T) {
	f := &fakeFetcher{}
	s := New(f)
	s.List.ApplySettings(Settings{}.WithFilterTerm("x"))
	if len(f.queries) != 0 {
		t.Fatalf("ApplySettings triggered fetch: %v", f.queries)
	}
	if got := s.List.GetQuery(); got.FilterTerm != "x" || got.Page != 1 {
		t.Fatalf("GetQuery = %#v, want filter x on page 1", got)
	}
}

func TestList_MutationsAssignFields(t *testing.T) {
	s := New(&fakeFetcher{})
	s.List.Commit(SetCurrentPage(4))
	s.List.Commit(SetFilterTerm("t"))
	s.List.Commit(SetFilterType("k"))
	s.List.Commit(SetSortBy("name"))
	s.List.Commit(SetObjects{object(1, "a")})
	s.List.Commit(SetSettings(Settings{}.WithSortBy("date")))

	got := s.List.GetQuery()
	want := ListQuery{Page: 4, FilterTerm: "t", FilterType: "k", SortBy: "date"}
	if got != want {
		t.Fatalf("GetQuery = %#v, want %#v", got, want)
	}
	if len(s.List.GetObjects()) != 1 {
		t.Fatalf("SetObjects not applied")
	}

	s.List.Commit(Reset{})
	if snap := s.List.Snapshot(); !reflect.DeepEqual(snap, initialListState()) {
		t.Fatalf("after Reset snapshot = %#v, want initial", snap)
	}
}

func TestList_StaleResponseDropped(t *testing.T) {
	gate := make(chan struct{})
	f := &fakeFetcher{gate: gate, page: api.ObjectPage{Objects: []api.Object{object(1, "a")}}}
	s := New(f)

	errCh := make(chan error, 1)
	go func() { errCh <- s.List.FetchObjects(context.Background(), ListQuery{Page: 1}) }()
	waitFor(t, func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		return len(f.queries) == 1
	})

	s.Reset()
	close(gate)

	if err := <-errCh; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("FetchObjects error = %v, want ErrSuperseded", err)
	}
	if got := s.List.GetObjects(); got != nil {
		t.Fatalf("GetObjects = %#v, want nil after reset", got)
	}
}

func TestListQuery_ParamsNormalisesPage(t *testing.T) {
	params := ListQuery{Page: 0, SortBy: "name"}.Params()
	if params["page"] != 1 {
		t.Fatalf("page param = %v, want 1", params["page"])
	}
	if params["sortBy"] != "name" {
		t.Fatalf("sortBy param = %v, want name", params["sortBy"])
	}
}

func TestSettingsFromQuery(t *testing.T) {
	q := ListQuery{Page: 2, FilterTerm: "a", FilterType: "b", SortBy: "c"}
	s := New(&fakeFetcher{})
	s.List.ApplySettings(SettingsFromQuery(q))
	if got := s.List.GetQuery(); got != q {
		t.Fatalf("GetQuery = %#v, want %#v", got, q)
	}
}

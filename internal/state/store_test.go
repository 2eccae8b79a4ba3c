package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/five82/curio/internal/api"
)

// fakeFetcher serves canned responses and records the calls it receives.
type fakeFetcher struct {
	mu       sync.Mutex
	objects  map[int64]api.Object
	page     api.ObjectPage
	err      error
	queries  []string
	ids      []int64
	gate     chan struct{}
	gateByID map[int64]chan struct{}
}

func (f *fakeFetcher) FetchObject(ctx context.Context, id int64) (api.Object, error) {
	f.mu.Lock()
	f.ids = append(f.ids, id)
	gate := f.gateByID[id]
	err := f.err
	obj, ok := f.objects[id]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return api.Object{}, err
	}
	if !ok {
		return api.Object{}, &api.StatusError{Method: "GET", Path: fmt.Sprintf("/objects/%d", id), StatusCode: 404}
	}
	return obj, nil
}

func (f *fakeFetcher) FetchObjects(ctx context.Context, serializedQuery string) (api.ObjectPage, error) {
	f.mu.Lock()
	f.queries = append(f.queries, serializedQuery)
	gate := f.gate
	err := f.err
	page := f.page
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return api.ObjectPage{}, err
	}
	return page, nil
}

func (f *fakeFetcher) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func object(id int64, title string) api.Object {
	raw, _ := json.Marshal(map[string]any{"id": id, "title": title})
	return api.Object{ID: id, Raw: raw}
}

var errBoom = errors.New("boom")

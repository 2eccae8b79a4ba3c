package loader

import (
	"reflect"
	"sync"
	"testing"
)

func TestRegistry_StartEnd(t *testing.T) {
	r := NewRegistry()

	if r.IsLoading("a") || r.Any() {
		t.Fatalf("fresh registry reports loading")
	}

	r.Start("a")
	r.Start("a")
	r.Start("b")
	if !r.IsLoading("a") || !r.IsLoading("b") {
		t.Fatalf("IsLoading = false after Start")
	}
	if got := r.Active(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("Active = %v, want [a b]", got)
	}

	r.End("a")
	if !r.IsLoading("a") {
		t.Fatalf("IsLoading(a) = false with one operation still in flight")
	}
	r.End("a")
	r.End("b")
	if r.Any() {
		t.Fatalf("Any = true after all operations ended, active=%v", r.Active())
	}
}

func TestRegistry_EndNeverGoesNegative(t *testing.T) {
	r := NewRegistry()
	r.End("ghost")
	r.Start("x")
	r.End("x")
	r.End("x")
	r.Start("x")
	if !r.IsLoading("x") {
		t.Fatalf("IsLoading(x) = false, extra End must not drive counter below zero")
	}
}

func TestRegistry_TrackIsIdempotent(t *testing.T) {
	r := NewRegistry()
	other := r.Track("fetch")
	done := r.Track("fetch")
	done()
	done()
	if !r.IsLoading("fetch") {
		t.Fatalf("double done() ended another operation's flag")
	}
	other()
	if r.IsLoading("fetch") {
		t.Fatalf("IsLoading = true after both operations finished")
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			done := r.Track("shared")
			_ = r.Active()
			done()
		}()
	}
	wg.Wait()
	if r.IsLoading("shared") {
		t.Fatalf("IsLoading = true after all goroutines finished")
	}
}

type recordingTracker struct{ calls []string }

func (t *recordingTracker) Start(name string) { t.calls = append(t.calls, "start:"+name) }
func (t *recordingTracker) End(name string)   { t.calls = append(t.calls, "end:"+name) }

func TestTrack_GenericTracker(t *testing.T) {
	rt := &recordingTracker{}
	done := Track(rt, "n")
	done()
	done()
	if want := []string{"start:n", "end:n"}; !reflect.DeepEqual(rt.calls, want) {
		t.Fatalf("calls = %v, want %v", rt.calls, want)
	}

	Track(nil, "n")()
}

func TestRegistry_NilIsSafe(t *testing.T) {
	var r *Registry
	r.Start("a")
	r.End("a")
	r.Track("a")()
	if r.IsLoading("a") || r.Any() {
		t.Fatalf("nil registry reports loading")
	}

	var tracker Tracker = r
	Track(tracker, "a")()
}

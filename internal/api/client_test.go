package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultBaseURL {
		t.Fatalf("base = %q, want %q", u.String(), defaultBaseURL)
	}

	u, err = parseBaseURL("example.com:1234/api/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "example.com:1234" {
		t.Fatalf("url = %q, want http://example.com:1234", u.String())
	}
	if u.Path != "/api" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL(http://) returned nil error, want missing host")
	}
}

func TestClient_FetchesObjectsUnderBasePath(t *testing.T) {
	t.Parallel()

	var gotPath, gotQuery, gotUserAgent, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get(headerRequestID)
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/objects/42":
			_, _ = w.Write([]byte(`{"id":42,"title":"Vase","tags":["blue"]}`))
		case "/api/objects":
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			w.Header().Set(headerTotalCount, "25")
			w.Header().Set(headerTotalPages, "3")
			_, _ = w.Write([]byte(`[{"id":3,"title":"c"},{"id":1,"title":"a"},{"id":2,"title":"b"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/api")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	obj, err := c.FetchObject(ctx, 42)
	if err != nil {
		t.Fatalf("FetchObject returned error: %v", err)
	}
	if obj.ID != 42 || obj.Title() != "Vase" {
		t.Fatalf("FetchObject = %#v, want id=42 title=Vase", obj)
	}
	if string(obj.Raw) != `{"id":42,"title":"Vase","tags":["blue"]}` {
		t.Fatalf("Raw = %s, want payload verbatim", obj.Raw)
	}

	page, err := c.FetchObjects(ctx, "?filterTerm=foo&page=2")
	if err != nil {
		t.Fatalf("FetchObjects returned error: %v", err)
	}
	if gotPath != "/api/objects" || gotQuery != "filterTerm=foo&page=2" {
		t.Fatalf("request = %s?%s, want /api/objects?filterTerm=foo&page=2", gotPath, gotQuery)
	}
	if len(page.Objects) != 3 || page.Objects[0].ID != 3 || page.Objects[1].ID != 1 || page.Objects[2].ID != 2 {
		t.Fatalf("FetchObjects order = %#v, want server order 3,1,2", page.Objects)
	}
	if page.Pagination != (Pagination{TotalObjects: 25, TotalPages: 3}) {
		t.Fatalf("Pagination = %#v, want 25/3", page.Pagination)
	}

	if !strings.HasPrefix(gotUserAgent, "curio/") {
		t.Fatalf("User-Agent = %q, want curio/*", gotUserAgent)
	}
	if gotRequestID == "" {
		t.Fatalf("X-Request-ID header missing")
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/objects":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/objects/7":
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchObjects(context.Background(), "")
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchObjects error = %v, want decode response error", err)
	}

	_, err = c.FetchObject(context.Background(), 7)
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusInternalServerError {
		t.Fatalf("FetchObject error = %v, want StatusError 500", err)
	}
	if !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("FetchObject error = %q, want it to mention status 500", err.Error())
	}

	_, err = c.FetchObject(context.Background(), 8)
	if !IsNotFound(err) {
		t.Fatalf("FetchObject(8) error = %v, want not found", err)
	}
}

func TestClient_AcceptsUnexpectedShapes(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/objects":
			_, _ = w.Write([]byte(`[{"id":1},{"id":2.5}]`))
		case "/objects/7":
			_, _ = w.Write([]byte(`{"id":"OBJ-7","name":"Vase"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	obj, err := c.FetchObject(context.Background(), 7)
	if err != nil {
		t.Fatalf("FetchObject returned error: %v", err)
	}
	if obj.ID != 0 || obj.Title() != "Vase" {
		t.Fatalf("object = %d %q, want zero id titled Vase", obj.ID, obj.Title())
	}

	page, err := c.FetchObjects(context.Background(), "")
	if err != nil {
		t.Fatalf("FetchObjects returned error: %v", err)
	}
	if len(page.Objects) != 2 {
		t.Fatalf("len(Objects) = %d, want 2", len(page.Objects))
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	c, err := NewClient(addr, WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchObject(context.Background(), 1)
	if err == nil || !strings.Contains(err.Error(), "execute request") {
		t.Fatalf("FetchObject error = %v, want execute request error", err)
	}
}

func TestClient_NilReceiver(t *testing.T) {
	var c *Client
	if _, err := c.FetchObject(context.Background(), 1); err == nil {
		t.Fatalf("nil client FetchObject returned nil error")
	}
	if _, err := c.FetchObjects(context.Background(), ""); err == nil {
		t.Fatalf("nil client FetchObjects returned nil error")
	}
}

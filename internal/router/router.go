package router

import (
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/gorilla/mux"
)

// View identifies one of the terminal view states.
type View int

const (
	ViewHome View = iota
	ViewList
	ViewDetail
	ViewNotFound
)

func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewList:
		return "objects-list"
	case ViewDetail:
		return "object-detail"
	default:
		return "not-found"
	}
}

// Route names.
const (
	RouteHome         = "home"
	RouteObjectsList  = "objects-list"
	RouteObjectDetail = "object-detail"
	RouteNotFound     = "not-found"
)

// Match is the result of resolving a path.
type Match struct {
	Name   string
	View   View
	Path   string
	Params map[string]string
}

// Prop returns a path parameter as its raw string segment.
func (m Match) Prop(name string) string {
	return m.Params[name]
}

// Router maps paths to views. It never fails to resolve: unknown paths
// resolve to ViewNotFound.
type Router struct {
	base    string
	mux     *mux.Router
	views   map[string]View
	history *History
}

// New builds a router whose routes live under basePath ("" or "/" for the
// root). Routes are matched in registration order, so the literal
// /objects/list wins over /objects/{id}.
func New(basePath string) *Router {
	base := normalizeBase(basePath)
	m := mux.NewRouter()

	m.Path(base + "/").Name(RouteHome)
	if base != "" {
		m.Path(base).Name(RouteHome + "-bare")
	}
	m.Path(base + "/objects/list").Name(RouteObjectsList)
	m.Path(base + "/objects/{id}").Name(RouteObjectDetail)

	r := &Router{
		base: base,
		mux:  m,
		views: map[string]View{
			RouteHome:           ViewHome,
			RouteHome + "-bare": ViewHome,
			RouteObjectsList:    ViewList,
			RouteObjectDetail:   ViewDetail,
		},
	}
	r.history = newHistory()
	return r
}

// Base returns the normalised base path ("" for the root).
func (r *Router) Base() string {
	return r.base
}

// Resolve matches p against the route table.
func (r *Router) Resolve(p string) Match {
	cleaned := cleanPath(p)
	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: cleaned}}

	var rm mux.RouteMatch
	if !r.mux.Match(req, &rm) || rm.MatchErr != nil || rm.Route == nil {
		return Match{Name: RouteNotFound, View: ViewNotFound, Path: cleaned}
	}
	name := rm.Route.GetName()
	view, ok := r.views[name]
	if !ok {
		return Match{Name: RouteNotFound, View: ViewNotFound, Path: cleaned}
	}
	if name == RouteHome+"-bare" {
		name = RouteHome
	}
	params := make(map[string]string, len(rm.Vars))
	for k, v := range rm.Vars {
		params[k] = v
	}
	return Match{Name: name, View: view, Path: cleaned, Params: params}
}

// URL builds the path of a named route. pairs are alternating parameter
// names and values, as accepted by mux.
func (r *Router) URL(name string, pairs ...string) (string, error) {
	route := r.mux.Get(name)
	if route == nil {
		return "", fmt.Errorf("router: unknown route %q", name)
	}
	u, err := route.URLPath(pairs...)
	if err != nil {
		return "", fmt.Errorf("router: build %q: %w", name, err)
	}
	return u.Path, nil
}

// ObjectPath returns the detail path for id.
func (r *Router) ObjectPath(id int64) string {
	p, err := r.URL(RouteObjectDetail, "id", fmt.Sprintf("%d", id))
	if err != nil {
		return r.base + fmt.Sprintf("/objects/%d", id)
	}
	return p
}

// ListPath returns the objects list path.
func (r *Router) ListPath() string {
	return r.base + "/objects/list"
}

// HomePath returns the home path.
func (r *Router) HomePath() string {
	return r.base + "/"
}

func normalizeBase(basePath string) string {
	trimmed := strings.TrimSpace(basePath)
	if trimmed == "" || trimmed == "/" {
		return ""
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(path.Clean(trimmed), "/")
}

// cleanPath mirrors the cleaning mux applies before serving: rooted, dot
// segments and trailing slashes removed, query and fragment dropped.
func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	return path.Clean(p)
}

// Package router maps paths to curio's views.
//
// The route table is fixed:
//
//	{base}/              home
//	{base}/objects/list  objects list
//	{base}/objects/{id}  object detail (id passed through as a string)
//	anything else        not found
//
// Matching is delegated to gorilla/mux. The router never returns an error
// from Resolve; unknown paths resolve to ViewNotFound.
//
// Navigation is history-based: Navigate pushes an entry, Back pops it, and
// each entry can carry resume state so a view can restore itself when the
// user returns to it.
package router

// Package api provides an HTTP client for the objects REST API.
//
// # Overview
//
// The client is deliberately thin: it builds URLs under a configurable API
// root, performs GET requests, and decodes JSON. It never validates the shape
// of an object beyond its integer id, so whatever the server sends is stored
// and displayed as-is.
//
// # Endpoints
//
//	GET {base}/objects/{id}     → a single object
//	GET {base}/objects{?query}  → a page of object summaries
//
// The list query string is produced by the urlquery package; the client only
// appends it to the path.
//
// # Pagination
//
// Totals come from the response, in this order of precedence:
//
//  1. envelope fields (totalObjects, totalPages) when the body is an object
//  2. X-Total-Count / X-Total-Pages headers
//  3. X-Total-Count combined with X-Per-Page
//  4. the returned page itself
//
// # Errors
//
//   - network failures are wrapped as "execute request: ..."
//   - status codes >= 400 return *StatusError
//   - undecodable bodies are wrapped as "decode response: ..."
//
// Every request carries an X-Request-ID that is also written to the debug
// log, so a failing call can be matched with server-side logs.
package api

// Package ui is curio's terminal interface, built on Bubble Tea.
//
// The root Model owns the router and the state store. Each route maps to a
// view:
//
//   - Home: landing page with the API URL and recently viewed objects
//   - List: one page of objects with paging, filter term, filter type and sort
//   - Detail: every field of a single object in a scrollable viewport
//   - Not found: the unmatched path
//
// A logs overlay (L) shows the tail of curio's own log file, and ":" opens a
// prompt that navigates to any path.
//
// Fetches run as tea.Cmds that call into the store and report back with a
// message. The store drops responses that a newer fetch or a reset has
// superseded, and the view ignores those. List settings are applied before
// the fetch that uses them, so a fetch always sees the settings it was asked
// for. Leaving the detail view resets the store; the list restores its
// settings from the history entry it stored on the way out.
package ui

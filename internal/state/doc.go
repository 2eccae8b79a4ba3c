// Package state provides the client-side store for curio.
//
// # Overview
//
// The store is split into two modules, each an isolated slice of state with
// its own getters, mutations, and actions:
//
//   - DetailModule: at most one object, fetched by id
//   - ListModule: one page of object summaries plus the settings (page,
//     filter term, filter type, sort key) and server-reported pagination
//     totals that go with it
//
// Views call actions (FetchObject, FetchObjects, ApplySettings, ResetStore),
// actions commit mutations, and views read state through getters. Getters
// return copies, so nothing outside the package can write state except by
// committing a mutation.
//
// # Mutations
//
// Mutations are small value types (SetObject, SetObjects, SetCurrentPage,
// SetSettings, ...) implementing DetailMutation or ListMutation. Each
// variant applies itself, so adding one without a handler does not compile.
//
//	store.List.Commit(state.SetCurrentPage(3))
//	store.List.ApplySettings(state.Settings{}.WithPage(3))
//
// # Reset
//
// Each module has an initial state factory. On construction it subscribes to
// the store's reset bus; Store.Reset (or DetailModule.ResetStore) commits
// Reset into every subscriber, restoring exactly the initial snapshot.
//
// # Concurrency Model
//
// Actions block on HTTP and are meant to run off the UI goroutine. Each
// module guards its state with a sync.RWMutex held only while copying.
//
// Fetches are tagged with a token from a per-module generation counter.
// When a response arrives, it is committed only if its token is still the
// latest; otherwise the action returns ErrSuperseded and state is left
// alone. A Reset also advances the counter, so a fetch started before a
// reset never writes into the freshly reset module.
//
// # Loading Indicators
//
// Both fetch actions raise a named flag in the shared loader.Registry for
// their whole duration, including error paths:
//
//   - objectDetail/fetchObject
//   - objectsList/fetchObjects
package state

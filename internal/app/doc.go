// Package app is curio's composition root.
//
// Build wires the pieces in order:
//
//  1. config.Load reads ~/.config/curio/config.toml and environment overrides
//  2. logging.New opens the JSON log file (or LogWriter for CLI commands)
//  3. api.NewClient targets the configured API URL
//  4. prefs.Load reads theme, last path and recently viewed ids
//  5. state.New builds the store over the client
//  6. router.New registers the routes under the base path
//
// Run builds the App and hands it to ui.Run, blocking until the user quits
// or the context is cancelled. Configuration, logging and client setup
// failures are returned; fetch failures at runtime are logged and shown in
// the UI instead.
package app

// Package commands defines the curio CLI.
//
// Commands
//
//   - curio          Browse the objects catalogue in the terminal
//   - list           Print one page of objects
//   - show <id>      Print a single object
//   - route <path>   Resolve a path to its view and props
//
// The root command runs the TUI. Subcommands build the same App as the TUI
// but log to stderr at warn level unless --log-level says otherwise.
package commands

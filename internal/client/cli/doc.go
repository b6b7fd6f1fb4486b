// Package cli provides the interactive admin console.
//
// It wires configuration, the local session database, the HTTP client, the
// application services and the router, then runs a REPL. Every screen change
// goes through the router, so the navigation guard decides whether a command
// lands on the requested screen or on the login screen.
//
// Key features:
//   - Login / Logout, whoami
//   - Users and roles: list with filters, show, add, edit, delete
//   - go <path> to open any in-app route, e.g. "go /users?role=admin"
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli

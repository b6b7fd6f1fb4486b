// Package client contains the transport side of the admin console.
//
// # Overview
//
// The package provides:
//  1. A transport contract (Client) used by the console services.
//  2. HTTPClient, the REST implementation. It checks the session before a
//     request leaves, injects the bearer token, and classifies failed
//     responses.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring the
//     sqlite database that holds the session slots.
//
// # Error Handling
//
// Locally rejected calls return common.ErrSessionExpired. Non-2xx responses
// return *StatusError, which matches common.ErrUnauthorized, ErrForbidden,
// ErrNotFound, ErrServer or ErrBadStatus via errors.Is. Transport failures
// are returned unchanged.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use; every call re-reads the session.
// All operations accept context.Context and honour cancellation.
package client

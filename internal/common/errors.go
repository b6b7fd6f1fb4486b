// Package common defines shared constants and sentinel errors used across
// the session, transport and routing layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Session errors.
	ErrSessionExpired = errors.New("session expired, please log in again")

	// Remote API status errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("access denied")
	ErrNotFound     = errors.New("requested resource does not exist")
	ErrServer       = errors.New("internal server error")
	ErrBadStatus    = errors.New("unexpected response status")

	// Navigation errors.
	ErrRouteNotFound    = errors.New("route not found")
	ErrTooManyRedirects = errors.New("too many redirects")

	// Input errors.
	ErrInvalidInput = errors.New("invalid input")
)

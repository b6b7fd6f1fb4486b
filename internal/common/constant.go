// Package common contains shared constants and sentinel errors used across
// the console packages.
package common

// Keys of the two persisted session slots. They are read and written
// independently of each other.
const (
	AccessTokenKey = "access_token"
	UserInfoKey    = "user_info"
)

// AuthorizationHeaderName carries the bearer token on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName tags every outbound request for log correlation.
const RequestIDHeaderName = "X-Request-ID"

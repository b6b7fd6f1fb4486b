// Package kv stores string-valued slots (access token, cached identity) in the
// local sqlite database.
package kv

import "context"

// Repository is a string key/value store. Get reports found=false for a
// missing key instead of an error. Delete is idempotent.
type Repository interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

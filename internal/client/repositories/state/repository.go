// Package state persists the client's session keys (login flag, tokens,
// serialized user profile) in a local SQLite key-value table. It is the Go
// counterpart of the browser's persistent key-value store.
package state

import "context"

// Repository is a string key-value store. Get returns common.ErrNotFound
// for an absent key; Clear wipes the whole store (logout).
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Clear(ctx context.Context) error
}

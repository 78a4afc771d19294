// Package driven defines the driven port interfaces implemented by
// storage adapters.
package driven

import (
	"context"
	"errors"
)

// ErrStoreUnavailable is returned when no key-value store has been
// configured, or the configured store handle is missing.
var ErrStoreUnavailable = errors.New("key-value store is not available: configure APIKEYS_KV_URL or a local database path")

// KV is the driven port for the opaque key-value service that persists
// the collection blob. Implementations are the remote hosted service
// client and the local SQLite fallback.
type KV interface {
	// Get returns the value stored under key. ok is false when the key
	// has never been set; that is not an error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key, value string) error
}

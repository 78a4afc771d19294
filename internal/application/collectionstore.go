// Package application contains the services between the driving adapters
// and the KV port: blob-level persistence of the collection, the import
// pipeline, and the state-owning key service.
package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jay-reddin/api-keys/internal/domain/model"
	"github.com/jay-reddin/api-keys/internal/domain/port/driven"
)

// DefaultNamespaceKey is the fixed key under which the whole collection
// blob lives in the key-value store.
const DefaultNamespaceKey = "api_keys"

// ErrCorruptData is returned by Load when the stored blob is not a valid
// JSON array of key records.
var ErrCorruptData = errors.New("stored key data is not valid JSON")

// CollectionStore persists the whole collection as one JSON blob under a
// single namespace key. Merging never happens here; callers hand in the
// exact collection to be persisted.
type CollectionStore struct {
	kv           driven.KV
	namespaceKey string
}

// NewCollectionStore creates a CollectionStore over the given KV store.
// An empty namespaceKey selects DefaultNamespaceKey. kv may be nil, in
// which case every operation reports driven.ErrStoreUnavailable.
func NewCollectionStore(kv driven.KV, namespaceKey string) *CollectionStore {
	if namespaceKey == "" {
		namespaceKey = DefaultNamespaceKey
	}
	return &CollectionStore{kv: kv, namespaceKey: namespaceKey}
}

// Load fetches and decodes the persisted collection. A namespace key that
// was never written yields an empty collection, not an error.
func (s *CollectionStore) Load(ctx context.Context) ([]model.APIKey, error) {
	if s.kv == nil {
		return nil, driven.ErrStoreUnavailable
	}

	blob, ok, err := s.kv.Get(ctx, s.namespaceKey)
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	if !ok || blob == "" {
		return []model.APIKey{}, nil
	}

	var keys []model.APIKey
	if err := json.Unmarshal([]byte(blob), &keys); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	if keys == nil {
		keys = []model.APIKey{}
	}

	return keys, nil
}

// Save encodes the collection and overwrites the stored blob. On failure
// the previous blob is untouched and the caller must keep its previous
// in-memory state.
func (s *CollectionStore) Save(ctx context.Context, keys []model.APIKey) error {
	if s.kv == nil {
		return driven.ErrStoreUnavailable
	}
	if keys == nil {
		keys = []model.APIKey{}
	}

	blob, err := json.Marshal(keys)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}

	if err := s.kv.Set(ctx, s.namespaceKey, string(blob)); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}

	return nil
}

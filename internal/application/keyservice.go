package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jay-reddin/api-keys/internal/domain/model"
)

// ErrMissingField is returned by Add and Update when the label or key is
// empty.
var ErrMissingField = errors.New("label and key must both be provided")

// KeyService owns the in-memory current collection and keeps it
// synchronized with the persisted blob. Every mutation builds the
// successor collection, saves it through the CollectionStore, and
// replaces the in-memory state only when the save succeeds, so a failed
// save always preserves last-known-good. A mutex serializes mutations: a
// save never starts before its predecessor's outcome is observed.
type KeyService struct {
	store  *CollectionStore
	logger *slog.Logger

	now   func() time.Time
	newID func() string

	mu     sync.Mutex
	keys   []model.APIKey
	loaded bool
}

// NewKeyService creates a KeyService over the given CollectionStore.
func NewKeyService(store *CollectionStore, logger *slog.Logger) *KeyService {
	return &KeyService{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
		keys:   []model.APIKey{},
	}
}

// Load fetches the persisted collection into memory. The service becomes
// loaded even when the fetch fails, so the UI can operate on an empty
// collection and surface the error; the in-memory state is only replaced
// on success.
func (s *KeyService) Load(ctx context.Context) error {
	keys, err := s.store.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	if err != nil {
		return fmt.Errorf("load keys: %w", err)
	}
	s.keys = keys

	s.logger.Info("key collection loaded", "keys", len(keys))
	return nil
}

// Loaded reports whether the initial load has completed.
func (s *KeyService) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Keys returns a snapshot copy of the current collection in insertion order.
func (s *KeyService) Keys() []model.APIKey {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.APIKey, len(s.keys))
	copy(out, s.keys)
	return out
}

// Add appends a new record with a generated id and the current timestamp,
// then persists the grown collection. Labels are not required to be
// unique here; only import dedups by label.
func (s *KeyService) Add(ctx context.Context, label, key string) (model.APIKey, error) {
	if strings.TrimSpace(label) == "" || strings.TrimSpace(key) == "" {
		return model.APIKey{}, ErrMissingField
	}

	record := model.APIKey{
		ID:        s.newID(),
		Label:     label,
		Key:       key,
		CreatedAt: s.now().UnixMilli(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.APIKey, 0, len(s.keys)+1)
	next = append(next, s.keys...)
	next = append(next, record)

	if err := s.store.Save(ctx, next); err != nil {
		return model.APIKey{}, fmt.Errorf("add key: %w", err)
	}
	s.keys = next

	s.logger.Info("key added", "id", record.ID, "label", record.Label)
	return record, nil
}

// Update replaces the label and key of the record with the given id in
// place, preserving its position and creation time. An unknown id saves
// the collection unchanged and still reports success.
func (s *KeyService) Update(ctx context.Context, id, label, key string) error {
	if strings.TrimSpace(label) == "" || strings.TrimSpace(key) == "" {
		return ErrMissingField
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.APIKey, len(s.keys))
	copy(next, s.keys)
	for i := range next {
		if next[i].ID == id {
			next[i].Label = label
			next[i].Key = key
		}
	}

	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("update key: %w", err)
	}
	s.keys = next

	s.logger.Info("key updated", "id", id)
	return nil
}

// Delete removes the record with the given id. Deleting an id that does
// not exist is a no-op that still reports success.
func (s *KeyService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.APIKey, 0, len(s.keys))
	for _, k := range s.keys {
		if k.ID != id {
			next = append(next, k)
		}
	}

	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("delete key: %w", err)
	}
	s.keys = next

	s.logger.Info("key deleted", "id", id)
	return nil
}

// Export returns the collection as a pretty-printed JSON array together
// with a suggested download filename.
func (s *KeyService) Export() ([]byte, string, error) {
	keys := s.Keys()

	data, err := json.MarshalIndent(keys, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("encode export: %w", err)
	}

	name := fmt.Sprintf("api-keys-%d.json", s.now().UnixMilli())
	return data, name, nil
}

// Import runs the import pipeline against the current collection and
// persists the merged result. Nothing observable changes unless both the
// merge and the save succeed. Returns how many records were added.
func (s *KeyService) Import(ctx context.Context, data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged, added, err := MergeImport(s.keys, data, s.now, s.newID)
	if err != nil {
		return 0, err
	}

	if err := s.store.Save(ctx, merged); err != nil {
		return 0, fmt.Errorf("import keys: %w", err)
	}
	s.keys = merged

	s.logger.Info("keys imported", "added", added, "total", len(merged))
	return added, nil
}

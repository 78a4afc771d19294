package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jay-reddin/api-keys/internal/application"
	"github.com/jay-reddin/api-keys/internal/domain/model"
	"github.com/jay-reddin/api-keys/internal/domain/port/driven"
)

// --- Mock implementations ---

// mockKV implements driven.KV for application tests.
type mockKV struct {
	values map[string]string
	getErr error
	setErr error

	setCalls []string
}

func newMockKV() *mockKV {
	return &mockKV{values: map[string]string{}}
}

func (m *mockKV) Get(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockKV) Set(_ context.Context, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	m.setCalls = append(m.setCalls, key)
	return nil
}

func TestCollectionStore_Load_EmptyStore(t *testing.T) {
	kv := newMockKV()
	store := application.NewCollectionStore(kv, "")

	keys, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []model.APIKey{}, keys)
}

func TestCollectionStore_Load_ExistingBlob(t *testing.T) {
	kv := newMockKV()
	kv.values["api_keys"] = `[{"id":"a1","label":"OpenAI","key":"sk-123","createdAt":1700000000000}]`
	store := application.NewCollectionStore(kv, "")

	keys, err := store.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, "a1", keys[0].ID)
	assert.Equal(t, "OpenAI", keys[0].Label)
	assert.Equal(t, "sk-123", keys[0].Key)
	assert.Equal(t, int64(1700000000000), keys[0].CreatedAt)
}

func TestCollectionStore_Load_CorruptBlob(t *testing.T) {
	kv := newMockKV()
	kv.values["api_keys"] = `{"not":"an array`
	store := application.NewCollectionStore(kv, "")

	keys, err := store.Load(context.Background())

	assert.Nil(t, keys)
	require.Error(t, err)
	assert.ErrorIs(t, err, application.ErrCorruptData)
}

func TestCollectionStore_Load_StoreError(t *testing.T) {
	kv := newMockKV()
	kv.getErr = errors.New("connection refused")
	store := application.NewCollectionStore(kv, "")

	_, err := store.Load(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, application.ErrCorruptData)
}

func TestCollectionStore_Load_NilKV(t *testing.T) {
	store := application.NewCollectionStore(nil, "")

	_, err := store.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, driven.ErrStoreUnavailable)
}

func TestCollectionStore_Save_WritesNamespaceKey(t *testing.T) {
	kv := newMockKV()
	store := application.NewCollectionStore(kv, "custom_ns")

	err := store.Save(context.Background(), []model.APIKey{
		{ID: "a1", Label: "OpenAI", Key: "sk-123", CreatedAt: 1700000000000},
	})

	require.NoError(t, err)
	require.Equal(t, []string{"custom_ns"}, kv.setCalls)
	assert.JSONEq(t,
		`[{"id":"a1","label":"OpenAI","key":"sk-123","createdAt":1700000000000}]`,
		kv.values["custom_ns"],
	)
}

func TestCollectionStore_Save_NilCollectionStoresEmptyArray(t *testing.T) {
	kv := newMockKV()
	store := application.NewCollectionStore(kv, "")

	err := store.Save(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, "[]", kv.values["api_keys"])
}

func TestCollectionStore_Save_NilKV(t *testing.T) {
	store := application.NewCollectionStore(nil, "")

	err := store.Save(context.Background(), []model.APIKey{})

	require.Error(t, err)
	assert.ErrorIs(t, err, driven.ErrStoreUnavailable)
}

// TestCollectionStore_RoundTrip verifies that a saved collection loads back
// identically, including field order within records.
func TestCollectionStore_RoundTrip(t *testing.T) {
	kv := newMockKV()
	store := application.NewCollectionStore(kv, "")

	original := []model.APIKey{
		{ID: "a1", Label: "OpenAI", Key: "sk-123", CreatedAt: 1700000000000},
		{ID: "b2", Label: "Anthropic", Key: "sk-456", CreatedAt: 1700000001000},
	}

	require.NoError(t, store.Save(context.Background(), original))

	loaded, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

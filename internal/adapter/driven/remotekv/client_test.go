package remotekv_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jay-reddin/api-keys/internal/adapter/driven/remotekv"
	"github.com/jay-reddin/api-keys/internal/domain/port/driven"
)

func TestNew_EmptyBaseURL(t *testing.T) {
	client, err := remotekv.New("", "token")

	assert.Nil(t, client)
	require.Error(t, err)
	assert.ErrorIs(t, err, driven.ErrStoreUnavailable)
}

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/kv/api_keys", r.URL.Path)
		assert.Equal(t, "Bearer tok_123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"id":"a1"}]`))
	}))
	defer srv.Close()

	client := remotekv.NewWithHTTPClient(srv.Client(), srv.URL, "tok_123")

	value, ok, err := client.Get(context.Background(), "api_keys")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a1"}]`, value)
}

func TestClient_Get_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := remotekv.NewWithHTTPClient(srv.Client(), srv.URL, "")

	value, ok, err := client.Get(context.Background(), "api_keys")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestClient_Get_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := remotekv.NewWithHTTPClient(srv.Client(), srv.URL, "")

	_, _, err := client.Get(context.Background(), "api_keys")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_Get_EscapesKey(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := remotekv.NewWithHTTPClient(srv.Client(), srv.URL, "")

	_, _, err := client.Get(context.Background(), "team/prod keys")

	require.NoError(t, err)
	assert.Equal(t, "/v1/kv/team%2Fprod%20keys", gotPath)
}

func TestClient_Set(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v1/kv/api_keys", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = string(body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := remotekv.NewWithHTTPClient(srv.Client(), srv.URL, "")

	err := client.Set(context.Background(), "api_keys", `[{"id":"a1"}]`)

	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a1"}]`, gotBody)
}

func TestClient_Set_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := remotekv.NewWithHTTPClient(srv.Client(), srv.URL, "")

	err := client.Set(context.Background(), "api_keys", "[]")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

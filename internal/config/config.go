// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	KVURL        string
	KVToken      string
	NamespaceKey string
	ListenAddr   string
	DBPath       string
}

// HasRemoteStore returns true when a remote key-value service URL is
// configured. Used by the composition root to decide between the remote
// client and the local sqlite store.
func (c *Config) HasRemoteStore() bool {
	return c.KVURL != ""
}

// Load reads configuration from environment variables and returns a validated
// Config. The remote store (APIKEYS_KV_URL, APIKEYS_KV_TOKEN) is optional;
// without it the app persists to the local sqlite database instead.
// Optional variables with defaults: APIKEYS_NAMESPACE_KEY (api_keys),
// APIKEYS_LISTEN_ADDR (127.0.0.1:8080), APIKEYS_DB_PATH (apikeys.db).
func Load() (*Config, error) {
	kvURL := os.Getenv("APIKEYS_KV_URL")
	if kvURL != "" {
		u, err := url.Parse(kvURL)
		if err != nil {
			return nil, fmt.Errorf("APIKEYS_KV_URL has invalid URL %q: %w", kvURL, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, fmt.Errorf("APIKEYS_KV_URL %q must use http or https", kvURL)
		}
	}

	namespaceKey := "api_keys"
	if v, ok := os.LookupEnv("APIKEYS_NAMESPACE_KEY"); ok && v != "" {
		namespaceKey = v
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("APIKEYS_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "apikeys.db"
	if v, ok := os.LookupEnv("APIKEYS_DB_PATH"); ok {
		dbPath = v
	}

	return &Config{
		KVURL:        kvURL,
		KVToken:      os.Getenv("APIKEYS_KV_TOKEN"),
		NamespaceKey: namespaceKey,
		ListenAddr:   listenAddr,
		DBPath:       dbPath,
	}, nil
}

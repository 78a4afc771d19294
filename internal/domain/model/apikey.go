// Package model defines the domain entities shared by all layers.
package model

// APIKey is one stored API key entry. Label is the human-facing name and
// acts as the identity for duplicate detection during import; Key holds
// the secret value. CreatedAt is Unix milliseconds, matching the
// persisted JSON layout.
//
// The JSON tags are the external contract: the collection is persisted
// (and exported) as an array of exactly these objects.
type APIKey struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Key       string `json:"key"`
	CreatedAt int64  `json:"createdAt"`
}

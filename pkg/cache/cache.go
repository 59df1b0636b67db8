// Package cache stores rendered artifacts so unchanged diagrams are not sent
// through the rendering engine again.
//
// # Backends
//
//   - [FileCache]: JSON entries under a directory, for CLI usage
//   - [RedisCache]: a shared Redis instance, for the HTTP API
//   - [NullCache]: stores nothing
//
// # Keys
//
// A [Keyer] derives keys from the diagram text hash and the render
// options, so changing the engine or the format never serves a stale entry:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(cache.Hash([]byte(source)), cache.ArtifactKeyOpts{Engine: "exec:plantuml", Format: "svg"})
package cache

import (
	"context"
	"time"
)

// Default lifetimes of cached entries.
const (
	TTLArtifact = 7 * 24 * time.Hour
	TTLOverview = 24 * time.Hour
)

// Cache is a byte store with per-entry expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	// Engine identifies the renderer, including its command line or server
	// URL, not just the engine kind.
	Engine string `json:"engine"`
	Format string `json:"format"`
}

// OverviewKeyOpts are the options that change a hierarchy overview.
type OverviewKeyOpts struct {
	Format    string `json:"format"`
	Detailed  bool   `json:"detailed"`
	Qualified bool   `json:"qualified"`
}

// Keyer derives cache keys.
type Keyer interface {
	ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string
	OverviewKey(modelHash string, opts OverviewKeyOpts) string
}

// DefaultKeyer produces keys of the form "<kind>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sourceHash, opts)
}

// OverviewKey implements Keyer.
func (DefaultKeyer) OverviewKey(modelHash string, opts OverviewKeyOpts) string {
	return hashKey("overview", modelHash, opts)
}

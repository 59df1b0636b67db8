package cache

// ScopedKeyer wraps a Keyer with a prefix. The HTTP API uses it to keep its
// entries apart from CLI runs sharing the same Redis instance.
//
// Example usage:
//
//	serverKeyer := NewScopedKeyer(NewDefaultKeyer(), "server:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(sourceHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sourceHash, opts)
}

// OverviewKey generates a prefixed key for overview caching.
func (k *ScopedKeyer) OverviewKey(modelHash string, opts OverviewKeyOpts) string {
	return k.prefix + k.inner.OverviewKey(modelHash, opts)
}

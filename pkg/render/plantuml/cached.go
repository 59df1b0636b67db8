package plantuml

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/umldoc/pkg/cache"
	"github.com/matzehuels/umldoc/pkg/observability"
)

// Cached wraps a Converter with an artifact cache keyed by the diagram text
// hash, the engine identity (see [EngineOptions.Identity]) and the format.
type Cached struct {
	inner  Converter
	cache  cache.Cache
	keyer  cache.Keyer
	engine string
	ttl    time.Duration
	logger *log.Logger
}

// NewCached returns a caching converter. A nil keyer uses the default keyer,
// a zero ttl uses [cache.TTLArtifact].
func NewCached(inner Converter, c cache.Cache, keyer cache.Keyer, engine string, ttl time.Duration, logger *log.Logger) *Cached {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if ttl <= 0 {
		ttl = cache.TTLArtifact
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Cached{inner: inner, cache: c, keyer: keyer, engine: engine, ttl: ttl, logger: logger}
}

// Key returns the cache key used for source in format f.
func (c *Cached) Key(source string, f Format) string {
	return c.keyer.ArtifactKey(cache.HashString(source), cache.ArtifactKeyOpts{Engine: c.engine, Format: f.String()})
}

// Convert implements Converter. Cache failures degrade to a direct
// conversion.
func (c *Cached) Convert(ctx context.Context, source string, f Format) ([]byte, error) {
	hooks := observability.Cache()
	key := c.Key(source, f)
	if data, ok, err := c.cache.Get(ctx, key); err != nil {
		c.logger.Debug("cache read failed", "format", f, "err", err)
	} else if ok {
		hooks.OnCacheHit(ctx, observability.KeyArtifact)
		c.logger.Debug("cache hit", "format", f)
		return data, nil
	}
	hooks.OnCacheMiss(ctx, observability.KeyArtifact)

	data, err := c.inner.Convert(ctx, source, f)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Debug("cache write failed", "format", f, "err", err)
	} else {
		hooks.OnCacheSet(ctx, observability.KeyArtifact, len(data))
	}
	return data, nil
}

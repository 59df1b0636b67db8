package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Counters counts events. It implements every hook interface and is safe
// for concurrent use.
type Counters struct {
	runs           atomic.Int64
	diagrams       atomic.Int64
	failedDiagrams atomic.Int64
	renderNanos    atomic.Int64

	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
	cacheBytes  atomic.Int64

	requests     atomic.Int64
	httpErrors   atomic.Int64
	serverErrors atomic.Int64 // responses with status >= 500
}

// NewCounters returns zeroed counters.
func NewCounters() *Counters { return &Counters{} }

// Snapshot is a point-in-time copy of Counters.
type Snapshot struct {
	Runs           int64         `json:"runs"`
	Diagrams       int64         `json:"diagrams"`
	FailedDiagrams int64         `json:"failed_diagrams"`
	RenderTime     time.Duration `json:"render_time_ns"`
	CacheHits      int64         `json:"cache_hits"`
	CacheMisses    int64         `json:"cache_misses"`
	CacheBytes     int64         `json:"cache_bytes_written"`
	Requests       int64         `json:"http_requests"`
	HTTPErrors     int64         `json:"http_errors"`
	ServerErrors   int64         `json:"http_server_errors"`
}

// Snapshot returns the current values.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Runs:           c.runs.Load(),
		Diagrams:       c.diagrams.Load(),
		FailedDiagrams: c.failedDiagrams.Load(),
		RenderTime:     time.Duration(c.renderNanos.Load()),
		CacheHits:      c.cacheHits.Load(),
		CacheMisses:    c.cacheMisses.Load(),
		CacheBytes:     c.cacheBytes.Load(),
		Requests:       c.requests.Load(),
		HTTPErrors:     c.httpErrors.Load(),
		ServerErrors:   c.serverErrors.Load(),
	}
}

func (c *Counters) OnLoadStart(context.Context, int)                          {}
func (c *Counters) OnLoadComplete(context.Context, int, time.Duration, error) {}
func (c *Counters) OnRenderStart(context.Context, int)                        {}

func (c *Counters) OnDiagramRendered(_ context.Context, _ string, ok bool, _ time.Duration) {
	c.diagrams.Add(1)
	if !ok {
		c.failedDiagrams.Add(1)
	}
}

func (c *Counters) OnRenderComplete(_ context.Context, _, _ int, d time.Duration, _ error) {
	c.runs.Add(1)
	c.renderNanos.Add(int64(d))
}

func (c *Counters) OnCacheHit(context.Context, string)  { c.cacheHits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string) { c.cacheMisses.Add(1) }

func (c *Counters) OnCacheSet(_ context.Context, _ string, size int) {
	c.cacheBytes.Add(int64(size))
}

func (c *Counters) OnRequest(context.Context, string, string, string) { c.requests.Add(1) }

func (c *Counters) OnResponse(_ context.Context, _, _, _ string, status int, _ time.Duration) {
	if status >= 500 {
		c.serverErrors.Add(1)
	}
}

func (c *Counters) OnError(context.Context, string, string, string, error) { c.httpErrors.Add(1) }

var (
	_ PipelineHooks = (*Counters)(nil)
	_ CacheHooks    = (*Counters)(nil)
	_ HTTPHooks     = (*Counters)(nil)
)

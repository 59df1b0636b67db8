package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, 2)
	p.OnLoadComplete(ctx, 12, time.Second, nil)
	p.OnRenderStart(ctx, 13)
	p.OnDiagramRendered(ctx, "out/com/example/Shape.puml", true, time.Millisecond)
	p.OnRenderComplete(ctx, 13, 0, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, KeyArtifact)
	c.OnCacheMiss(ctx, KeyOverview)
	c.OnCacheSet(ctx, KeyArtifact, 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "www.plantuml.com", "/plantuml/svg/SoWkIImgAStDuNBAJrBGjLDmpCbCJbMmKiX8pSd9vt98pKi1IW80")
	h.OnResponse(ctx, "GET", "www.plantuml.com", "/plantuml/svg/x", 200, time.Second)
	h.OnError(ctx, "GET", "www.plantuml.com", "/plantuml/svg/x", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	// Setting nil should be ignored
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }

func TestCounters(t *testing.T) {
	ctx := context.Background()
	c := NewCounters()

	c.OnRenderStart(ctx, 3)
	c.OnDiagramRendered(ctx, "a.puml", true, time.Millisecond)
	c.OnDiagramRendered(ctx, "b.puml", false, time.Millisecond)
	c.OnDiagramRendered(ctx, "c.puml", true, time.Millisecond)
	c.OnRenderComplete(ctx, 3, 1, 2*time.Second, nil)

	c.OnCacheMiss(ctx, KeyArtifact)
	c.OnCacheSet(ctx, KeyArtifact, 100)
	c.OnCacheHit(ctx, KeyArtifact)

	c.OnRequest(ctx, "GET", "h", "/svg/x")
	c.OnResponse(ctx, "GET", "h", "/svg/x", 503, time.Second)
	c.OnRequest(ctx, "GET", "h", "/svg/x")
	c.OnError(ctx, "GET", "h", "/svg/x", context.DeadlineExceeded)

	want := Snapshot{
		Runs:           1,
		Diagrams:       3,
		FailedDiagrams: 1,
		RenderTime:     2 * time.Second,
		CacheHits:      1,
		CacheMisses:    1,
		CacheBytes:     100,
		Requests:       2,
		HTTPErrors:     1,
		ServerErrors:   1,
	}
	if got := c.Snapshot(); got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
}

func TestCountersConcurrent(t *testing.T) {
	c := NewCounters()
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.OnCacheHit(context.Background(), KeyArtifact)
		}()
	}
	wg.Wait()
	if got := c.Snapshot().CacheHits; got != 50 {
		t.Errorf("CacheHits = %d, want 50", got)
	}
}

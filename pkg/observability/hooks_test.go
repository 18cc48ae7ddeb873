package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnValidateStart(ctx)
	p.OnValidateComplete(ctx, 12, 2, time.Second, nil)
	p.OnTransformStart(ctx, []string{"row-oriented"})
	p.OnTransformComplete(ctx, []string{"row-oriented"}, time.Second, nil)
	p.OnStoreStart(ctx, "doc-1")
	p.OnStoreComplete(ctx, "doc-1", time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "shape")
	c.OnCacheMiss(ctx, "shape")
	c.OnCacheSet(ctx, "shape", 1024)
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

	// Set custom hooks
	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != PipelineHooks(customPipeline) {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != CacheHooks(customCache) {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Nil registration keeps the current hooks
	SetPipelineHooks(nil)
	if Pipeline() != PipelineHooks(customPipeline) {
		t.Error("SetPipelineHooks(nil) should keep current hooks")
	}

	// Reset restores noops
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	h := &testPipelineHooks{}
	SetPipelineHooks(h)

	ctx := context.Background()
	Pipeline().OnValidateStart(ctx)
	Pipeline().OnValidateComplete(ctx, 3, 1, time.Millisecond, nil)

	if h.validateStarts != 1 || h.validateCompletes != 1 {
		t.Errorf("hook calls = %d starts, %d completes", h.validateStarts, h.validateCompletes)
	}
	if h.lastRows != 3 || h.lastSeries != 1 {
		t.Errorf("hook args = %d rows, %d series", h.lastRows, h.lastSeries)
	}
}

// testPipelineHooks counts pipeline events.
type testPipelineHooks struct {
	NoopPipelineHooks
	validateStarts    int
	validateCompletes int
	lastRows          int
	lastSeries        int
}

func (h *testPipelineHooks) OnValidateStart(context.Context) { h.validateStarts++ }

func (h *testPipelineHooks) OnValidateComplete(_ context.Context, rows, series int, _ time.Duration, _ error) {
	h.validateCompletes++
	h.lastRows = rows
	h.lastSeries = series
}

// testCacheHooks counts cache events.
type testCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *testCacheHooks) OnCacheHit(context.Context, string) { h.hits++ }

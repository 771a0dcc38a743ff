package middleware_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/artvault/pkg/internal/storage"
	"github.com/yeisme/artvault/pkg/internal/storage/kv"
	"github.com/yeisme/artvault/pkg/middleware"
)

// newCachedRouter 构造带内存KV和响应缓存中间件的测试路由.
func newCachedRouter(t *testing.T, handler gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := kv.NewKVStore(context.Background(), kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("create memory kv: %v", err)
	}

	mgr := &storage.Manager{KV: &kv.Client{KVStore: store}}

	engine := gin.New()
	engine.Use(middleware.StorageMiddleware(mgr))
	engine.GET("/gallery", middleware.CacheMiddleware(time.Minute), handler)

	return engine
}

func doGet(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(w, req)

	return w
}

func TestCacheHitReplaysBody(t *testing.T) {
	calls := 0
	engine := newCachedRouter(t, func(c *gin.Context) {
		calls++
		c.JSON(http.StatusOK, gin.H{"items": []string{"a", "b"}})
	})

	first := doGet(engine, "/gallery")
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d, want 200", first.Code)
	}

	if got := first.Header().Get("X-Cache"); got != "MISS" {
		t.Fatalf("first X-Cache = %q, want MISS", got)
	}

	second := doGet(engine, "/gallery")
	if second.Code != http.StatusOK {
		t.Fatalf("second status = %d, want 200", second.Code)
	}

	if got := second.Header().Get("X-Cache"); got != "HIT" {
		t.Fatalf("second X-Cache = %q, want HIT", got)
	}

	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Fatal("cached body differs from original")
	}

	if calls != 1 {
		t.Fatalf("handler called %d times, want 1", calls)
	}
}

// 分多次写出且总量超过缓存上限的响应不能被缓存,
// 否则后续请求会命中被截断的响应体.
func TestCacheSkipsTruncatedLargeBody(t *testing.T) {
	chunk1 := bytes.Repeat([]byte("a"), 768*1024)
	chunk2 := bytes.Repeat([]byte("b"), 512*1024)
	wantLen := len(chunk1) + len(chunk2)

	engine := newCachedRouter(t, func(c *gin.Context) {
		c.Status(http.StatusOK)
		c.Header("Content-Type", "application/octet-stream")
		_, _ = c.Writer.Write(chunk1)
		_, _ = c.Writer.Write(chunk2)
	})

	first := doGet(engine, "/gallery")
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d, want 200", first.Code)
	}

	if got := first.Body.Len(); got != wantLen {
		t.Fatalf("first body length = %d, want %d", got, wantLen)
	}

	second := doGet(engine, "/gallery")
	if second.Code != http.StatusOK {
		t.Fatalf("second status = %d, want 200", second.Code)
	}

	if got := second.Header().Get("X-Cache"); got == "HIT" {
		t.Fatal("oversized response must not be served from cache")
	}

	if got := second.Body.Len(); got != wantLen {
		t.Fatalf("second body length = %d, want %d", got, wantLen)
	}
}

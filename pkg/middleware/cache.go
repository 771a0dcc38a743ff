package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"

	appcache "github.com/yeisme/artvault/pkg/cache"
	ctxPkg "github.com/yeisme/artvault/pkg/context"
)

const (
	cacheKeyPrefix  = "httpcache:"
	headerXCache    = "X-Cache"
	headerBypass    = "X-Cache-Bypass"
	maxCacheableLen = 1 << 20 // 超过1MiB的响应不缓存
)

// cachedResponse 序列化后存入KV的响应快照.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
	ETag        string `json:"etag"`
}

// bodyCaptureWriter 在写出响应的同时捕获响应体.
// 超出上限的响应体不再追加, 标记truncated后整个响应放弃缓存.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	body      []byte
	truncated bool
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	if w.truncated || len(w.body)+len(b) > maxCacheableLen {
		w.truncated = true
		return w.ResponseWriter.Write(b)
	}
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}

// flightResult singleflight领头请求回传给跟随请求的结果.
type flightResult struct {
	resp     cachedResponse
	complete bool // 响应体完整捕获, 可安全回放
}

// CacheMiddleware 响应缓存中间件, 只缓存GET请求的200响应.
// 画廊这类读多写少的公开接口用它削掉重复的DB查询,
// singleflight保证缓存失效瞬间同一键只有一个请求回源.
func CacheMiddleware(ttl time.Duration) gin.HandlerFunc {
	var group singleflight.Group

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || c.GetHeader(headerBypass) != "" {
			c.Next()
			return
		}

		kvc := ctxPkg.GetKVClient(c.Request.Context())
		if kvc == nil {
			c.Next()
			return
		}
		cc := appcache.NewCache(kvc)

		key := cacheKey(c)

		// 命中缓存直接回放
		if resp, err := appcache.Get[cachedResponse](c.Request.Context(), cc, key); err == nil {
			if match := c.GetHeader("If-None-Match"); match != "" && match == resp.ETag {
				c.Header(headerXCache, "HIT")
				c.Status(http.StatusNotModified)
				c.Abort()
				return
			}
			c.Header(headerXCache, "HIT")
			c.Header("ETag", resp.ETag)
			c.Data(resp.Status, resp.ContentType, resp.Body)
			c.Abort()
			return
		}

		// 未命中: singleflight合并并发回源, 只有领头请求真正执行处理器,
		// 其余请求等待并回放领头请求的响应
		executed := false
		v, err, _ := group.Do(key, func() (any, error) {
			executed = true
			c.Header(headerXCache, "MISS")

			writer := &bodyCaptureWriter{ResponseWriter: c.Writer}
			c.Writer = writer
			c.Next()

			resp := cachedResponse{
				Status:      writer.Status(),
				ContentType: writer.Header().Get("Content-Type"),
				Body:        writer.body,
			}
			if resp.Status == http.StatusOK && len(resp.Body) > 0 && !writer.truncated {
				resp.ETag = fmt.Sprintf("%q", fmt.Sprintf("%x", xxhash.Sum64(resp.Body)))
				_ = appcache.Set(c.Request.Context(), cc, key, resp, ttl)
			}
			return flightResult{resp: resp, complete: !writer.truncated}, nil
		})
		if executed || err != nil {
			return
		}

		result, ok := v.(flightResult)
		if !ok || !result.complete {
			c.Next()
			return
		}
		resp := result.resp
		c.Header(headerXCache, "HIT")
		if resp.ETag != "" {
			c.Header("ETag", resp.ETag)
		}
		c.Data(resp.Status, resp.ContentType, resp.Body)
		c.Abort()
	}
}

// cacheKey 由方法+路径+查询串哈希出缓存键.
func cacheKey(c *gin.Context) string {
	h := xxhash.New()
	_, _ = h.WriteString(c.Request.Method)
	_, _ = h.WriteString(c.Request.URL.Path)
	_, _ = h.WriteString(c.Request.URL.RawQuery)
	return fmt.Sprintf("%s%x", cacheKeyPrefix, h.Sum64())
}

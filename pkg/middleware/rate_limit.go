package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yeisme/artvault/pkg/configs"
)

// limiterEntry 记录每个限流键对应的限流器与最近访问时间.
type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware 基于令牌桶的限流中间件.
// cfg.Key 决定限流维度: global、ip、header:Header-Name.
// 投稿接口默认按IP限制为5次/分钟, 防止匿名投稿被脚本刷爆.
func RateLimitMiddleware(cfg configs.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	var (
		mu       sync.Mutex
		limiters = make(map[string]*limiterEntry)
	)

	// 定期清理长时间未访问的限流器, 避免map无限增长
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			for k, e := range limiters {
				if time.Since(e.lastSeen) > 10*time.Minute {
					delete(limiters, k)
				}
			}
			mu.Unlock()
		}
	}()

	keyFor := func(c *gin.Context) string {
		switch {
		case cfg.Key == "global":
			return "global"
		case strings.HasPrefix(cfg.Key, "header:"):
			name := strings.TrimPrefix(cfg.Key, "header:")
			if v := c.GetHeader(name); v != "" {
				return v
			}
			return c.ClientIP()
		default: // ip
			return c.ClientIP()
		}
	}

	return func(c *gin.Context) {
		key := keyFor(c)

		mu.Lock()
		entry, ok := limiters[key]
		if !ok {
			entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)}
			limiters[key] = entry
		}
		entry.lastSeen = time.Now()
		mu.Unlock()

		if !entry.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, please retry later",
			})
			return
		}

		c.Next()
	}
}

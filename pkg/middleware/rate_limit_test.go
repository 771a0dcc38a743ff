package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/artvault/pkg/configs"
)

func newRateLimitedRouter(cfg configs.RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/submit", RateLimitMiddleware(cfg), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	return r
}

func doPost(r *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	r.ServeHTTP(w, req)

	return w.Code
}

func TestRateLimitBurstExhaustion(t *testing.T) {
	r := newRateLimitedRouter(configs.RateLimitConfig{
		Enabled: true,
		RPS:     0.001, // 几乎不补充令牌, 只看突发容量
		Burst:   2,
		Key:     "global",
	})

	for i := range 2 {
		if code := doPost(r); code != http.StatusCreated {
			t.Fatalf("request %d: expected 201, got %d", i+1, code)
		}
	}

	if code := doPost(r); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst exhausted, got %d", code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	r := newRateLimitedRouter(configs.RateLimitConfig{Enabled: false})

	for i := range 10 {
		if code := doPost(r); code != http.StatusCreated {
			t.Fatalf("request %d: expected 201 with limiter disabled, got %d", i+1, code)
		}
	}
}

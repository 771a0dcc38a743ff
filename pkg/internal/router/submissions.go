package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/artvault/pkg/configs"
	"github.com/yeisme/artvault/pkg/internal/handle"
	"github.com/yeisme/artvault/pkg/middleware"
)

// RegisterSubmissionRoutes 注册匿名投稿路由.
// 投稿入口是唯一的匿名写接口, 单独挂限流中间件.
func RegisterSubmissionRoutes(g *gin.RouterGroup, rl configs.RateLimitConfig) {
	g.POST("/submissions", middleware.RateLimitMiddleware(rl), handle.Submit)
}

package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/artvault/pkg/configs"
	"github.com/yeisme/artvault/pkg/internal/handle"
	"github.com/yeisme/artvault/pkg/middleware"
)

// RegisterAdminRoutes 注册审核后台路由.
// 鉴权不在中间件里做: 每个管理操作都把Bearer令牌传给服务层,
// 服务层先校验令牌再访问存储. 登录接口单独限流, 防止口令爆破.
func RegisterAdminRoutes(g *gin.RouterGroup, rl configs.RateLimitConfig) {
	adminRoutes := g.Group("/admin")
	{
		adminRoutes.POST("/login", middleware.RateLimitMiddleware(rl), handle.AdminLogin)

		submissionRoutes := adminRoutes.Group("/submissions")
		{
			submissionRoutes.GET("", handle.AdminListSubmissions)
			submissionRoutes.POST("/:id/approve", handle.AdminApprove)
			submissionRoutes.POST("/:id/reject", handle.AdminReject)
		}
	}
}

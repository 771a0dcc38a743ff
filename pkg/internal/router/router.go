// Package router 管理路由配置. router 包只负责将路径和处理器绑定到 gin 引擎，
// 处理器的实现由 pkg/internal/handle 提供.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/artvault/pkg/configs"
)

// RegisterAll 将全部业务路由绑定到传入的路由组.
// 绑定的路径（假定上层会用 v1 := e.Group("/api/v1")）：
//
//	POST /submissions                      -> 匿名投稿（限流）
//	GET  /gallery                          -> 公开画廊（已通过审核）
//	GET  /items/:id                        -> 公开作品详情
//	POST /admin/login                      -> 管理员登录
//	GET  /admin/submissions                -> 审核队列列表
//	POST /admin/submissions/:id/approve    -> 通过
//	POST /admin/submissions/:id/reject     -> 拒绝
//	GET  /health/{db,s3,mq,kv}             -> 组件健康检查
func RegisterAll(g *gin.RouterGroup, cfg *configs.AppConfig) {
	RegisterSubmissionRoutes(g, cfg.RateLimit)
	RegisterGalleryRoutes(g)
	RegisterAdminRoutes(g, cfg.RateLimit)
	RegisterHealthCheckRoute(g)
}

package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/artvault/pkg/internal/handle"
	"github.com/yeisme/artvault/pkg/middleware"
)

// galleryCacheTTL 画廊缓存时长. 审核通过后最多延迟这么久出现在画廊里.
const galleryCacheTTL = 30 * time.Second

// RegisterGalleryRoutes 注册公开画廊路由.
func RegisterGalleryRoutes(g *gin.RouterGroup) {
	g.GET("/gallery", middleware.CacheMiddleware(galleryCacheTTL), handle.Gallery)
	g.GET("/items/:id", handle.ItemDetail)
}

// Package handle 提供请求处理器的实现，用于处理HTTP请求.
package handle

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/artvault/pkg/internal/media"
	"github.com/yeisme/artvault/pkg/internal/service"
)

func DefaultHandler(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"message": "Not Implemented"})
}

// bearerToken 提取 Authorization: Bearer <token> 中的凭证，缺失返回空串.
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth == "" {
		return ""
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}

	return strings.TrimSpace(auth[len(prefix):])
}

// writeServiceError 将服务层错误映射为 HTTP 状态码.
// 校验类错误 400、凭证错误 401、未找到 404、重复审核 409，其余一律 500.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, media.ErrMissingFile),
		errors.Is(err, media.ErrUnsupportedType),
		errors.Is(err, media.ErrImageTooLarge),
		errors.Is(err, media.ErrVideoTooLarge),
		errors.Is(err, service.ErrVideoTooLong),
		errors.Is(err, service.ErrInvalidSubmission):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyDecided):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

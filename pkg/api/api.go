// Package api 定义HTTP API的路由入口.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/artvault/pkg/configs"
	"github.com/yeisme/artvault/pkg/internal/router"
)

// APIPrefix 所有业务接口的统一前缀.
const APIPrefix = "/api/v1"

// RegisterGroup 注册全部路由组到传入的 gin 引擎.
func RegisterGroup(e *gin.Engine, cfg *configs.AppConfig) *gin.Engine {
	router.RegisterAll(e.Group(APIPrefix), cfg)

	return e
}

package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/artvault/pkg/internal/service"
	"github.com/yeisme/artvault/pkg/log"
)

// Gallery 公开画廊，只含已通过审核的作品.
//
//	@Summary		公开画廊
//	@Description	返回全部已通过审核的作品，按提交时间倒序
//	@Tags			画廊
//	@Produce		json
//	@Success		200	{object}	types.GalleryResponse
//	@Router			/api/v1/gallery [get]
func Gallery(c *gin.Context) {
	svc := service.NewSubmissionService(c.Request.Context())

	resp, err := svc.Gallery(c.Request.Context())
	if err != nil {
		log.Logger().Error().Err(err).Msg("load gallery failed")
		writeServiceError(c, err)

		return
	}

	c.JSON(http.StatusOK, resp)
}

// ItemDetail 公开作品详情.
//
//	@Summary		作品详情
//	@Description	返回单个已通过作品的完整信息，未通过或不存在一律 404
//	@Tags			画廊
//	@Produce		json
//	@Param			id	path		string	true	"作品 ID"
//	@Success		200	{object}	types.ItemDetail
//	@Failure		404	{object}	types.ErrorResponse
//	@Router			/api/v1/items/{id} [get]
func ItemDetail(c *gin.Context) {
	svc := service.NewSubmissionService(c.Request.Context())

	resp, err := svc.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

package handle

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/artvault/pkg/internal/service"
	"github.com/yeisme/artvault/pkg/internal/types"
	"github.com/yeisme/artvault/pkg/log"
	"github.com/yeisme/artvault/pkg/rule"
)

// Submit 处理匿名投稿.
//
//	@Summary		提交作品
//	@Description	匿名上传图片或视频作品，附带标题、作者、描述、标签等元数据，投稿进入待审核队列
//	@Tags			投稿
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"媒体文件（image/* 或 video/mp4、video/webm）"
//	@Success		201		{object}	types.SubmitResponse	"投稿已接收"
//	@Failure		400		{object}	types.ErrorResponse		"校验失败"
//	@Router			/api/v1/submissions [post]
func Submit(c *gin.Context) {
	l := log.Logger()

	var meta types.SubmitMetadata
	if err := c.ShouldBind(&meta); err != nil {
		l.Warn().Err(err).Msg("invalid submission metadata")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if err := rule.ValidateStruct(&meta); err != nil {
		l.Warn().Err(err).Msg("submission metadata validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	// 文件缺失交给服务层按校验顺序报告 MissingFile
	file, err := c.FormFile("file")
	if err != nil {
		file = nil
	}

	// 客户端可声明视频时长（秒），声明了就必须是合法的非负数
	var duration *float64
	if raw := c.PostForm("duration_seconds"); raw != "" {
		v, perr := strconv.ParseFloat(raw, 64)
		if perr != nil || v < 0 {
			l.Warn().Str("duration_seconds", raw).Msg("invalid duration_seconds")
			c.JSON(http.StatusBadRequest, gin.H{"error": "duration_seconds must be a non-negative number"})

			return
		}

		duration = &v
	}

	svc := service.NewSubmissionService(c.Request.Context())

	resp, err := svc.Submit(c.Request.Context(), &meta, file, duration)
	if err != nil {
		l.Warn().Err(err).Str("title", meta.Title).Msg("submission rejected")
		writeServiceError(c, err)

		return
	}

	l.Info().Str("id", resp.ID).Msg("submission received")
	c.JSON(http.StatusCreated, resp)
}

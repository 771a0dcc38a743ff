package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/artvault/pkg/internal/service"
	"github.com/yeisme/artvault/pkg/internal/types"
	"github.com/yeisme/artvault/pkg/log"
)

// AdminLogin 管理员登录，签发不透明 bearer token.
//
//	@Summary		管理员登录
//	@Description	校验管理口令，返回带 TTL 的不透明 token
//	@Tags			管理
//	@Accept			json
//	@Produce		json
//	@Param			body	body		types.LoginRequest	true	"登录请求"
//	@Success		200		{object}	types.LoginResponse
//	@Failure		401		{object}	types.ErrorResponse
//	@Router			/api/v1/admin/login [post]
func AdminLogin(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	auth := service.NewAuthService(c.Request.Context())

	token, expiresIn, err := auth.Login(c.Request.Context(), req.Password)
	if err != nil {
		log.Logger().Warn().Str("ip", c.ClientIP()).Msg("admin login failed")
		writeServiceError(c, err)

		return
	}

	c.JSON(http.StatusOK, types.LoginResponse{Token: token, ExpiresIn: expiresIn})
}

// AdminListSubmissions 管理端投稿列表，凭证校验先于任何存储访问.
//
//	@Summary		投稿列表
//	@Description	按状态过滤（pending/approved/rejected/all，默认 all），created_at 倒序
//	@Tags			管理
//	@Produce		json
//	@Param			status	query		string	false	"状态过滤"
//	@Success		200		{object}	types.AdminListResponse
//	@Failure		401		{object}	types.ErrorResponse
//	@Router			/api/v1/admin/submissions [get]
func AdminListSubmissions(c *gin.Context) {
	filter := types.StatusFilter(c.DefaultQuery("status", string(types.FilterAll)))
	if !filter.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
		return
	}

	svc := service.NewSubmissionService(c.Request.Context())

	resp, err := svc.ListSubmissions(c.Request.Context(), filter, bearerToken(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AdminApprove 审核通过.
//
//	@Summary		通过投稿
//	@Description	pending 投稿迁移为 approved；重复审核返回 409
//	@Tags			管理
//	@Produce		json
//	@Param			id	path		string	true	"投稿 ID"
//	@Success		200	{object}	model.Submission
//	@Failure		401	{object}	types.ErrorResponse
//	@Failure		404	{object}	types.ErrorResponse
//	@Failure		409	{object}	types.ErrorResponse
//	@Router			/api/v1/admin/submissions/{id}/approve [post]
func AdminApprove(c *gin.Context) {
	svc := service.NewSubmissionService(c.Request.Context())

	sub, err := svc.Approve(c.Request.Context(), c.Param("id"), bearerToken(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	log.Logger().Info().Str("id", sub.ID).Msg("submission approved")
	c.JSON(http.StatusOK, sub)
}

// AdminReject 审核拒绝.
//
//	@Summary		拒绝投稿
//	@Description	pending 投稿迁移为 rejected，记录原因；重复审核返回 409
//	@Tags			管理
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"投稿 ID"
//	@Param			body	body		types.RejectRequest	false	"拒绝原因"
//	@Success		200		{object}	model.Submission
//	@Failure		401		{object}	types.ErrorResponse
//	@Failure		404		{object}	types.ErrorResponse
//	@Failure		409		{object}	types.ErrorResponse
//	@Router			/api/v1/admin/submissions/{id}/reject [post]
func AdminReject(c *gin.Context) {
	// 请求体可缺省，原因默认空串
	var req types.RejectRequest
	_ = c.ShouldBindJSON(&req)

	svc := service.NewSubmissionService(c.Request.Context())

	sub, err := svc.Reject(c.Request.Context(), c.Param("id"), req.Reason, bearerToken(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	log.Logger().Info().Str("id", sub.ID).Str("reason", req.Reason).Msg("submission rejected")
	c.JSON(http.StatusOK, sub)
}

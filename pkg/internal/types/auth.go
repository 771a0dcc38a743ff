package types

// LoginRequest 管理员登录请求.
type LoginRequest struct {
	Password string `json:"password" rule:"required"`
}

// LoginResponse 登录成功响应，返回不透明的 bearer token.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // 秒
}

package configs

import "github.com/spf13/viper"

const (
	// DefaultAdminPassword 默认管理员口令，仅用于本地开发.
	DefaultAdminPassword = "admin123"
	// DefaultTokenTTLSeconds 管理员令牌有效期（秒）.
	DefaultTokenTTLSeconds = 3600
)

// AuthConfig 管理员认证配置.
// 登录成功后签发不透明 Bearer 令牌，存放在 KV 中并带 TTL；
// 所有管理操作都必须携带该令牌.
type AuthConfig struct {
	AdminPassword   string `mapstructure:"admin_password"`    // 管理员口令
	TokenTTLSeconds int    `mapstructure:"token_ttl_seconds"` // 令牌有效期（秒）
}

func (c *AuthConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("auth.admin_password", DefaultAdminPassword)
	v.SetDefault("auth.token_ttl_seconds", DefaultTokenTTLSeconds)
}

package configs

import "github.com/spf13/viper"

const (
	// 默认速率限制配置.
	DefaultRateLimitEnabled = true
	// DefaultSubmitRPS 投稿接口默认限速：5次/分钟，防止匿名接口被脚本刷爆.
	DefaultSubmitRPS   = 5.0 / 60.0
	DefaultSubmitBurst = 5
	DefaultRateKey     = "ip"
)

// RateLimitConfig 速率限制配置.
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`   // 每秒允许的请求数
	Burst   int     `mapstructure:"burst"` // 突发容量
	// Key 选择限流维度：global（全局）、ip（按客户端IP）、header:Header-Name（按请求头）
	Key string `mapstructure:"key"`
}

func (c *RateLimitConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("rate_limit.enabled", DefaultRateLimitEnabled)
	v.SetDefault("rate_limit.rps", DefaultSubmitRPS)
	v.SetDefault("rate_limit.burst", DefaultSubmitBurst)
	v.SetDefault("rate_limit.key", DefaultRateKey)
}

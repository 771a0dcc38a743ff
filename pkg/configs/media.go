package configs

import "github.com/spf13/viper"

const (
	// DefaultMaxImageBytes 图片大小上限：10 MiB.
	DefaultMaxImageBytes = 10 * 1024 * 1024
	// DefaultMaxVideoBytes 视频大小上限：50 MiB.
	DefaultMaxVideoBytes = 50 * 1024 * 1024
	// DefaultMaxVideoSeconds 视频时长上限（秒）.
	DefaultMaxVideoSeconds = 180
	// DefaultMediaBaseURL 对外媒体服务前缀.
	DefaultMediaBaseURL = "http://localhost:8080"
)

// MediaConfig 媒体校验与公开 URL 策略.
type MediaConfig struct {
	MaxImageBytes   int64  `mapstructure:"max_image_bytes"   rule:"min=1"`
	MaxVideoBytes   int64  `mapstructure:"max_video_bytes"   rule:"min=1"`
	MaxVideoSeconds int    `mapstructure:"max_video_seconds" rule:"min=1"`
	BaseURL         string `mapstructure:"base_url"          rule:"url"`
}

func (c *MediaConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("media.max_image_bytes", DefaultMaxImageBytes)
	v.SetDefault("media.max_video_bytes", DefaultMaxVideoBytes)
	v.SetDefault("media.max_video_seconds", DefaultMaxVideoSeconds)
	v.SetDefault("media.base_url", DefaultMediaBaseURL)
}

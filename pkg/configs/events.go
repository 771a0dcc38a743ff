package configs

import "github.com/spf13/viper"

// EventsConfig 控制事件发布的开关（全局与分主题）。
type EventsConfig struct {
	Enabled    bool                   `mapstructure:"enabled"` // 总开关
	Submission SubmissionEventsConfig `mapstructure:"submission"`
}

// SubmissionEventsConfig 针对投稿领域的事件开关。
type SubmissionEventsConfig struct {
	Received bool `mapstructure:"received"`
	Approved bool `mapstructure:"approved"`
	Rejected bool `mapstructure:"rejected"`
}

func (c *EventsConfig) setDefaults(v *viper.Viper) {
	// 总开关：默认启用事件系统
	v.SetDefault("events.enabled", true)

	// 审核事件是下游（画廊缓存失效、通知）关心的最小集合，默认全开
	v.SetDefault("events.submission.received", true)
	v.SetDefault("events.submission.approved", true)
	v.SetDefault("events.submission.rejected", true)
}

// Package model 定义数据库模型.
package model

import (
	"strings"
	"time"
)

// 审核状态常量，入库后只允许 pending -> approved/rejected 单向迁移.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Submission 投稿模型.
type Submission struct {
	// ULID，按时间有序，同时作为对外暴露的资源 ID
	ID         string `gorm:"primaryKey;size:26"   json:"id"`
	Title      string `gorm:"size:512"             json:"title"`
	AuthorName string `gorm:"size:255"             json:"author_name"`
	// 作者自述，可为空
	Description string `gorm:"type:text" json:"description"`
	// Tags 以逗号分隔的字符串存储，便于模糊搜索；未来可替换为 JSONB
	TagsJSON string `gorm:"type:text" json:"tags_json"`
	// image 或 video
	MediaType string `gorm:"size:16;index" json:"media_type"`
	// 对象存储中的媒体键
	FilePath string `gorm:"size:1024" json:"file_path"`
	// 缩略图键，仅图片有
	ThumbPath string `gorm:"size:1024" json:"thumb_path"`
	// 视频时长（秒），图片为 nil
	DurationSeconds *float64 `gorm:"type:double precision" json:"duration_seconds"`
	Status          string   `gorm:"size:16;index;default:pending" json:"status"`
	// 拒绝原因，仅 rejected 状态有意义
	RejectedReason string    `gorm:"size:512"     json:"rejected_reason"`
	CreatedAt      time.Time `gorm:"index"        json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsTerminal 返回状态是否为终态.
func IsTerminal(status string) bool {
	return status == StatusApproved || status == StatusRejected
}

// ParseTags 解析逗号分隔的标签串，去除空白并去重，保持原有顺序.
func ParseTags(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(parts))
	tags := make([]string, 0, len(parts))

	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t == "" {
			continue
		}

		if _, dup := seen[t]; dup {
			continue
		}

		seen[t] = struct{}{}
		tags = append(tags, t)
	}

	return tags
}

// JoinTags 将标签列表编码为存储格式（逗号分隔）.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// Tags 返回该投稿的标签列表.
func (s *Submission) Tags() []string {
	return ParseTags(s.TagsJSON)
}

// SetTags 规范化并写入标签.
func (s *Submission) SetTags(tags []string) {
	s.TagsJSON = JoinTags(ParseTags(JoinTags(tags)))
}

package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
// 建议在发布消息时填充 TraceID、OccurredAt、Producer 等，便于追踪链路与审计.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID，可来自中间件或业务生成.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本，便于向后兼容演进.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
// T 即不同主题对应的负载结构体.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// -------------------------- 投稿领域 --------------------------

// SubmissionRef 标识一条投稿记录及其媒体位置.
type SubmissionRef struct {
	ID        string `json:"id"`
	MediaType string `json:"media_type"`
	FilePath  string `json:"file_path,omitempty"`
	ThumbPath string `json:"thumb_path,omitempty"`
}

// SubmissionReceivedPayload 投稿通过校验并落库.
type SubmissionReceivedPayload struct {
	Submission SubmissionRef `json:"submission"`
	Title      string        `json:"title"`
	AuthorName string        `json:"author_name,omitempty"`
	SizeBytes  int64         `json:"size_bytes,omitempty"`
}

// SubmissionApprovedPayload 审核通过.
type SubmissionApprovedPayload struct {
	Submission SubmissionRef `json:"submission"`
}

// SubmissionRejectedPayload 审核拒绝，可携带拒绝原因.
type SubmissionRejectedPayload struct {
	Submission SubmissionRef `json:"submission"`
	Reason     string        `json:"reason,omitempty"`
}

// -------------------------- 媒体对象领域 --------------------------

// MediaRef 标识对象存储中的媒体文件.
type MediaRef struct {
	Bucket      string `json:"bucket"`
	ObjectKey   string `json:"object_key"`
	ETag        string `json:"etag,omitempty"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// MediaStoredPayload 媒体文件已写入对象存储.
type MediaStoredPayload struct {
	Media MediaRef `json:"media"`
	// SubmissionID 所属投稿，清理阶段用于反查归属.
	SubmissionID string `json:"submission_id,omitempty"`
	FileName     string `json:"file_name,omitempty"`
}

// MediaPrunedPayload 孤儿媒体被后台任务清理.
type MediaPrunedPayload struct {
	Media  MediaRef `json:"media"`
	Reason string   `json:"reason,omitempty"`
}

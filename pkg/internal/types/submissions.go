// Package types 定义 HTTP 层的请求与响应结构.
package types

// StatusFilter 列表接口的状态过滤枚举.
type StatusFilter string

const (
	FilterAll      StatusFilter = "all"
	FilterPending  StatusFilter = "pending"
	FilterApproved StatusFilter = "approved"
	FilterRejected StatusFilter = "rejected"
)

// Valid 返回过滤值是否合法.
func (f StatusFilter) Valid() bool {
	switch f {
	case FilterAll, FilterPending, FilterApproved, FilterRejected:
		return true
	}

	return false
}

// SubmitMetadata 匿名投稿的表单元数据.
type SubmitMetadata struct {
	Title       string `form:"title"       rule:"required,max=512"`
	AuthorName  string `form:"author_name" rule:"required,max=255"`
	Description string `form:"description" rule:"max=4096"`
	// 逗号分隔的标签串
	Tags string `form:"tags" rule:"max=1024"`
}

// SubmitResponse 投稿成功响应.
type SubmitResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// AdminSubmissionItem 管理端列表条目，包含全部审核所需字段.
type AdminSubmissionItem struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	AuthorName      string   `json:"author_name"`
	Description     string   `json:"description,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	MediaType       string   `json:"media_type"`
	MediaURL        string   `json:"media_url"`
	ThumbURL        string   `json:"thumb_url,omitempty"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	Status          string   `json:"status"`
	RejectedReason  string   `json:"rejected_reason,omitempty"`
	CreatedAt       string   `json:"created_at"`
}

// AdminListResponse 管理端列表响应.
type AdminListResponse struct {
	Items []AdminSubmissionItem `json:"items"`
	Total int                   `json:"total"`
}

// RejectRequest 拒绝投稿的请求体.
type RejectRequest struct {
	Reason string `json:"reason" rule:"max=512"`
}

// GalleryItem 公开画廊条目，只暴露已通过的投稿.
type GalleryItem struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	AuthorName string   `json:"author_name"`
	Tags       []string `json:"tags,omitempty"`
	MediaType  string   `json:"media_type"`
	ThumbURL   string   `json:"thumb_url,omitempty"`
	DetailURL  string   `json:"detail_url"`
	CreatedAt  string   `json:"created_at"`
}

// GalleryResponse 公开画廊响应.
type GalleryResponse struct {
	Items []GalleryItem `json:"items"`
	Total int           `json:"total"`
}

// ItemDetail 公开作品详情.
type ItemDetail struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	AuthorName      string   `json:"author_name"`
	Description     string   `json:"description,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	MediaType       string   `json:"media_type"`
	MediaURL        string   `json:"media_url"`
	ThumbURL        string   `json:"thumb_url,omitempty"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	CreatedAt       string   `json:"created_at"`
}

// ErrorResponse 统一错误响应.
type ErrorResponse struct {
	Error string `json:"error"`
}

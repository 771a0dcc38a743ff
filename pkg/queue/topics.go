// Package queue 定义消息主题常量与通配模式，供发布/订阅使用.
package queue

// 主题命名规范：av.<域>.<动作>[.<状态>]，尽量稳定且向后兼容.
// 域：submission(投稿)、media(媒体对象)
// 动作/状态：received(已接收)、approved(已通过)、rejected(已拒绝)、stored(已写入)、pruned(已清理)

const (
	// 投稿领域.
	TopicSubmissionReceived = "av.submission.received" // 投稿通过校验并完成落库
	TopicSubmissionApproved = "av.submission.approved" // 审核通过，作品进入公开画廊
	TopicSubmissionRejected = "av.submission.rejected" // 审核拒绝

	// 媒体对象领域.
	TopicMediaStored = "av.media.stored" // 媒体文件已写入对象存储
	TopicMediaPruned = "av.media.pruned" // 孤儿媒体文件被后台清理

	// 通配模式.
	PatternSubmissionAll = "av.submission.*"
	PatternMediaAll      = "av.media.*"
)

package queue

import "github.com/ThreeDotsLabs/watermill/message"

// -------------------------- 基于业务封装 events --------------------------

// PublishSubmissionReceived 发布 av.submission.received 事件。
// 投稿通过校验并完成落库后调用，通知下游流程（如审核提醒、统计等）。
// 可通过可选项 opts 注入 TraceID、Producer 等头部信息。
func PublishSubmissionReceived(pub message.Publisher, payload SubmissionReceivedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicSubmissionReceived, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicSubmissionReceived, msg)
}

// ParseSubmissionReceived 将 Watermill 消息解析为强类型 Envelope.
func ParseSubmissionReceived(msg *message.Message) (Message[SubmissionReceivedPayload], error) {
	return ParseWatermillMessage[SubmissionReceivedPayload](msg)
}

// PublishSubmissionApproved 发布 av.submission.approved 事件.
func PublishSubmissionApproved(pub message.Publisher, payload SubmissionApprovedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicSubmissionApproved, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicSubmissionApproved, msg)
}

// ParseSubmissionApproved 将 Watermill 消息解析为强类型 Envelope.
func ParseSubmissionApproved(msg *message.Message) (Message[SubmissionApprovedPayload], error) {
	return ParseWatermillMessage[SubmissionApprovedPayload](msg)
}

// PublishSubmissionRejected 发布 av.submission.rejected 事件.
func PublishSubmissionRejected(pub message.Publisher, payload SubmissionRejectedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicSubmissionRejected, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicSubmissionRejected, msg)
}

// ParseSubmissionRejected 将 Watermill 消息解析为强类型 Envelope.
func ParseSubmissionRejected(msg *message.Message) (Message[SubmissionRejectedPayload], error) {
	return ParseWatermillMessage[SubmissionRejectedPayload](msg)
}

// PublishMediaStored 发布 av.media.stored 事件.
func PublishMediaStored(pub message.Publisher, payload MediaStoredPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicMediaStored, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicMediaStored, msg)
}

// PublishMediaPruned 发布 av.media.pruned 事件.
func PublishMediaPruned(pub message.Publisher, payload MediaPrunedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicMediaPruned, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicMediaPruned, msg)
}

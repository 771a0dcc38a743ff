package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/yeisme/artvault/pkg/configs"
	ctxPkg "github.com/yeisme/artvault/pkg/context"
	"github.com/yeisme/artvault/pkg/internal/media"
	"github.com/yeisme/artvault/pkg/internal/model"
	"github.com/yeisme/artvault/pkg/internal/storage/mq"
	"github.com/yeisme/artvault/pkg/internal/types"
	nlog "github.com/yeisme/artvault/pkg/log"
	"github.com/yeisme/artvault/pkg/metrics"
	"github.com/yeisme/artvault/pkg/queue"
)

// ErrVideoTooLong 视频时长超过上限.
var ErrVideoTooLong = errors.New("video exceeds duration limit")

// mqPublisher 把带 context 的 mq.Client 适配为 watermill 的 message.Publisher.
type mqPublisher struct {
	ctx context.Context
	c   *mq.Client
}

func (p mqPublisher) Publish(topic string, msgs ...*message.Message) error {
	return p.c.Publish(p.ctx, topic, msgs...)
}

func (p mqPublisher) Close() error { return nil }

// SubmissionService 投稿全流程：接收校验、落库、审核迁移、公开查询.
type SubmissionService struct {
	store *SubmissionStore
	blob  BlobStore
	auth  *AuthService
	mqc   *mq.Client
	media configs.MediaConfig
}

// NewSubmissionService 从请求上下文构造服务实例.
func NewSubmissionService(c context.Context) *SubmissionService {
	dbc := ctxPkg.GetDBClient(c)
	s3c := ctxPkg.GetS3Client(c)

	svc := &SubmissionService{
		auth:  NewAuthService(c),
		mqc:   ctxPkg.GetMQClient(c),
		media: configs.GetConfig().Media,
	}

	if dbc != nil {
		svc.store = NewSubmissionStore(dbc.DB)
	} else {
		nlog.Logger().Warn().Msg("DB client not initialized, SubmissionService unavailable")
	}

	if s3c != nil {
		svc.blob = NewS3BlobStore(s3c)
	}

	return svc
}

// newSubmissionServiceWith 测试用构造.
func newSubmissionServiceWith(store *SubmissionStore, blob BlobStore, auth *AuthService, mediaCfg configs.MediaConfig) *SubmissionService {
	return &SubmissionService{store: store, blob: blob, auth: auth, media: mediaCfg}
}

// Store 暴露底层存储，供后台任务统计使用.
func (s *SubmissionService) Store() *SubmissionStore {
	return s.store
}

// Submit 接收匿名投稿：先按声明的类型和大小校验，通过后才读入文件字节，
// 写入对象存储后才创建 pending 记录，保证记录不会引用半写文件.
func (s *SubmissionService) Submit(ctx context.Context, meta *types.SubmitMetadata, file *multipart.FileHeader, durationSeconds *float64) (*types.SubmitResponse, error) {
	var (
		size        int64
		contentType string
		fileName    string
	)

	if file != nil {
		size = file.Size
		contentType = file.Header.Get("Content-Type")
		fileName = file.Filename
	}

	// 匿名接口：超限文件在读入内存前就拒绝
	mediaType, err := media.ValidateWithin(contentType, size, file != nil, s.media.MaxImageBytes, s.media.MaxVideoBytes)
	if err != nil {
		metrics.SubmissionsRejectedInput.WithLabelValues(err.Error()).Inc()
		return nil, err
	}

	if mediaType == media.TypeVideo && durationSeconds != nil && *durationSeconds > float64(s.media.MaxVideoSeconds) {
		metrics.SubmissionsRejectedInput.WithLabelValues(ErrVideoTooLong.Error()).Inc()
		return nil, ErrVideoTooLong
	}

	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	storedPath, err := s.blob.Store(ctx, data, fileName, contentType)
	if err != nil {
		return nil, err
	}

	thumbPath, err := s.blob.DeriveThumb(ctx, storedPath, mediaType)
	if err != nil {
		// 缩略图失败不阻断投稿
		nlog.Logger().Warn().Err(err).Str("path", storedPath).Msg("derive thumb failed")
		thumbPath = ""
	}

	sub := &model.Submission{
		Title:       meta.Title,
		AuthorName:  meta.AuthorName,
		Description: meta.Description,
		MediaType:   mediaType,
		FilePath:    storedPath,
		ThumbPath:   thumbPath,
	}
	sub.SetTags(model.ParseTags(meta.Tags))

	if mediaType == media.TypeVideo {
		sub.DurationSeconds = durationSeconds
	}

	id, err := s.store.Create(ctx, sub)
	if err != nil {
		return nil, err
	}

	metrics.SubmissionsReceived.WithLabelValues(mediaType).Inc()
	s.publishMediaStored(ctx, sub, fileName, contentType, int64(len(data)))
	s.publishReceived(ctx, sub, int64(len(data)))

	return &types.SubmitResponse{ID: id, Status: model.StatusPending}, nil
}

// Approve 审核通过.凭证校验先于任何存储访问.
func (s *SubmissionService) Approve(ctx context.Context, id, credential string) (*model.Submission, error) {
	if err := s.auth.Verify(ctx, credential); err != nil {
		return nil, err
	}

	sub, err := s.store.SetApproved(ctx, id)
	if err != nil {
		return nil, err
	}

	metrics.ModerationDecisions.WithLabelValues(model.StatusApproved).Inc()
	s.publishDecision(ctx, sub, "")

	return sub, nil
}

// Reject 审核拒绝，记录原因（可为空串，落库后不为 null）.
func (s *SubmissionService) Reject(ctx context.Context, id, reason, credential string) (*model.Submission, error) {
	if err := s.auth.Verify(ctx, credential); err != nil {
		return nil, err
	}

	sub, err := s.store.SetRejected(ctx, id, reason)
	if err != nil {
		return nil, err
	}

	metrics.ModerationDecisions.WithLabelValues(model.StatusRejected).Inc()
	s.publishDecision(ctx, sub, reason)

	return sub, nil
}

// ListSubmissions 管理端列表，凭证校验先于存储访问.
func (s *SubmissionService) ListSubmissions(ctx context.Context, filter types.StatusFilter, credential string) (*types.AdminListResponse, error) {
	if err := s.auth.Verify(ctx, credential); err != nil {
		return nil, err
	}

	subs, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]types.AdminSubmissionItem, 0, len(subs))
	for i := range subs {
		items = append(items, s.adminItem(&subs[i]))
	}

	return &types.AdminListResponse{Items: items, Total: len(items)}, nil
}

// Gallery 公开画廊，只返回 approved.
func (s *SubmissionService) Gallery(ctx context.Context) (*types.GalleryResponse, error) {
	subs, err := s.store.List(ctx, types.FilterApproved)
	if err != nil {
		return nil, err
	}

	items := make([]types.GalleryItem, 0, len(subs))
	for i := range subs {
		sub := &subs[i]
		items = append(items, types.GalleryItem{
			ID:         sub.ID,
			Title:      sub.Title,
			AuthorName: sub.AuthorName,
			Tags:       sub.Tags(),
			MediaType:  sub.MediaType,
			ThumbURL:   s.ResolveMediaURL(sub.ThumbPath),
			DetailURL:  "/api/v1/items/" + sub.ID,
			CreatedAt:  sub.CreatedAt.Format(time.RFC3339),
		})
	}

	return &types.GalleryResponse{Items: items, Total: len(items)}, nil
}

// Detail 公开作品详情，仅 approved 可见，其余一律 NotFound.
func (s *SubmissionService) Detail(ctx context.Context, id string) (*types.ItemDetail, error) {
	sub, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if sub.Status != model.StatusApproved {
		return nil, ErrNotFound
	}

	return &types.ItemDetail{
		ID:              sub.ID,
		Title:           sub.Title,
		AuthorName:      sub.AuthorName,
		Description:     sub.Description,
		Tags:            sub.Tags(),
		MediaType:       sub.MediaType,
		MediaURL:        s.ResolveMediaURL(sub.FilePath),
		ThumbURL:        s.ResolveMediaURL(sub.ThumbPath),
		DurationSeconds: sub.DurationSeconds,
		CreatedAt:       sub.CreatedAt.Format(time.RFC3339),
	}, nil
}

// ResolveMediaURL 将存储路径解析为公开 URL.
func (s *SubmissionService) ResolveMediaURL(storedPath string) string {
	return media.ResolveURL(storedPath, s.media.BaseURL)
}

// adminItem 转换为管理端条目.
func (s *SubmissionService) adminItem(sub *model.Submission) types.AdminSubmissionItem {
	return types.AdminSubmissionItem{
		ID:              sub.ID,
		Title:           sub.Title,
		AuthorName:      sub.AuthorName,
		Description:     sub.Description,
		Tags:            sub.Tags(),
		MediaType:       sub.MediaType,
		MediaURL:        s.ResolveMediaURL(sub.FilePath),
		ThumbURL:        s.ResolveMediaURL(sub.ThumbPath),
		DurationSeconds: sub.DurationSeconds,
		Status:          sub.Status,
		RejectedReason:  sub.RejectedReason,
		CreatedAt:       sub.CreatedAt.Format(time.RFC3339),
	}
}

// publishReceived 发布投稿接收事件，MQ 不可用时静默跳过.
func (s *SubmissionService) publishReceived(ctx context.Context, sub *model.Submission, size int64) {
	if s.mqc == nil {
		return
	}

	err := queue.PublishSubmissionReceived(mqPublisher{ctx: ctx, c: s.mqc}, queue.SubmissionReceivedPayload{
		Submission: queue.SubmissionRef{
			ID:        sub.ID,
			MediaType: sub.MediaType,
			FilePath:  sub.FilePath,
			ThumbPath: sub.ThumbPath,
		},
		Title:      sub.Title,
		AuthorName: sub.AuthorName,
		SizeBytes:  size,
	}, queue.WithProducer(configs.AppName))
	if err != nil {
		nlog.Logger().Warn().Err(err).Str("id", sub.ID).Msg("publish submission received failed")
	}
}

// publishMediaStored 发布媒体落盘事件，供下游缩略图/归档消费.
func (s *SubmissionService) publishMediaStored(ctx context.Context, sub *model.Submission, fileName, contentType string, size int64) {
	if s.mqc == nil {
		return
	}

	err := queue.PublishMediaStored(mqPublisher{ctx: ctx, c: s.mqc}, queue.MediaStoredPayload{
		Media: queue.MediaRef{
			Bucket:      configs.GetConfig().S3.Bucket,
			ObjectKey:   sub.FilePath,
			Size:        size,
			ContentType: contentType,
		},
		SubmissionID: sub.ID,
		FileName:     fileName,
	}, queue.WithProducer(configs.AppName))
	if err != nil {
		nlog.Logger().Warn().Err(err).Str("id", sub.ID).Msg("publish media stored failed")
	}
}

// publishDecision 发布审核结果事件.
func (s *SubmissionService) publishDecision(ctx context.Context, sub *model.Submission, reason string) {
	if s.mqc == nil {
		return
	}

	ref := queue.SubmissionRef{
		ID:        sub.ID,
		MediaType: sub.MediaType,
		FilePath:  sub.FilePath,
		ThumbPath: sub.ThumbPath,
	}

	var err error
	if sub.Status == model.StatusApproved {
		err = queue.PublishSubmissionApproved(mqPublisher{ctx: ctx, c: s.mqc},
			queue.SubmissionApprovedPayload{Submission: ref}, queue.WithProducer(configs.AppName))
	} else {
		err = queue.PublishSubmissionRejected(mqPublisher{ctx: ctx, c: s.mqc},
			queue.SubmissionRejectedPayload{Submission: ref, Reason: reason}, queue.WithProducer(configs.AppName))
	}

	if err != nil {
		nlog.Logger().Warn().Err(err).Str("id", sub.ID).Str("status", sub.Status).Msg("publish moderation decision failed")
	}
}

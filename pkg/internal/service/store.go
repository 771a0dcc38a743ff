package service

import (
	"context"
	crand "crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid"
	"gorm.io/gorm"

	"github.com/yeisme/artvault/pkg/internal/model"
	"github.com/yeisme/artvault/pkg/internal/types"
)

// 全局单例的 ULID 熵源，使用单调递增策略，确保同一毫秒内生成的 ULID 具有排序稳定性。
// MonotonicEntropy 本身不是并发安全的，投稿接口会并发生成 ID，必须加锁.
var (
	ulidEntropy = ulid.Monotonic(crand.Reader, 0)
	ulidMu      sync.Mutex
)

// 存储层错误.
var (
	// ErrNotFound 指定 ID 的投稿不存在.
	ErrNotFound = errors.New("submission not found")
	// ErrAlreadyDecided 投稿已处于终态，审核操作不再生效.
	ErrAlreadyDecided = errors.New("submission already decided")
	// ErrInvalidSubmission 必填字段缺失.
	ErrInvalidSubmission = errors.New("invalid submission")
)

// SubmissionStore 封装投稿的持久化与状态迁移.
// 状态迁移通过条件更新（WHERE status='pending'）实现原子 check-and-set，
// 并发的 approve/reject 恰好一个成功，另一个得到 ErrAlreadyDecided.
type SubmissionStore struct {
	db *gorm.DB
}

// NewSubmissionStore 创建投稿存储.
func NewSubmissionStore(db *gorm.DB) *SubmissionStore {
	return &SubmissionStore{db: db}
}

// Migrate 执行模型迁移.
func (s *SubmissionStore) Migrate() error {
	return s.db.AutoMigrate(&model.Submission{})
}

// newSubmissionID 生成 ULID 字符串作为投稿 ID.
// ULID 使用毫秒时间戳，按时间有序，使主键顺序与 created_at 基本一致。
func newSubmissionID(t time.Time) string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(t), ulidEntropy).String()
}

// Create 落库新投稿，分配 ID 并置为 pending.
// 标题或作者为空返回 ErrInvalidSubmission.
func (s *SubmissionStore) Create(ctx context.Context, sub *model.Submission) (string, error) {
	if strings.TrimSpace(sub.Title) == "" || strings.TrimSpace(sub.AuthorName) == "" {
		return "", ErrInvalidSubmission
	}

	now := time.Now().UTC()
	sub.ID = newSubmissionID(now)
	sub.Status = model.StatusPending
	sub.CreatedAt = now
	sub.UpdatedAt = now

	if err := s.db.WithContext(ctx).Create(sub).Error; err != nil {
		return "", err
	}

	return sub.ID, nil
}

// List 按状态过滤返回投稿，created_at 倒序（最新在前）.
// 管理端依赖该顺序做审核分流.
func (s *SubmissionStore) List(ctx context.Context, filter types.StatusFilter) ([]model.Submission, error) {
	q := s.db.WithContext(ctx).Model(&model.Submission{})

	if filter != "" && filter != types.FilterAll {
		q = q.Where("status = ?", string(filter))
	}

	var subs []model.Submission
	if err := q.Order("created_at DESC, id DESC").Find(&subs).Error; err != nil {
		return nil, err
	}

	return subs, nil
}

// Get 按 ID 查询投稿.
func (s *SubmissionStore) Get(ctx context.Context, id string) (*model.Submission, error) {
	var sub model.Submission

	err := s.db.WithContext(ctx).First(&sub, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return &sub, nil
}

// SetApproved 将 pending 投稿迁移为 approved.
func (s *SubmissionStore) SetApproved(ctx context.Context, id string) (*model.Submission, error) {
	return s.decide(ctx, id, model.StatusApproved, "")
}

// SetRejected 将 pending 投稿迁移为 rejected 并记录原因（可为空串）.
func (s *SubmissionStore) SetRejected(ctx context.Context, id, reason string) (*model.Submission, error) {
	return s.decide(ctx, id, model.StatusRejected, reason)
}

// decide 执行原子状态迁移.条件更新只命中仍为 pending 的行，
// 未命中时回查区分 NotFound 与 AlreadyDecided.
func (s *SubmissionStore) decide(ctx context.Context, id, status, reason string) (*model.Submission, error) {
	updates := map[string]any{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if status == model.StatusRejected {
		updates["rejected_reason"] = reason
	}

	res := s.db.WithContext(ctx).
		Model(&model.Submission{}).
		Where("id = ? AND status = ?", id, model.StatusPending).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		// 要么不存在，要么已被决定
		if _, err := s.Get(ctx, id); err != nil {
			return nil, err
		}

		return nil, ErrAlreadyDecided
	}

	return s.Get(ctx, id)
}

// HasMediaPath 判断对象键是否被任何投稿引用，清理孤儿媒体时使用.
func (s *SubmissionStore) HasMediaPath(ctx context.Context, objectKey string) (bool, error) {
	var n int64

	err := s.db.WithContext(ctx).
		Model(&model.Submission{}).
		Where("file_path = ? OR thumb_path = ?", objectKey, objectKey).
		Count(&n).Error

	return n > 0, err
}

// CountByStatus 统计指定状态的投稿数量，供指标上报使用.
func (s *SubmissionStore) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64

	err := s.db.WithContext(ctx).
		Model(&model.Submission{}).
		Where("status = ?", status).
		Count(&n).Error

	return n, err
}

// Package jobs 实现后台定时任务: 待审核队列指标上报与孤儿媒体清理.
package jobs

import (
	"context"
	"time"

	"github.com/yeisme/artvault/pkg/scheduler"
)

const (
	pendingGaugeInterval = 30 * time.Second
	orphanSweepInterval  = time.Hour
)

// RegisterAll 把全部后台任务注册到调度器. ctx 需携带存储管理器.
func RegisterAll(ctx context.Context, s *scheduler.Scheduler) error {
	if err := s.AddInterval(ctx, "pending_submissions_gauge", pendingGaugeInterval, RefreshPendingGauge); err != nil {
		return err
	}

	if err := s.AddInterval(ctx, "orphan_media_sweep", orphanSweepInterval, SweepOrphanMedia); err != nil {
		return err
	}

	return nil
}

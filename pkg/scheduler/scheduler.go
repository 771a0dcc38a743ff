// Package scheduler 提供后台定时任务调度，使用 gocron/v2 库.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yeisme/artvault/pkg/log"
)

// JobStatus 表示任务的状态类型.
type JobStatus string

const (
	StatusScheduled JobStatus = "scheduled" // 任务已调度
	StatusRunning   JobStatus = "running"   // 任务正在运行
	StatusError     JobStatus = "error"     // 任务出错
)

// JobInfo 记录单个定时任务的运行情况.
type JobInfo struct {
	Name        string    `json:"name"`
	Schedule    string    `json:"schedule"`
	NextRun     time.Time `json:"next_run"`
	LastRun     time.Time `json:"last_run"`
	LastSuccess time.Time `json:"last_success,omitempty"`
	Status      JobStatus `json:"status"`
	Error       string    `json:"error,omitempty"`
}

// Scheduler 是定时任务调度器.
type Scheduler struct {
	scheduler gocron.Scheduler
	jobs      map[string]gocron.Job
	jobInfos  map[string]*JobInfo
	mu        sync.RWMutex
	logger    *zerolog.Logger
}

// NewScheduler 创建一个新的 Scheduler 实例.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		scheduler: s,
		jobs:      make(map[string]gocron.Job),
		jobInfos:  make(map[string]*JobInfo),
		logger:    log.Logger(),
	}, nil
}

// AddInterval 添加一个固定间隔执行的任务.
func (s *Scheduler) AddInterval(ctx context.Context, name string, interval time.Duration, job func(ctx context.Context)) error {
	return s.add(ctx, name, interval.String(), gocron.DurationJob(interval), job)
}

// AddCron 添加一个基于 cron 表达式的任务.
func (s *Scheduler) AddCron(ctx context.Context, name string, cronExpr string, job func(ctx context.Context)) error {
	return s.add(ctx, name, cronExpr, gocron.CronJob(cronExpr, false), job)
}

func (s *Scheduler) add(ctx context.Context, name, schedule string, def gocron.JobDefinition, job func(ctx context.Context)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job with name %s already exists", name)
	}

	// 包装任务以记录状态并兜住panic
	wrapped := func(ctx context.Context) {
		s.setStatus(name, StatusRunning, "")

		defer func() {
			if r := recover(); r != nil {
				s.setStatus(name, StatusError, fmt.Sprintf("panic in job: %v", r))
				s.logger.Error().Str("job", name).Interface("panic", r).Msg("Job panicked")
			}
		}()

		job(ctx)

		s.mu.Lock()
		if info, exists := s.jobInfos[name]; exists {
			info.Status = StatusScheduled
			info.Error = ""
			info.LastSuccess = time.Now()
		}
		s.mu.Unlock()
	}

	j, err := s.scheduler.NewJob(
		def,
		gocron.NewTask(wrapped, ctx),
		gocron.WithName(name),
		gocron.WithEventListeners(
			gocron.AfterJobRuns(func(jobID uuid.UUID, jobName string) {
				s.mu.Lock()
				defer s.mu.Unlock()

				if info, exists := s.jobInfos[jobName]; exists {
					info.LastRun = time.Now()
					if job, ok := s.jobs[jobName]; ok {
						if nextRun, nerr := job.NextRun(); nerr == nil {
							info.NextRun = nextRun
						}
					}
				}
			}),
		),
	)
	if err != nil {
		return err
	}

	nextRun, _ := j.NextRun()
	s.jobs[name] = j
	s.jobInfos[name] = &JobInfo{
		Name:     name,
		Schedule: schedule,
		NextRun:  nextRun,
		Status:   StatusScheduled,
	}

	s.logger.Info().Str("job", name).Str("schedule", schedule).Msg("Added job")

	return nil
}

// Start 启动调度器.
func (s *Scheduler) Start() {
	s.logger.Info().Msg("Starting scheduler")
	s.scheduler.Start()
}

// Stop 停止调度器并等待正在运行的任务结束.
func (s *Scheduler) Stop() error {
	s.logger.Info().Msg("Stopping scheduler")

	return s.scheduler.Shutdown()
}

// GetJobInfos 返回所有定时任务的信息，用于监控.
func (s *Scheduler) GetJobInfos() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]JobInfo, 0, len(s.jobInfos))
	for _, info := range s.jobInfos {
		jobs = append(jobs, *info)
	}

	return jobs
}

func (s *Scheduler) setStatus(name string, status JobStatus, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if info, exists := s.jobInfos[name]; exists {
		info.Status = status
		info.Error = errMsg
	}
}

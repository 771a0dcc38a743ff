// Package storage 处理存储操作，聚合数据库、S3、KV 与消息队列客户端.
//
// Example:
//
// 初始化
//
//	 ctx := context.Background()
//	 mgr, err := storage.Init(ctx)
//
//		if err != nil {
//		    // 处理错误
//		}
//
// 获取存储客户端
//
//	s3Client := mgr.GetS3Client()
//	dbClient := mgr.GetDBClient()
package storage

import (
	"context"
	"sync"

	"github.com/yeisme/artvault/pkg/configs"
	dbc "github.com/yeisme/artvault/pkg/internal/storage/db"
	kvc "github.com/yeisme/artvault/pkg/internal/storage/kv"
	mqc "github.com/yeisme/artvault/pkg/internal/storage/mq"
	s3c "github.com/yeisme/artvault/pkg/internal/storage/s3"
	nlog "github.com/yeisme/artvault/pkg/log"
)

// Manager 聚合所有存储资源.
type Manager struct {
	S3 *s3c.Client
	DB *dbc.Client
	KV *kvc.Client
	MQ *mqc.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置.重复调用只返回已初始化实例.
// 事件队列不可用时只降级告警，不阻止服务启动.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		cfg := configs.GetConfig()
		m := &Manager{}

		// DB
		dbi, e := dbc.New(ctx)
		if e != nil {
			err = e
			return
		}

		m.DB = dbi

		// S3
		s3i, e := s3c.New(ctx)
		if e != nil {
			err = e
			return
		}

		m.S3 = s3i

		// KV（会话令牌等）
		kvi, e := kvc.NewKVClient(ctx)
		if e != nil {
			err = e
			return
		}

		m.KV = kvi

		// MQ（领域事件，可选）
		if cfg.Events.Enabled {
			mqi, e := mqc.New(ctx)
			if e != nil {
				nlog.Logger().Warn().Err(e).Msg("mq unavailable, domain events disabled")
			} else {
				m.MQ = mqi
			}
		}

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// GetS3Client 获取 S3 客户端.
func (m *Manager) GetS3Client() *s3c.Client {
	return m.S3
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetKVClient 获取 KV 客户端.
func (m *Manager) GetKVClient() *kvc.Client {
	return m.KV
}

// GetMQClient 获取 MQ 客户端，未启用事件时可能为 nil.
func (m *Manager) GetMQClient() *mqc.Client {
	return m.MQ
}

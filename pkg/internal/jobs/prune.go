package jobs

import (
	"context"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/yeisme/artvault/pkg/configs"
	ctxPkg "github.com/yeisme/artvault/pkg/context"
	"github.com/yeisme/artvault/pkg/internal/service"
	"github.com/yeisme/artvault/pkg/log"
	"github.com/yeisme/artvault/pkg/queue"
)

const (
	// mediaPrefix 媒体对象统一前缀.
	mediaPrefix = "uploads/"
	// orphanGrace 对象写入后至少保留这么久才会被当作孤儿清理,
	// 避免删掉正在投稿流程中、尚未落库的对象.
	orphanGrace = 24 * time.Hour
)

// SweepOrphanMedia 清理没有任何投稿记录引用的媒体对象.
// 投稿在"对象已写入、数据库写入失败"的窗口里会留下孤儿对象, 由该任务兜底回收.
func SweepOrphanMedia(ctx context.Context) {
	logger := log.Logger()

	s3c := ctxPkg.GetS3Client(ctx)
	dbc := ctxPkg.GetDBClient(ctx)

	if s3c == nil || dbc == nil {
		logger.Warn().Msg("orphan sweep: storage clients not available")
		return
	}

	store := service.NewSubmissionStore(dbc.DB)
	bucket := configs.GetConfig().S3.Bucket
	mqc := ctxPkg.GetMQClient(ctx)

	var scanned, pruned int

	for obj := range s3c.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: mediaPrefix, Recursive: true}) {
		if obj.Err != nil {
			logger.Error().Err(obj.Err).Msg("orphan sweep: list objects failed")
			return
		}

		scanned++

		if time.Since(obj.LastModified) < orphanGrace {
			continue
		}

		referenced, err := store.HasMediaPath(ctx, obj.Key)
		if err != nil {
			logger.Error().Err(err).Str("key", obj.Key).Msg("orphan sweep: reference lookup failed")
			continue
		}

		if referenced {
			continue
		}

		if err := s3c.RemoveObject(ctx, bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			logger.Error().Err(err).Str("key", obj.Key).Msg("orphan sweep: remove failed")
			continue
		}

		pruned++

		logger.Info().Str("key", obj.Key).Msg("orphan sweep: pruned object")

		if mqc != nil {
			msg, merr := queue.NewWatermillMessage(queue.TopicMediaPruned, queue.MediaPrunedPayload{
				Media:  queue.MediaRef{Bucket: bucket, ObjectKey: obj.Key, Size: obj.Size},
				Reason: "no submission references object",
			}, queue.WithProducer(configs.AppName))
			if merr != nil {
				logger.Warn().Err(merr).Msg("orphan sweep: build pruned event failed")
				continue
			}

			if perr := mqc.Publish(ctx, queue.TopicMediaPruned, msg); perr != nil {
				logger.Warn().Err(perr).Msg("orphan sweep: publish pruned event failed")
			}
		}
	}

	logger.Debug().Int("scanned", scanned).Int("pruned", pruned).Msg("orphan sweep finished")
}

package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	minio "github.com/minio/minio-go/v7"

	"github.com/yeisme/artvault/pkg/configs"
	"github.com/yeisme/artvault/pkg/internal/media"
	s3c "github.com/yeisme/artvault/pkg/internal/storage/s3"
)

// BlobStore 抽象媒体文件的写入与缩略图推导，便于在测试中替换实现.
type BlobStore interface {
	// Store 写入完整的文件字节，返回存储路径（对象键）.
	Store(ctx context.Context, data []byte, fileName, contentType string) (string, error)
	// DeriveThumb 为存储路径推导缩略图路径，无缩略图返回空串.
	DeriveThumb(ctx context.Context, storedPath, mediaType string) (string, error)
}

// s3BlobStore 基于 MinIO 的 BlobStore 实现.
type s3BlobStore struct {
	client *s3c.Client
	bucket string
}

// NewS3BlobStore 创建 S3 实现.
func NewS3BlobStore(client *s3c.Client) BlobStore {
	return &s3BlobStore{
		client: client,
		bucket: configs.GetConfig().S3.Bucket,
	}
}

// objectKey 生成按年月分桶的对象键：uploads/YYYY/MM/<ulid><ext>.
func objectKey(fileName string, t time.Time) string {
	ext := path.Ext(fileName)
	return fmt.Sprintf("uploads/%04d/%02d/%s%s", t.Year(), t.Month(), newSubmissionID(t), ext)
}

// Store 将文件写入媒体桶.调用方保证字节已完整读入，
// 因此写入失败不会留下半写状态关联到任何投稿记录.
func (b *s3BlobStore) Store(ctx context.Context, data []byte, fileName, contentType string) (string, error) {
	key := objectKey(fileName, time.Now().UTC())

	_, err := b.client.PutObject(ctx, b.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("store media object: %w", err)
	}

	return key, nil
}

// DeriveThumb 推导缩略图路径.图片暂以原图充当缩略图，
// 视频没有缩略图，等外部转码服务接入后再生成真实缩略图.
func (b *s3BlobStore) DeriveThumb(ctx context.Context, storedPath, mediaType string) (string, error) {
	if mediaType != media.TypeImage {
		return "", nil
	}

	return storedPath, nil
}

package minio

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"vidtube-go/internal/config"
	"vidtube-go/pkg/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const publicReadPolicy = `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`

// UploadedObject 上传结果
type UploadedObject struct {
	Bucket string
	Object string
	URL    string
}

// Store 图片对象存储：头像、封面图
type Store struct {
	client     *minio.Client
	bucket     string
	publicHost string
	scheme     string
}

// New 创建 MinIO 客户端，确保图片 Bucket 存在且公开读
func New(cfg *config.MinIOConfig) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.ImageBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.ImageBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.ImageBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.ImageBucket, err)
		}
		logger.Info("MinIO bucket created", zap.String("bucket", cfg.ImageBucket))
	}

	// 图片直接由前端访问
	if err := client.SetBucketPolicy(ctx, cfg.ImageBucket, fmt.Sprintf(publicReadPolicy, cfg.ImageBucket)); err != nil {
		return nil, fmt.Errorf("failed to set public policy for %s: %w", cfg.ImageBucket, err)
	}

	host := cfg.PublicHost
	if host == "" {
		host = cfg.Endpoint
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}

	logger.Info("MinIO connected",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.ImageBucket),
	)

	return &Store{client: client, bucket: cfg.ImageBucket, publicHost: host, scheme: scheme}, nil
}

func (s *Store) Bucket() string {
	return s.bucket
}

// Upload 上传图片，返回对象名与公开 URL；对象名为 <folder>/<uuid><ext>
func (s *Store) Upload(ctx context.Context, folder, filename string, reader io.Reader, size int64, contentType string) (*UploadedObject, error) {
	object := ObjectName(folder, filename)
	_, err := s.client.PutObject(ctx, s.bucket, object, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to minio: %w", err)
	}
	return &UploadedObject{Bucket: s.bucket, Object: object, URL: s.PublicURL(object)}, nil
}

// Remove 删除对象，不存在时不报错
func (s *Store) Remove(ctx context.Context, bucket, object string) error {
	if bucket == "" {
		bucket = s.bucket
	}
	if err := s.client.RemoveObject(ctx, bucket, object, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s/%s: %w", bucket, object, err)
	}
	return nil
}

// PublicURL 生成公开访问 URL（需要 Bucket 设置为 public-read）
func (s *Store) PublicURL(object string) string {
	return fmt.Sprintf("%s://%s/%s/%s", s.scheme, s.publicHost, s.bucket, object)
}

// ObjectName 生成不重复的对象名，保留原文件扩展名
func ObjectName(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(folder, uuid.NewString()+ext)
}

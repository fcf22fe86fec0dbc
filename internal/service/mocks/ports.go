package mocks

import (
	"context"
	"io"
	"time"

	"vidtube-go/internal/infra/elasticsearch"
	"vidtube-go/internal/infra/kafka"
	"vidtube-go/internal/infra/minio"

	"github.com/stretchr/testify/mock"
)

// ImageStore mock
type ImageStore struct {
	mock.Mock
}

func (m *ImageStore) Bucket() string {
	return m.Called().String(0)
}
func (m *ImageStore) Upload(ctx context.Context, folder, filename string, reader io.Reader, size int64, contentType string) (*minio.UploadedObject, error) {
	args := m.Called(ctx, folder, filename, reader, size, contentType)
	obj, _ := args.Get(0).(*minio.UploadedObject)
	return obj, args.Error(1)
}
func (m *ImageStore) Remove(ctx context.Context, bucket, object string) error {
	args := m.Called(ctx, bucket, object)
	return args.Error(0)
}

// TokenBlocklist mock
type TokenBlocklist struct {
	mock.Mock
}

func (m *TokenBlocklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	args := m.Called(ctx, jti, ttl)
	return args.Error(0)
}
func (m *TokenBlocklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

// Publisher 同时实现媒体清理与评论事件投递
type Publisher struct {
	mock.Mock
}

func (m *Publisher) PublishMediaCleanup(ctx context.Context, ev *kafka.MediaCleanupEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}
func (m *Publisher) PublishCommentEvent(ctx context.Context, ev *kafka.CommentEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

// CommentSearcher mock
type CommentSearcher struct {
	mock.Mock
}

func (m *CommentSearcher) SearchComments(ctx context.Context, q string, videoID *int64, from, size int) (*elasticsearch.SearchResult, error) {
	args := m.Called(ctx, q, videoID, from, size)
	res, _ := args.Get(0).(*elasticsearch.SearchResult)
	return res, args.Error(1)
}

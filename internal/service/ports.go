package service

import (
	"context"
	"io"
	"time"

	"vidtube-go/internal/infra/elasticsearch"
	"vidtube-go/internal/infra/kafka"
	"vidtube-go/internal/infra/minio"
	"vidtube-go/internal/model"
	"vidtube-go/internal/repository"
)

// UserStore 用户持久化
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	EmailTakenByOther(ctx context.Context, email string, userID int64) (bool, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.User, error)
	SetRefreshToken(ctx context.Context, id int64, token *string) error
	ReplaceRefreshToken(ctx context.Context, id int64, old, next string) (bool, error)
	GetChannelProfile(ctx context.Context, username string, viewerID int64) (*repository.ChannelProfileRow, error)
	ListWatchHistory(ctx context.Context, userID int64) ([]repository.WatchHistoryRow, error)
}

// VideoStore 视频只读访问
type VideoStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// CommentStore 评论持久化
type CommentStore interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	UpdateContent(ctx context.Context, id int64, content string) (*model.Comment, error)
	DeleteWithLikes(ctx context.Context, id int64) error
	ListByVideoWithStats(ctx context.Context, videoID, viewerID int64, offset, limit int) ([]repository.CommentRow, int64, error)
	GetRowsByIDs(ctx context.Context, ids []int64, viewerID int64) ([]repository.CommentRow, error)
	SearchByContent(ctx context.Context, q string, videoID *int64, viewerID int64, offset, limit int) ([]repository.CommentRow, int64, error)
}

// ImageStore 图片对象存储
type ImageStore interface {
	Bucket() string
	Upload(ctx context.Context, folder, filename string, reader io.Reader, size int64, contentType string) (*minio.UploadedObject, error)
	Remove(ctx context.Context, bucket, object string) error
}

// TokenBlocklist 已注销 access token 记录
type TokenBlocklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// MediaCleanupPublisher 被替换图片的异步删除
type MediaCleanupPublisher interface {
	PublishMediaCleanup(ctx context.Context, ev *kafka.MediaCleanupEvent) error
}

// CommentEventPublisher 评论变更通知（搜索索引同步）
type CommentEventPublisher interface {
	PublishCommentEvent(ctx context.Context, ev *kafka.CommentEvent) error
}

// CommentSearcher 评论全文检索
type CommentSearcher interface {
	SearchComments(ctx context.Context, q string, videoID *int64, from, size int) (*elasticsearch.SearchResult, error)
}

// FileUpload 待上传的图片
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

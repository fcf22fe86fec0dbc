// Package worker 消费 Kafka 事件：删除被替换的图片、同步评论搜索索引。
package worker

import (
	"context"
	"fmt"

	"vidtube-go/internal/infra/kafka"
	"vidtube-go/internal/model"
	"vidtube-go/pkg/logger"

	"go.uber.org/zap"
)

// ObjectRemover 对象存储删除
type ObjectRemover interface {
	Remove(ctx context.Context, bucket, object string) error
}

// CommentIndexer 评论搜索索引
type CommentIndexer interface {
	IndexComment(ctx context.Context, comment *model.Comment) error
	DeleteComment(ctx context.Context, commentID int64) error
}

// MediaCleanupHandler 删除被替换的头像 / 封面图
func MediaCleanupHandler(store ObjectRemover) kafka.Handler[kafka.MediaCleanupEvent] {
	return func(ctx context.Context, ev *kafka.MediaCleanupEvent) error {
		if ev.Object == "" {
			return nil
		}
		if err := store.Remove(ctx, ev.Bucket, ev.Object); err != nil {
			return fmt.Errorf("remove %s/%s: %w", ev.Bucket, ev.Object, err)
		}
		logger.Info("Replaced image removed",
			zap.String("bucket", ev.Bucket),
			zap.String("object", ev.Object),
			zap.String("reason", ev.Reason),
		)
		return nil
	}
}

// CommentIndexHandler 按事件类型写入或删除索引文档
func CommentIndexHandler(index CommentIndexer) kafka.Handler[kafka.CommentEvent] {
	return func(ctx context.Context, ev *kafka.CommentEvent) error {
		switch ev.Action {
		case kafka.CommentUpserted:
			return index.IndexComment(ctx, &model.Comment{
				ID:        ev.CommentID,
				Content:   ev.Content,
				VideoID:   ev.VideoID,
				OwnerID:   ev.OwnerID,
				CreatedAt: ev.CreatedAt,
				UpdatedAt: ev.UpdatedAt,
			})
		case kafka.CommentDeleted:
			return index.DeleteComment(ctx, ev.CommentID)
		default:
			logger.Warn("Unknown comment event action",
				zap.String("action", string(ev.Action)),
				zap.Int64("comment_id", ev.CommentID),
			)
			return nil
		}
	}
}

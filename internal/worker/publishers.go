package worker

import (
	"context"

	"vidtube-go/internal/infra/kafka"
)

type MediaCleanupPublisher interface {
	PublishMediaCleanup(ctx context.Context, ev *kafka.MediaCleanupEvent) error
}

type CommentEventPublisher interface {
	PublishCommentEvent(ctx context.Context, ev *kafka.CommentEvent) error
}

// Publishers 选择事件的投递方式：启用 Kafka 时写入 topic，否则在进程内直接处理。
// 未启用 Elasticsearch 时评论事件无人消费，返回 nil。
func Publishers(kafkaEnabled, searchEnabled bool, producer *kafka.Producer, images ObjectRemover, index CommentIndexer) (MediaCleanupPublisher, CommentEventPublisher) {
	if kafkaEnabled {
		if searchEnabled {
			return producer, producer
		}
		return producer, nil
	}

	cleanup := NewInlineMediaCleanup(images)
	if searchEnabled && index != nil {
		return cleanup, NewInlineCommentIndexer(index)
	}
	return cleanup, nil
}

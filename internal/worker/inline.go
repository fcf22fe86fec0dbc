package worker

import (
	"context"

	"vidtube-go/internal/infra/kafka"
)

// InlineMediaCleanup 未启用 Kafka 时在请求内直接删除旧图片
type InlineMediaCleanup struct {
	handle kafka.Handler[kafka.MediaCleanupEvent]
}

func NewInlineMediaCleanup(store ObjectRemover) *InlineMediaCleanup {
	return &InlineMediaCleanup{handle: MediaCleanupHandler(store)}
}

func (p *InlineMediaCleanup) PublishMediaCleanup(ctx context.Context, ev *kafka.MediaCleanupEvent) error {
	return p.handle(ctx, ev)
}

// InlineCommentIndexer 未启用 Kafka 时直接同步索引
type InlineCommentIndexer struct {
	handle kafka.Handler[kafka.CommentEvent]
}

func NewInlineCommentIndexer(index CommentIndexer) *InlineCommentIndexer {
	return &InlineCommentIndexer{handle: CommentIndexHandler(index)}
}

func (p *InlineCommentIndexer) PublishCommentEvent(ctx context.Context, ev *kafka.CommentEvent) error {
	return p.handle(ctx, ev)
}

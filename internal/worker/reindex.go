package worker

import (
	"context"

	"vidtube-go/internal/model"
	"vidtube-go/pkg/logger"

	"go.uber.org/zap"
)

// BatchLoader 按 ID 递增分批读取评论
type BatchLoader func(ctx context.Context, afterID int64, batch int) ([]model.Comment, error)

// BulkIndexer 批量写入索引
type BulkIndexer func(ctx context.Context, comments []model.Comment) (success, failed int, err error)

// Reindex 全量重建评论索引，返回成功与失败条数
func Reindex(ctx context.Context, load BatchLoader, index BulkIndexer, batch int) (int, int, error) {
	if batch <= 0 {
		batch = 500
	}

	var (
		afterID int64
		success int
		failed  int
	)
	for {
		if err := ctx.Err(); err != nil {
			return success, failed, err
		}

		comments, err := load(ctx, afterID, batch)
		if err != nil {
			return success, failed, err
		}
		if len(comments) == 0 {
			break
		}

		ok, bad, err := index(ctx, comments)
		if err != nil {
			return success, failed, err
		}
		success += ok
		failed += bad
		afterID = comments[len(comments)-1].ID

		if len(comments) < batch {
			break
		}
	}

	logger.Info("Comment reindex finished", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}

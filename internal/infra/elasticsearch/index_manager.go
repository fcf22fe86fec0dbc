package elasticsearch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vidtube-go/pkg/logger"

	"go.uber.org/zap"
)

// commentsIndexMapping comments 索引的 mapping
const commentsIndexMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 0
	},
	"mappings": {
		"properties": {
			"id": {"type": "long"},
			"video_id": {"type": "long"},
			"owner_id": {"type": "long"},
			"content": {"type": "text", "analyzer": "standard"},
			"created_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"},
			"updated_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
		}
	}
}`

// EnsureIndex 确保 comments 索引存在，不存在则创建
func (c *Client) EnsureIndex(ctx context.Context) error {
	resp, err := c.es.Indices.Exists([]string{c.index}, c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode == 200 {
		logger.Info("Elasticsearch comments index already exists", zap.String("index", c.index))
		return nil
	}

	resp, err = c.es.Indices.Create(
		c.index,
		c.es.Indices.Create.WithContext(ctx),
		c.es.Indices.Create.WithBody(strings.NewReader(commentsIndexMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch comments index created", zap.String("index", c.index))
	return nil
}

// InitIndexes 启动时调用
func (c *Client) InitIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return c.EnsureIndex(ctx)
}

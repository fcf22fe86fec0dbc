package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"vidtube-go/internal/config"
	"vidtube-go/internal/infra/database"
	infraES "vidtube-go/internal/infra/elasticsearch"
	infraKafka "vidtube-go/internal/infra/kafka"
	infraMinio "vidtube-go/internal/infra/minio"
	"vidtube-go/internal/repository"
	"vidtube-go/internal/worker"
	"vidtube-go/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if !cfg.Kafka.Enabled {
		logger.Fatal("Kafka is disabled, events are handled inside the API process")
	}

	images, err := infraMinio.New(&cfg.MinIO)
	if err != nil {
		logger.Fatal("Failed to init minio", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	var wg sync.WaitGroup
	groupID := cfg.Kafka.GroupID

	wg.Add(1)
	go func() {
		defer wg.Done()
		infraKafka.Consume(ctx, cfg.Kafka.Brokers,
			cfg.Kafka.Topic("media_cleanup", infraKafka.TopicMediaCleanup),
			groupID+"-media", worker.MediaCleanupHandler(images))
	}()

	if cfg.Elasticsearch.Enabled {
		es, err := infraES.New(&cfg.Elasticsearch)
		if err != nil {
			logger.Fatal("Failed to init elasticsearch", zap.Error(err))
		}
		if err := es.InitIndexes(); err != nil {
			logger.Fatal("Failed to init elasticsearch index", zap.Error(err))
		}

		if cfg.Elasticsearch.ReindexOnStart {
			reindex(ctx, cfg, es)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			infraKafka.Consume(ctx, cfg.Kafka.Brokers,
				cfg.Kafka.Topic("comment_events", infraKafka.TopicCommentEvents),
				groupID+"-comments", worker.CommentIndexHandler(es))
		}()
	} else {
		logger.Warn("Elasticsearch disabled, comment events are not consumed")
	}

	logger.Info("Worker started", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("group", groupID))
	wg.Wait()
	logger.Info("Worker stopped")
}

// reindex 从数据库全量重建评论索引；失败只记录日志，增量事件仍会继续消费
func reindex(ctx context.Context, cfg *config.Config, es *infraES.Client) {
	if err := database.Init(&cfg.Database, cfg.App.Mode); err != nil {
		logger.Error("Reindex skipped, database unavailable", zap.Error(err))
		return
	}
	defer database.Close()

	comments := repository.NewCommentRepository(database.Get())
	if _, _, err := worker.Reindex(ctx, comments.ListForIndex, es.BulkIndexComments, cfg.Elasticsearch.ReindexBatch); err != nil {
		logger.Error("Comment reindex failed", zap.Error(err))
	}
}

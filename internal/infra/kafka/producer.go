package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vidtube-go/internal/config"
	"vidtube-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer 业务消息生产者
type Producer struct {
	writer       *kafka.Writer
	mediaTopic   string
	commentTopic string
}

// NewProducer 初始化 Kafka 生产者
func NewProducer(cfg *config.KafkaConfig) *Producer {
	p := &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Balancer:               &kafka.Hash{},
			BatchTimeout:           10 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		mediaTopic:   cfg.Topic("media_cleanup", TopicMediaCleanup),
		commentTopic: cfg.Topic("comment_events", TopicCommentEvents),
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("media_topic", p.mediaTopic),
		zap.String("comment_topic", p.commentTopic),
	)
	return p
}

// PublishMediaCleanup 投递图片删除任务
func (p *Producer) PublishMediaCleanup(ctx context.Context, ev *MediaCleanupEvent) error {
	if err := p.send(ctx, p.mediaTopic, ev.Bucket+"/"+ev.Object, ev); err != nil {
		return err
	}
	logger.Info("Media cleanup queued",
		zap.String("bucket", ev.Bucket),
		zap.String("object", ev.Object),
		zap.String("reason", ev.Reason),
	)
	return nil
}

// PublishCommentEvent 投递评论变更；同一评论的消息落在同一分区，保证顺序
func (p *Producer) PublishCommentEvent(ctx context.Context, ev *CommentEvent) error {
	return p.send(ctx, p.commentTopic, fmt.Sprintf("comment-%d", ev.CommentID), ev)
}

func (p *Producer) send(ctx context.Context, topic, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s message: %w", topic, err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send %s message: %w", topic, err)
	}
	return nil
}

// Close 关闭生产者
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return p.writer.Close()
}

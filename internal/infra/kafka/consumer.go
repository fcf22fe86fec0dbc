package kafka

import (
	"context"
	"encoding/json"
	"time"

	"vidtube-go/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Handler 处理单条消息；返回错误只记录日志，不阻塞后续消息
type Handler[T any] func(ctx context.Context, msg *T) error

// Consume 启动消费者（阻塞，需在 goroutine 中运行），ctx 取消后停止
func Consume[T any](ctx context.Context, brokers []string, topic, groupID string, handler Handler[T]) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.FirstOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.String("topic", topic), zap.Error(err))
		}
		logger.Info("Kafka consumer stopped", zap.String("topic", topic))
	}()

	logger.Info("Kafka consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.String("topic", topic), zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		payload, err := Decode[T](msg.Value)
		if err != nil {
			logger.Error("Failed to unmarshal kafka message",
				zap.String("topic", topic),
				zap.Error(err),
				zap.ByteString("value", msg.Value),
			)
			continue
		}

		if err := handler(ctx, payload); err != nil {
			logger.Error("Failed to handle kafka message",
				zap.String("topic", topic),
				zap.ByteString("key", msg.Key),
				zap.Error(err),
			)
		}
	}
}

// Decode 反序列化消息体
func Decode[T any](value []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(value, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

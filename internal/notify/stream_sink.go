package notify

import (
	"context"
	"fmt"

	"vitals-monitor/internal/models"
	rediscommon "vitals-monitor/internal/redis"

	"github.com/go-redis/redis/v8"
)

// StreamSink 将报警写入 Redis Stream（保留最近 maxLen 条）
type StreamSink struct {
	client *redis.Client
	stream string
	maxLen int64
}

// NewStreamSink 创建 Redis Stream 渠道
func NewStreamSink(client *redis.Client, stream string, maxLen int64) *StreamSink {
	return &StreamSink{client: client, stream: stream, maxLen: maxLen}
}

func (s *StreamSink) Name() string { return "redis_stream" }

// Publish 写入报警
func (s *StreamSink) Publish(ctx context.Context, alert *models.AlertEvent) error {
	if _, err := rediscommon.PublishJSONToStream(ctx, s.client, s.stream, s.maxLen, alert); err != nil {
		return fmt.Errorf("failed to publish alert to stream %s: %w", s.stream, err)
	}
	return nil
}

package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	fieldData        = "data"
	fieldPublishedAt = "published_at"
)

// PublishJSONToStream 以 JSON 写入一条消息；maxLen > 0 时保留最近 maxLen 条
func PublishJSONToStream(ctx context.Context, client *redis.Client, stream string, maxLen int64, data interface{}) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal stream payload: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			fieldData:        string(payload),
			fieldPublishedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}
	if maxLen > 0 {
		args.MaxLen = maxLen
	}
	return client.XAdd(ctx, args).Result()
}

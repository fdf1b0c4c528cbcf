package notify

import (
	"context"
	"fmt"
	"time"

	"vitals-monitor/internal/models"

	"github.com/go-resty/resty/v2"
)

// WebhookSink 将报警以 JSON POST 到外部地址
type WebhookSink struct {
	url        string
	httpClient *resty.Client
}

// NewWebhookSink 创建 webhook 渠道（不重试）
func NewWebhookSink(url string, timeout time.Duration) *WebhookSink {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &WebhookSink{url: url, httpClient: client}
}

func (s *WebhookSink) Name() string { return "webhook" }

// Publish 投递报警
func (s *WebhookSink) Publish(ctx context.Context, alert *models.AlertEvent) error {
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetBody(alert).
		Post(s.url)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode())
	}
	return nil
}

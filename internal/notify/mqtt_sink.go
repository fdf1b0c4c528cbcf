package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vitals-monitor/internal/models"
)

// Publisher MQTT 发布接口（由 mqtt.Client 实现）
type Publisher interface {
	Publish(ctx context.Context, topic string, qos byte, retained bool, payload []byte) error
}

// MQTTSink 将报警发布到 MQTT 主题
type MQTTSink struct {
	publisher Publisher
	topic     string
	qos       byte
	timeout   time.Duration
}

// NewMQTTSink 创建 MQTT 渠道；timeout > 0 时限制单次发布的等待时间
func NewMQTTSink(publisher Publisher, topic string, qos byte, timeout time.Duration) *MQTTSink {
	return &MQTTSink{publisher: publisher, topic: topic, qos: qos, timeout: timeout}
}

func (s *MQTTSink) Name() string { return "mqtt" }

// Publish 发布报警（非保留消息）
func (s *MQTTSink) Publish(ctx context.Context, alert *models.AlertEvent) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.publisher.Publish(ctx, s.topic, s.qos, false, payload)
}

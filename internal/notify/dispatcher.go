package notify

import (
	"context"

	"vitals-monitor/internal/models"

	"go.uber.org/zap"
)

// Dispatcher 报警分发：邮件通道调用一次，然后投递到附加渠道
// 只有邮件结果返回给调用方；附加渠道失败只记录日志
type Dispatcher struct {
	primary Notifier
	sinks   []Sink
	logger  *zap.Logger
}

// NewDispatcher 创建分发器；primary 为 nil 时 Notify 返回 ErrNoTransport
func NewDispatcher(primary Notifier, sinks []Sink, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		primary: primary,
		sinks:   sinks,
		logger:  logger,
	}
}

// Notify 分发报警
func (d *Dispatcher) Notify(ctx context.Context, alert *models.AlertEvent) error {
	var err error
	if d.primary == nil {
		err = ErrNoTransport
	} else {
		err = d.primary.Notify(ctx, alert)
	}

	if err != nil {
		d.logger.Error("Failed to send alert email",
			zap.String("event_id", alert.EventID),
			zap.String("record_id", alert.RecordID),
			zap.Error(err),
		)
	} else {
		d.logger.Info("Alert email sent",
			zap.String("event_id", alert.EventID),
			zap.String("record_id", alert.RecordID),
		)
	}

	for _, sink := range d.sinks {
		if sinkErr := sink.Publish(ctx, alert); sinkErr != nil {
			d.logger.Warn("Failed to publish alert",
				zap.String("sink", sink.Name()),
				zap.String("event_id", alert.EventID),
				zap.Error(sinkErr),
			)
			continue
		}
		d.logger.Debug("Alert published",
			zap.String("sink", sink.Name()),
			zap.String("event_id", alert.EventID),
		)
	}

	return err
}

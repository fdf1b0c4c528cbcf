package notify

import (
	"context"
	"errors"

	"vitals-monitor/internal/models"
)

// ErrNoTransport 未配置邮件通道
var ErrNoTransport = errors.New("no notification transport configured")

// Notifier 通知协作者：notify(reading, recipient, subject) -> success|failure
type Notifier interface {
	Notify(ctx context.Context, alert *models.AlertEvent) error
}

// Mailer 邮件发送通道（SMTP / SES）
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Sink 附加的报警投递渠道（webhook / MQTT / Redis Stream）
type Sink interface {
	Name() string
	Publish(ctx context.Context, alert *models.AlertEvent) error
}

// Message 一封纯文本邮件
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// EmailNotifier 将报警渲染为邮件并通过 Mailer 发送
type EmailNotifier struct {
	mailer Mailer
	from   string
}

// NewEmailNotifier 创建邮件通知器
func NewEmailNotifier(mailer Mailer, from string) *EmailNotifier {
	return &EmailNotifier{mailer: mailer, from: from}
}

// Notify 发送报警邮件（单次阻塞调用，不重试）
func (n *EmailNotifier) Notify(ctx context.Context, alert *models.AlertEvent) error {
	if alert == nil {
		return errors.New("alert is required")
	}
	if alert.Recipient == "" {
		return errors.New("recipient address is required")
	}
	msg := RenderAlertEmail(alert)
	msg.From = n.from
	return n.mailer.Send(ctx, msg)
}

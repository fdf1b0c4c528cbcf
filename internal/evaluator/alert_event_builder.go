package evaluator

import (
	"fmt"
	"time"

	"vitals-monitor/internal/models"

	"github.com/google/uuid"
)

// AlertEventBuilder 报警事件构建器
type AlertEventBuilder struct {
	subject models.Subject
}

// NewAlertEventBuilder 创建报警事件构建器
func NewAlertEventBuilder(subject models.Subject) *AlertEventBuilder {
	return &AlertEventBuilder{subject: subject}
}

// BuildAlertEvent 构建报警事件（只接受 Critical 记录）
func (b *AlertEventBuilder) BuildAlertEvent(record models.MonitoringRecord, assessment Assessment) (*models.AlertEvent, error) {
	if record.Status != models.StatusCritical {
		return nil, fmt.Errorf("alert event requires a critical record, got %s", record.Status)
	}
	if b.subject.Email == "" {
		return nil, fmt.Errorf("recipient email is required")
	}

	triggeredAt := record.Timestamp
	if triggeredAt.IsZero() {
		triggeredAt = time.Now()
	}

	issues := make([]models.Issue, len(assessment.Issues))
	copy(issues, assessment.Issues)

	return &models.AlertEvent{
		EventID:     uuid.New().String(),
		RecordID:    record.RecordID,
		Subject:     b.subject,
		Recipient:   b.subject.Email,
		Status:      record.Status,
		Reading:     record.Reading,
		Issues:      issues,
		TriggeredAt: triggeredAt,
	}, nil
}

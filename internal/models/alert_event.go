package models

import (
	"time"
)

// AlertEvent 危急记录的报警快照（发送给各通知渠道）
type AlertEvent struct {
	EventID     string         `json:"event_id"`
	RecordID    string         `json:"record_id"`
	Subject     Subject        `json:"subject"`
	Recipient   string         `json:"recipient"`
	Status      SeverityStatus `json:"status"`
	Reading     VitalsReading  `json:"reading"`
	Issues      []Issue        `json:"issues"`
	TriggeredAt time.Time      `json:"triggered_at"`
}

// Issue 一个触发的判定条件
type Issue struct {
	Code    string  `json:"code"` // heart_rate, blood_pressure, fever, hyperglycemia, hypoxemia
	Message string  `json:"message"`
	Value   float64 `json:"value"`
	Limit   float64 `json:"limit"`
}

package models

import (
	"strings"
	"time"
)

// VitalsReading 一次采集的六项生命体征
type VitalsReading struct {
	HeartRate   int     `json:"heart_rate"`   // bpm
	SystolicBP  int     `json:"systolic_bp"`  // mmHg
	DiastolicBP int     `json:"diastolic_bp"` // mmHg
	Temperature float64 `json:"temperature"`  // °C
	Glucose     int     `json:"glucose"`      // mg/dL
	SpO2        int     `json:"spo2"`         // %
}

// SeverityStatus 严重程度（由读数推导，不单独存储）
type SeverityStatus string

const (
	StatusNormal   SeverityStatus = "Normal"
	StatusWarning  SeverityStatus = "Warning"
	StatusCritical SeverityStatus = "Critical"
)

// Valid reports whether s is one of the three known levels.
func (s SeverityStatus) Valid() bool {
	switch s {
	case StatusNormal, StatusWarning, StatusCritical:
		return true
	}
	return false
}

// MonitoringRecord 会话日志中的一条记录（追加后不可修改）
type MonitoringRecord struct {
	RecordID   string         `json:"record_id"`
	Timestamp  time.Time      `json:"timestamp"`
	Reading    VitalsReading  `json:"reading"`
	Status     SeverityStatus `json:"status"`
	IssueCount int            `json:"issue_count"`
	Issues     []Issue        `json:"issues,omitempty"`
}

// Subject 通知中使用的身份信息
type Subject struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DisplayName returns the subject name, or "Patient" when none was given.
func (s Subject) DisplayName() string {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return "Patient"
	}
	return name
}

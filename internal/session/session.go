package session

import (
	"errors"
	"fmt"
	"time"

	"vitals-monitor/internal/models"

	"github.com/google/uuid"
)

// Stage 会话所处页面阶段
type Stage string

const (
	StageIntake Stage = "intake"
	StageReview Stage = "review"
	StageReport Stage = "report"
)

// NoticeKind 通知结果（仅用于向操作者展示）
type NoticeKind string

const (
	NoticeNone   NoticeKind = ""
	NoticeSent   NoticeKind = "sent"
	NoticeFailed NoticeKind = "failed"
)

// Notice 最近一次通知的用户可见状态
type Notice struct {
	Kind     NoticeKind `json:"kind"`
	Message  string     `json:"message"`
	RecordID string     `json:"record_id"`
}

var ErrNotFound = errors.New("session not found")

// Session 显式的会话状态对象（替代全局可变状态）
// 日志只允许追加，追加后的记录不可修改
type Session struct {
	ID         string                    `json:"id"`
	Subject    models.Subject            `json:"subject"`
	Stage      Stage                     `json:"stage"`
	Log        []models.MonitoringRecord `json:"log"`
	LastNotice Notice                    `json:"last_notice"`
	CreatedAt  time.Time                 `json:"created_at"`
	UpdatedAt  time.Time                 `json:"updated_at"`
}

// New 创建新会话，初始阶段为 Intake
func New(subject models.Subject, now time.Time) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Subject:   subject,
		Stage:     StageIntake,
		Log:       []models.MonitoringRecord{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Record 追加一条记录并进入 Review 阶段
func (s *Session) Record(rec models.MonitoringRecord, notice Notice, now time.Time) error {
	if rec.RecordID == "" {
		return fmt.Errorf("record_id is required")
	}
	if !rec.Status.Valid() {
		return fmt.Errorf("record %s has unknown status %q", rec.RecordID, rec.Status)
	}
	for _, existing := range s.Log {
		if existing.RecordID == rec.RecordID {
			return fmt.Errorf("record already logged: %s", rec.RecordID)
		}
	}
	s.Log = append(s.Log, rec)
	s.LastNotice = notice
	s.Stage = StageReview
	s.UpdatedAt = now
	return nil
}

// BeginIntake 回到 Intake 阶段（日志保留）
func (s *Session) BeginIntake(now time.Time) {
	s.Stage = StageIntake
	s.UpdatedAt = now
}

// OpenReport 进入 Report 阶段
func (s *Session) OpenReport(now time.Time) {
	s.Stage = StageReport
	s.UpdatedAt = now
}

// Records returns a copy of the log so callers cannot mutate appended entries.
func (s *Session) Records() []models.MonitoringRecord {
	out := make([]models.MonitoringRecord, len(s.Log))
	copy(out, s.Log)
	return out
}

// Latest returns the most recent record, if any.
func (s *Session) Latest() (models.MonitoringRecord, bool) {
	if len(s.Log) == 0 {
		return models.MonitoringRecord{}, false
	}
	return s.Log[len(s.Log)-1], true
}

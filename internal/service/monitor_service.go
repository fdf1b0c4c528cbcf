package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"vitals-monitor/internal/evaluator"
	"vitals-monitor/internal/intake"
	"vitals-monitor/internal/models"
	"vitals-monitor/internal/notify"
	"vitals-monitor/internal/sample"
	"vitals-monitor/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// NoticeSentMessage 邮件发送成功提示
	NoticeSentMessage = "Email alert successfully sent."
	// noticeFailedPrefix 邮件发送失败提示前缀
	noticeFailedPrefix = "Failed to send email: "
)

// MonitorService 监测服务接口
type MonitorService interface {
	// StartSession 以受试者身份开始新会话（阶段 Intake）
	StartSession(ctx context.Context, subject models.Subject) (*session.Session, error)
	// GetSession 读取会话
	GetSession(ctx context.Context, sessionID string) (*session.Session, error)
	// Submit 分类一次读数、追加到日志，Critical 时发送通知
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error)
	// SubmitSample 生成模拟读数后按 Submit 处理
	SubmitSample(ctx context.Context, sessionID string) (*SubmitResponse, error)
	// BeginIntake 回到录入页
	BeginIntake(ctx context.Context, sessionID string) (*session.Session, error)
	// OpenReport 进入报告页
	OpenReport(ctx context.Context, sessionID string) (*session.Session, error)
	// EndSession 结束会话并丢弃日志
	EndSession(ctx context.Context, sessionID string) error
	// Assess 纯分类（不写日志、不通知）
	Assess(reading models.VitalsReading) evaluator.Assessment
	// Thresholds 当前生效的阈值
	Thresholds() models.Thresholds
}

// SubmitRequest 提交读数请求
type SubmitRequest struct {
	SessionID string
	Reading   models.VitalsReading
}

// SubmitResponse 提交读数响应
type SubmitResponse struct {
	Session    *session.Session
	Record     models.MonitoringRecord
	Assessment evaluator.Assessment
	Notice     session.Notice
}

// monitorService 监测服务实现
type monitorService struct {
	sessions  session.Store
	evaluator *evaluator.Evaluator
	notifier  notify.Notifier
	generator *sample.Generator
	logger    *zap.Logger

	// 同一会话的读-改-写串行化；按会话 ID 哈希分段，数量固定
	locks [sessionLockStripes]sync.Mutex
	now   func() time.Time
}

const sessionLockStripes = 64

// NewMonitorService 创建监测服务
func NewMonitorService(
	sessions session.Store,
	eval *evaluator.Evaluator,
	notifier notify.Notifier,
	generator *sample.Generator,
	logger *zap.Logger,
) MonitorService {
	return &monitorService{
		sessions:  sessions,
		evaluator: eval,
		notifier:  notifier,
		generator: generator,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *monitorService) lockFor(sessionID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return &s.locks[h.Sum32()%sessionLockStripes]
}

func (s *monitorService) lock(sessionID string) func() {
	mu := s.lockFor(sessionID)
	mu.Lock()
	return mu.Unlock
}

func (s *monitorService) StartSession(ctx context.Context, subject models.Subject) (*session.Session, error) {
	if subject.Email == "" {
		return nil, fmt.Errorf("subject email is required")
	}

	sess := session.New(subject, s.now())
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("Monitoring session started",
		zap.String("session_id", sess.ID),
	)
	return sess, nil
}

func (s *monitorService) GetSession(ctx context.Context, sessionID string) (*session.Session, error) {
	if sessionID == "" {
		return nil, session.ErrNotFound
	}
	return s.sessions.Get(ctx, sessionID)
}

func (s *monitorService) Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	if err := intake.ValidateReading(req.Reading); err != nil {
		return nil, err
	}

	unlock := s.lock(req.SessionID)
	defer unlock()

	sess, err := s.GetSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	// 每次提交只分类一次
	assessment := s.evaluator.Assess(req.Reading)
	now := s.now()
	record := models.MonitoringRecord{
		RecordID:   uuid.New().String(),
		Timestamp:  now,
		Reading:    req.Reading,
		Status:     assessment.Status,
		IssueCount: assessment.Count,
		Issues:     assessment.Issues,
	}

	notice := session.Notice{Kind: session.NoticeNone, RecordID: record.RecordID}
	if record.Status == models.StatusCritical {
		notice = s.notify(ctx, sess.Subject, record, assessment)
	}

	// 无论通知结果如何，记录都保留
	if err := sess.Record(record, notice, now); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("Reading classified",
		zap.String("session_id", sess.ID),
		zap.String("record_id", record.RecordID),
		zap.String("status", string(record.Status)),
		zap.Int("issue_count", record.IssueCount),
		zap.String("notice", string(notice.Kind)),
	)

	return &SubmitResponse{
		Session:    sess,
		Record:     record,
		Assessment: assessment,
		Notice:     notice,
	}, nil
}

// notify 调用一次通知协作者，返回用户可见的结果
func (s *monitorService) notify(ctx context.Context, subject models.Subject, record models.MonitoringRecord, assessment evaluator.Assessment) session.Notice {
	notice := session.Notice{RecordID: record.RecordID}

	alert, err := evaluator.NewAlertEventBuilder(subject).BuildAlertEvent(record, assessment)
	if err == nil {
		err = s.notifier.Notify(ctx, alert)
	}
	if err != nil {
		notice.Kind = session.NoticeFailed
		notice.Message = noticeFailedPrefix + err.Error()
		return notice
	}

	notice.Kind = session.NoticeSent
	notice.Message = NoticeSentMessage
	return notice
}

func (s *monitorService) SubmitSample(ctx context.Context, sessionID string) (*SubmitResponse, error) {
	return s.Submit(ctx, SubmitRequest{
		SessionID: sessionID,
		Reading:   s.generator.Generate(),
	})
}

func (s *monitorService) BeginIntake(ctx context.Context, sessionID string) (*session.Session, error) {
	return s.transition(ctx, sessionID, func(sess *session.Session, now time.Time) {
		sess.BeginIntake(now)
	})
}

func (s *monitorService) OpenReport(ctx context.Context, sessionID string) (*session.Session, error) {
	return s.transition(ctx, sessionID, func(sess *session.Session, now time.Time) {
		sess.OpenReport(now)
	})
}

func (s *monitorService) transition(ctx context.Context, sessionID string, apply func(*session.Session, time.Time)) (*session.Session, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	apply(sess, s.now())
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return sess, nil
}

func (s *monitorService) EndSession(ctx context.Context, sessionID string) error {
	unlock := s.lock(sessionID)
	defer unlock()

	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, session.ErrNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	s.logger.Info("Monitoring session ended", zap.String("session_id", sessionID))
	return nil
}

func (s *monitorService) Assess(reading models.VitalsReading) evaluator.Assessment {
	return s.evaluator.Assess(reading)
}

func (s *monitorService) Thresholds() models.Thresholds {
	return s.evaluator.Thresholds()
}

package httpapi

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"vitals-monitor/internal/export"
	"vitals-monitor/internal/intake"
	"vitals-monitor/internal/service"
	"vitals-monitor/internal/session"

	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// MonitorHandler 网页流程：身份录入 → 体征录入 → 结果 → 报告
type MonitorHandler struct {
	svc        service.MonitorService
	cookieName string
	cookieTTL  time.Duration
	logger     *zap.Logger
}

// NewMonitorHandler 创建网页处理器
func NewMonitorHandler(svc service.MonitorService, cookieName string, cookieTTL time.Duration, logger *zap.Logger) *MonitorHandler {
	return &MonitorHandler{
		svc:        svc,
		cookieName: cookieName,
		cookieTTL:  cookieTTL,
		logger:     logger,
	}
}

func (h *MonitorHandler) setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *MonitorHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *MonitorHandler) sessionID(r *http.Request) string {
	c, err := r.Cookie(h.cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// loadSession 读取当前会话；没有会话时跳回首页
func (h *MonitorHandler) loadSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := h.svc.GetSession(r.Context(), h.sessionID(r))
	if err != nil {
		h.handleError(w, r, err)
		return nil, false
	}
	return sess, true
}

func (h *MonitorHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *intake.ValidationError
	switch {
	case errors.Is(err, session.ErrNotFound):
		h.clearSessionCookie(w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	default:
		h.logger.Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// render 先渲染到缓冲区，避免模板出错时输出半个页面
func (h *MonitorHandler) render(w http.ResponseWriter, status int, name string, view any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, view); err != nil {
		h.logger.Error("Failed to render template", zap.String("template", name), zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Index 首页：已有会话时跳到当前阶段，否则显示身份表单
func (h *MonitorHandler) Index(w http.ResponseWriter, r *http.Request) {
	if id := h.sessionID(r); id != "" {
		if sess, err := h.svc.GetSession(r.Context(), id); err == nil {
			http.Redirect(w, r, "/"+string(sess.Stage), http.StatusSeeOther)
			return
		}
	}
	h.render(w, http.StatusOK, "start.html", startView{})
}

// StartSession POST /session
func (h *MonitorHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	subject, err := intake.ParseSubject(r.PostForm)
	if err != nil {
		view := startView{Name: r.PostForm.Get("name"), Email: r.PostForm.Get("email")}
		var verr *intake.ValidationError
		if errors.As(err, &verr) && len(verr.Errors) > 0 {
			view.Error = verr.Errors[0].Message
		} else {
			view.Error = err.Error()
		}
		h.render(w, http.StatusBadRequest, "start.html", view)
		return
	}

	sess, err := h.svc.StartSession(r.Context(), subject)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.setSessionCookie(w, sess.ID)
	http.Redirect(w, r, "/intake", http.StatusSeeOther)
}

// IntakeForm GET /intake
func (h *MonitorHandler) IntakeForm(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.BeginIntake(r.Context(), h.sessionID(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, http.StatusOK, "intake.html", intakeView{
		Subject:     sess.Subject,
		Fields:      buildFields(nil, nil),
		RecordCount: len(sess.Log),
	})
}

// SubmitReading POST /intake
func (h *MonitorHandler) SubmitReading(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	reading, err := intake.ParseReading(r.PostForm)
	if err != nil {
		var verr *intake.ValidationError
		if !errors.As(err, &verr) {
			h.handleError(w, r, err)
			return
		}
		h.render(w, http.StatusBadRequest, "intake.html", intakeView{
			Subject:     sess.Subject,
			Fields:      buildFields(r.PostForm, verr),
			RecordCount: len(sess.Log),
		})
		return
	}

	if _, err := h.svc.Submit(r.Context(), service.SubmitRequest{SessionID: sess.ID, Reading: reading}); err != nil {
		h.handleError(w, r, err)
		return
	}
	http.Redirect(w, r, "/review", http.StatusSeeOther)
}

// SubmitSample POST /intake/sample
func (h *MonitorHandler) SubmitSample(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.SubmitSample(r.Context(), h.sessionID(r)); err != nil {
		h.handleError(w, r, err)
		return
	}
	http.Redirect(w, r, "/review", http.StatusSeeOther)
}

// Review GET /review
func (h *MonitorHandler) Review(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	latest, ok := sess.Latest()
	if !ok {
		http.Redirect(w, r, "/intake", http.StatusSeeOther)
		return
	}

	view := reviewView{
		Subject:     sess.Subject,
		Record:      latest,
		RecordCount: len(sess.Log),
	}
	if sess.LastNotice.RecordID == latest.RecordID {
		view.Notice = sess.LastNotice
	}
	h.render(w, http.StatusOK, "review.html", view)
}

// Report GET /report
func (h *MonitorHandler) Report(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.OpenReport(r.Context(), h.sessionID(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	records := sess.Records()
	h.render(w, http.StatusOK, "report.html", reportView{
		Subject: sess.Subject,
		Records: records,
		Counts:  countByStatus(records),
	})
}

// ExportCSV GET /report/export.csv
func (h *MonitorHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, sess.Records()); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.CSVFilename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// ExportXLSX GET /report/export.xlsx
func (h *MonitorHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	data, err := export.GenerateXLSX(sess.Records())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.XLSXFilename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ResetSession POST /session/reset
func (h *MonitorHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	if id := h.sessionID(r); id != "" {
		if err := h.svc.EndSession(r.Context(), id); err != nil {
			h.handleError(w, r, err)
			return
		}
	}
	h.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

package httpapi

import (
	"errors"
	"net/http"

	"vitals-monitor/internal/intake"
	"vitals-monitor/internal/models"
	"vitals-monitor/internal/service"

	"go.uber.org/zap"
)

// APIHandler JSON API（纯分类，不写日志、不发通知）
type APIHandler struct {
	svc    service.MonitorService
	logger *zap.Logger
}

func NewAPIHandler(svc service.MonitorService, logger *zap.Logger) *APIHandler {
	return &APIHandler{svc: svc, logger: logger}
}

type classifyResponse struct {
	Status     models.SeverityStatus `json:"status"`
	IssueCount int                   `json:"issue_count"`
	Issues     []models.Issue        `json:"issues"`
}

type thresholdsResponse struct {
	Thresholds models.Thresholds   `json:"thresholds"`
	Fields     []models.FieldBound `json:"fields"`
}

// Classify POST /api/v1/classify
func (a *APIHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var reading models.VitalsReading
	if err := readBodyJSON(r, 1<<16, &reading); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	if err := intake.ValidateReading(reading); err != nil {
		var verr *intake.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, FailWith("invalid vitals input", verr.Errors))
			return
		}
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}

	assessment := a.svc.Assess(reading)
	a.logger.Debug("Classified reading via API",
		zap.String("status", string(assessment.Status)),
		zap.Int("issue_count", assessment.Count),
	)

	writeJSON(w, http.StatusOK, Ok(classifyResponse{
		Status:     assessment.Status,
		IssueCount: assessment.Count,
		Issues:     assessment.Issues,
	}))
}

// Thresholds GET /api/v1/thresholds
func (a *APIHandler) Thresholds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(thresholdsResponse{
		Thresholds: a.svc.Thresholds(),
		Fields:     models.FieldBounds,
	}))
}

// Healthz GET /healthz
func (a *APIHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(map[string]string{"status": "ok"}))
}

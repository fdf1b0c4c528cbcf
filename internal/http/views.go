package httpapi

import (
	"net/url"
	"strconv"
	"time"

	"vitals-monitor/internal/intake"
	"vitals-monitor/internal/models"
	"vitals-monitor/internal/session"
)

const timeLayout = "2006-01-02 15:04:05"

type startView struct {
	Name  string
	Email string
	Error string
}

type fieldView struct {
	Name  string
	Label string
	Unit  string
	Min   string
	Max   string
	Step  string
	Value string
	Error string
}

type intakeView struct {
	Subject     models.Subject
	Fields      []fieldView
	RecordCount int
}

type reviewView struct {
	Subject     models.Subject
	Record      models.MonitoringRecord
	Notice      session.Notice
	RecordCount int
}

type reportView struct {
	Subject models.Subject
	Records []models.MonitoringRecord
	Counts  statusCounts
}

type statusCounts struct {
	Normal   int
	Warning  int
	Critical int
}

func formatBound(v float64, step float64) string {
	if step < 1 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}

// buildFields 生成录入表单；values 为 nil 时使用默认值
func buildFields(values url.Values, verr *intake.ValidationError) []fieldView {
	fields := make([]fieldView, 0, len(models.FieldBounds))
	for _, b := range models.FieldBounds {
		fv := fieldView{
			Name:  b.Field,
			Label: b.Label,
			Unit:  b.Unit,
			Min:   formatBound(b.Min, b.Step),
			Max:   formatBound(b.Max, b.Step),
			Step:  formatBound(b.Step, b.Step),
			Value: formatBound(b.Default, b.Step),
		}
		if values != nil {
			fv.Value = values.Get(b.Field)
		}
		if verr != nil {
			fv.Error = verr.ForField(b.Field)
		}
		fields = append(fields, fv)
	}
	return fields
}

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

func countByStatus(records []models.MonitoringRecord) statusCounts {
	var c statusCounts
	for _, rec := range records {
		switch rec.Status {
		case models.StatusNormal:
			c.Normal++
		case models.StatusWarning:
			c.Warning++
		case models.StatusCritical:
			c.Critical++
		}
	}
	return c
}

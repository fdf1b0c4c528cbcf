package httpapi

import (
	"embed"
	"html/template"
	"strconv"

	"vitals-monitor/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"statusClass": statusClass,
	"formatTime":  formatTime,
	"temp":        formatTemperature,
}).ParseFS(templatesFS, "templates/*.html"))

func statusClass(s models.SeverityStatus) string {
	switch s {
	case models.StatusCritical:
		return "status-critical"
	case models.StatusWarning:
		return "status-warning"
	default:
		return "status-normal"
	}
}

func formatTemperature(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

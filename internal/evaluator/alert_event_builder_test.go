package evaluator

import (
	"testing"
	"time"

	"vitals-monitor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertEventBuilder_BuildAlertEvent(t *testing.T) {
	subject := models.Subject{Name: "Jane Doe", Email: "jane@example.com"}
	builder := NewAlertEventBuilder(subject)

	e := NewEvaluator(models.DefaultThresholds())
	reading := models.VitalsReading{HeartRate: 150, SystolicBP: 180, DiastolicBP: 100, Temperature: 39.5, Glucose: 250, SpO2: 88}
	assessment := e.Assess(reading)

	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	record := models.MonitoringRecord{
		RecordID:   "record-1",
		Timestamp:  ts,
		Reading:    reading,
		Status:     assessment.Status,
		IssueCount: assessment.Count,
	}

	event, err := builder.BuildAlertEvent(record, assessment)

	require.NoError(t, err)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "record-1", event.RecordID)
	assert.Equal(t, "jane@example.com", event.Recipient)
	assert.Equal(t, subject, event.Subject)
	assert.Equal(t, models.StatusCritical, event.Status)
	assert.Equal(t, reading, event.Reading)
	assert.Equal(t, ts, event.TriggeredAt)
	assert.Len(t, event.Issues, 5)
}

func TestAlertEventBuilder_RejectsNonCritical(t *testing.T) {
	builder := NewAlertEventBuilder(models.Subject{Email: "jane@example.com"})

	record := models.MonitoringRecord{RecordID: "record-1", Status: models.StatusWarning}

	event, err := builder.BuildAlertEvent(record, Assessment{Status: models.StatusWarning, Count: 1})

	assert.Error(t, err)
	assert.Nil(t, event)
	assert.Contains(t, err.Error(), "critical")
}

func TestAlertEventBuilder_RequiresRecipient(t *testing.T) {
	builder := NewAlertEventBuilder(models.Subject{Name: "Jane"})

	record := models.MonitoringRecord{RecordID: "record-1", Status: models.StatusCritical}

	_, err := builder.BuildAlertEvent(record, Assessment{Status: models.StatusCritical, Count: 3})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "recipient email is required")
}

package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"vitals-monitor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRecords() []models.MonitoringRecord {
	base := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	return []models.MonitoringRecord{
		{
			RecordID:  "rec-1",
			Timestamp: base,
			Reading:   models.VitalsReading{HeartRate: 75, SystolicBP: 120, DiastolicBP: 80, Temperature: 37.0, Glucose: 100, SpO2: 98},
			Status:    models.StatusNormal,
		},
		{
			RecordID:   "rec-2",
			Timestamp:  base.Add(5 * time.Second),
			Reading:    models.VitalsReading{HeartRate: 150, SystolicBP: 180, DiastolicBP: 100, Temperature: 39.5, Glucose: 250, SpO2: 88},
			Status:     models.StatusCritical,
			IssueCount: 5,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Timestamp", "Heart Rate", "BP Systolic", "BP Diastolic", "Temperature", "Glucose", "SpO2", "Status"}, rows[0])
	assert.Equal(t, []string{"2024-03-01 09:30:00", "75", "120", "80", "37.0", "100", "98", "Normal"}, rows[1])
	assert.Equal(t, []string{"2024-03-01 09:30:05", "150", "180", "100", "39.5", "250", "88", "Critical"}, rows[2])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "Timestamp,Heart Rate,BP Systolic,BP Diastolic,Temperature,Glucose,SpO2,Status\n", buf.String())
}

func TestGenerateXLSX(t *testing.T) {
	data, err := GenerateXLSX(sampleRecords())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "2024-03-01 09:30:00", rows[1][0])
	assert.Equal(t, "75", rows[1][1])
	assert.Equal(t, "39.5", rows[2][4])
	assert.Equal(t, "Critical", rows[2][7])
}

package evaluator

import (
	"testing"

	"vitals-monitor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalReading() models.VitalsReading {
	return models.VitalsReading{
		HeartRate:   75,
		SystolicBP:  120,
		DiastolicBP: 80,
		Temperature: 37.0,
		Glucose:     100,
		SpO2:        98,
	}
}

func TestClassify_Normal(t *testing.T) {
	e := NewEvaluator(models.DefaultThresholds())

	assessment := e.Assess(normalReading())

	assert.Equal(t, models.StatusNormal, assessment.Status)
	assert.Equal(t, 0, assessment.Count)
	assert.Empty(t, assessment.Issues)
}

func TestClassify_AllPredicatesCritical(t *testing.T) {
	e := NewEvaluator(models.DefaultThresholds())

	reading := models.VitalsReading{
		HeartRate:   150,
		SystolicBP:  180,
		DiastolicBP: 100,
		Temperature: 39.5,
		Glucose:     250,
		SpO2:        88,
	}

	assessment := e.Assess(reading)

	assert.Equal(t, models.StatusCritical, assessment.Status)
	assert.Equal(t, 5, assessment.Count)
	codes := make([]string, 0, len(assessment.Issues))
	for _, issue := range assessment.Issues {
		codes = append(codes, issue.Code)
	}
	assert.Equal(t, []string{IssueHeartRate, IssueBloodPressure, IssueFever, IssueHyperglycemia, IssueHypoxemia}, codes)
}

func TestClassify_LowHeartRateWarning(t *testing.T) {
	e := NewEvaluator(models.DefaultThresholds())

	reading := normalReading()
	reading.HeartRate = 50

	assessment := e.Assess(reading)

	assert.Equal(t, models.StatusWarning, assessment.Status)
	require.Len(t, assessment.Issues, 1)
	assert.Equal(t, IssueHeartRate, assessment.Issues[0].Code)
	assert.Equal(t, 50.0, assessment.Issues[0].Value)
	assert.Equal(t, 60.0, assessment.Issues[0].Limit)
}

func TestClassify_HeartRateBoundaries(t *testing.T) {
	e := NewEvaluator(models.DefaultThresholds())

	tests := []struct {
		heartRate int
		want      models.SeverityStatus
	}{
		{59, models.StatusWarning},
		{60, models.StatusNormal},
		{120, models.StatusNormal},
		{121, models.StatusWarning},
	}

	for _, tt := range tests {
		reading := normalReading()
		reading.HeartRate = tt.heartRate
		assert.Equal(t, tt.want, e.Classify(reading), "heart rate %d", tt.heartRate)
	}
}

func TestClassify_OtherBoundariesAreNormal(t *testing.T) {
	e := NewEvaluator(models.DefaultThresholds())

	reading := models.VitalsReading{
		HeartRate:   60,
		SystolicBP:  140,
		DiastolicBP: 90,
		Temperature: 38.5,
		Glucose:     180,
		SpO2:        92,
	}

	assert.Equal(t, models.StatusNormal, e.Classify(reading))
}

func TestClassify_BloodPressureCountsOnce(t *testing.T) {
	e := NewEvaluator(models.DefaultThresholds())

	reading := normalReading()
	reading.SystolicBP = 160
	reading.DiastolicBP = 100

	assessment := e.Assess(reading)

	assert.Equal(t, 1, assessment.Count)
	assert.Equal(t, models.StatusWarning, assessment.Status)
}

func TestClassify_TwoIssuesWarningThreeCritical(t *testing.T) {
	e := NewEvaluator(models.DefaultThresholds())

	reading := normalReading()
	reading.Temperature = 39.0
	reading.Glucose = 200
	assert.Equal(t, models.StatusWarning, e.Classify(reading))

	reading.SpO2 = 90
	assert.Equal(t, models.StatusCritical, e.Classify(reading))
}

func TestClassify_OutOfRangeStillClassified(t *testing.T) {
	e := NewEvaluator(models.DefaultThresholds())

	reading := models.VitalsReading{HeartRate: 0, SystolicBP: 0, DiastolicBP: 0, Temperature: 0, Glucose: 0, SpO2: 0}

	// heart rate low and hypoxemia
	assert.Equal(t, models.StatusWarning, e.Classify(reading))
}

func TestClassify_Idempotent(t *testing.T) {
	e := NewEvaluator(models.DefaultThresholds())

	reading := models.VitalsReading{HeartRate: 130, SystolicBP: 150, DiastolicBP: 85, Temperature: 38.6, Glucose: 120, SpO2: 95}

	first := e.Assess(reading)
	second := e.Assess(reading)
	assert.Equal(t, first, second)
	assert.Equal(t, models.StatusCritical, first.Status)
}

func TestClassify_CustomThresholds(t *testing.T) {
	th := models.DefaultThresholds()
	th.HeartRateHigh = 100
	th.TemperatureHigh = 37.5
	e := NewEvaluator(th)

	reading := normalReading()
	reading.HeartRate = 110
	reading.Temperature = 37.8

	assessment := e.Assess(reading)
	assert.Equal(t, 2, assessment.Count)
	assert.Equal(t, models.StatusWarning, assessment.Status)
	assert.Equal(t, th, e.Thresholds())
}

func TestSeverityFromCount_Partition(t *testing.T) {
	assert.Equal(t, models.StatusNormal, SeverityFromCount(0))
	assert.Equal(t, models.StatusWarning, SeverityFromCount(1))
	assert.Equal(t, models.StatusWarning, SeverityFromCount(2))
	assert.Equal(t, models.StatusCritical, SeverityFromCount(3))
	assert.Equal(t, models.StatusCritical, SeverityFromCount(5))

	// more issues never lowers severity
	order := map[models.SeverityStatus]int{models.StatusNormal: 0, models.StatusWarning: 1, models.StatusCritical: 2}
	for n := 0; n < 5; n++ {
		assert.LessOrEqual(t, order[SeverityFromCount(n)], order[SeverityFromCount(n+1)])
	}
}

func TestClassify_AlwaysReturnsKnownStatus(t *testing.T) {
	e := NewEvaluator(models.DefaultThresholds())

	for hr := 30; hr <= 200; hr += 17 {
		for spo2 := 60; spo2 <= 100; spo2 += 7 {
			for temp := 34.0; temp <= 43.0; temp += 1.5 {
				reading := models.VitalsReading{HeartRate: hr, SystolicBP: 130, DiastolicBP: 95, Temperature: temp, Glucose: 190, SpO2: spo2}
				assert.True(t, e.Classify(reading).Valid())
			}
		}
	}
}

package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultThresholds_Valid(t *testing.T) {
	assert.NoError(t, DefaultThresholds().Validate())
}

func TestThresholds_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Thresholds)
		errMsg string
	}{
		{"heart rate inverted", func(th *Thresholds) { th.HeartRateLow = 130 }, "heart rate low threshold"},
		{"heart rate zero", func(th *Thresholds) { th.HeartRateHigh = 0 }, "heart rate thresholds must be positive"},
		{"diastolic above systolic", func(th *Thresholds) { th.DiastolicHigh = 150 }, "diastolic threshold"},
		{"temperature zero", func(th *Thresholds) { th.TemperatureHigh = 0 }, "temperature threshold"},
		{"temperature NaN", func(th *Thresholds) { th.TemperatureHigh = math.NaN() }, "must be a finite number"},
		{"temperature +Inf", func(th *Thresholds) { th.TemperatureHigh = math.Inf(1) }, "must be a finite number"},
		{"temperature -Inf", func(th *Thresholds) { th.TemperatureHigh = math.Inf(-1) }, "must be a finite number"},
		{"glucose negative", func(th *Thresholds) { th.GlucoseHigh = -1 }, "glucose threshold"},
		{"spo2 over 100", func(th *Thresholds) { th.SpO2Low = 101 }, "spo2 threshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := DefaultThresholds()
			tt.mutate(&th)
			err := th.Validate()
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestDefaultReading_WithinBounds(t *testing.T) {
	r := DefaultReading()
	values := map[string]float64{
		FieldHeartRate:   float64(r.HeartRate),
		FieldSystolicBP:  float64(r.SystolicBP),
		FieldDiastolicBP: float64(r.DiastolicBP),
		FieldTemperature: r.Temperature,
		FieldGlucose:     float64(r.Glucose),
		FieldSpO2:        float64(r.SpO2),
	}

	assert.Len(t, FieldBounds, 6)
	for _, b := range FieldBounds {
		v, ok := values[b.Field]
		assert.True(t, ok, b.Field)
		assert.Equal(t, b.Default, v, b.Field)
		assert.GreaterOrEqual(t, v, b.Min, b.Field)
		assert.LessOrEqual(t, v, b.Max, b.Field)
	}
}

func TestSubject_DisplayName(t *testing.T) {
	assert.Equal(t, "Patient", Subject{}.DisplayName())
	assert.Equal(t, "Patient", Subject{Name: "   "}.DisplayName())
	assert.Equal(t, "Jane", Subject{Name: " Jane "}.DisplayName())
}

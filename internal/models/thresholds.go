package models

import (
	"fmt"
	"math"
)

// Thresholds 五个判定条件的阈值
// 边界值按"正常"处理：心率恰好等于 HeartRateLow/HeartRateHigh 不计为异常
type Thresholds struct {
	HeartRateLow    int     `json:"heart_rate_low"`   // HR < low 计为异常
	HeartRateHigh   int     `json:"heart_rate_high"`  // HR > high 计为异常
	SystolicHigh    int     `json:"systolic_high"`    // SBP > high
	DiastolicHigh   int     `json:"diastolic_high"`   // DBP > high
	TemperatureHigh float64 `json:"temperature_high"` // T > high
	GlucoseHigh     int     `json:"glucose_high"`     // glucose > high
	SpO2Low         int     `json:"spo2_low"`         // SpO2 < low
}

// DefaultThresholds returns the reconciled default cut points.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HeartRateLow:    60,
		HeartRateHigh:   120,
		SystolicHigh:    140,
		DiastolicHigh:   90,
		TemperatureHigh: 38.5,
		GlucoseHigh:     180,
		SpO2Low:         92,
	}
}

// Validate 校验阈值配置
func (t Thresholds) Validate() error {
	if t.HeartRateLow <= 0 || t.HeartRateHigh <= 0 {
		return fmt.Errorf("heart rate thresholds must be positive: low=%d high=%d", t.HeartRateLow, t.HeartRateHigh)
	}
	if t.HeartRateLow >= t.HeartRateHigh {
		return fmt.Errorf("heart rate low threshold %d must be below high threshold %d", t.HeartRateLow, t.HeartRateHigh)
	}
	if t.SystolicHigh <= 0 || t.DiastolicHigh <= 0 {
		return fmt.Errorf("blood pressure thresholds must be positive: systolic=%d diastolic=%d", t.SystolicHigh, t.DiastolicHigh)
	}
	if t.DiastolicHigh >= t.SystolicHigh {
		return fmt.Errorf("diastolic threshold %d must be below systolic threshold %d", t.DiastolicHigh, t.SystolicHigh)
	}
	if math.IsNaN(t.TemperatureHigh) || math.IsInf(t.TemperatureHigh, 0) {
		return fmt.Errorf("temperature threshold must be a finite number: %v", t.TemperatureHigh)
	}
	if t.TemperatureHigh <= 0 {
		return fmt.Errorf("temperature threshold must be positive: %v", t.TemperatureHigh)
	}
	if t.GlucoseHigh <= 0 {
		return fmt.Errorf("glucose threshold must be positive: %d", t.GlucoseHigh)
	}
	if t.SpO2Low <= 0 || t.SpO2Low > 100 {
		return fmt.Errorf("spo2 threshold must be within (0, 100]: %d", t.SpO2Low)
	}
	return nil
}

// FieldBound 表单输入控件的取值范围与默认值
type FieldBound struct {
	Field   string  `json:"field"`
	Label   string  `json:"label"`
	Unit    string  `json:"unit"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
	Step    float64 `json:"step"`
}

// Form field names, shared by the intake form and the JSON API.
const (
	FieldHeartRate   = "heart_rate"
	FieldSystolicBP  = "systolic_bp"
	FieldDiastolicBP = "diastolic_bp"
	FieldTemperature = "temperature"
	FieldGlucose     = "glucose"
	FieldSpO2        = "spo2"
)

// FieldBounds lists the six intake fields in display order.
var FieldBounds = []FieldBound{
	{Field: FieldHeartRate, Label: "Heart Rate", Unit: "bpm", Min: 30, Max: 200, Default: 75, Step: 1},
	{Field: FieldSystolicBP, Label: "BP Systolic", Unit: "mmHg", Min: 70, Max: 200, Default: 120, Step: 1},
	{Field: FieldDiastolicBP, Label: "BP Diastolic", Unit: "mmHg", Min: 40, Max: 130, Default: 80, Step: 1},
	{Field: FieldTemperature, Label: "Temperature", Unit: "°C", Min: 34.0, Max: 43.0, Default: 37.0, Step: 0.1},
	{Field: FieldGlucose, Label: "Glucose", Unit: "mg/dL", Min: 40, Max: 300, Default: 100, Step: 1},
	{Field: FieldSpO2, Label: "SpO2", Unit: "%", Min: 60, Max: 100, Default: 98, Step: 1},
}

// DefaultReading returns the reading pre-filled by the intake form.
func DefaultReading() VitalsReading {
	return VitalsReading{
		HeartRate:   75,
		SystolicBP:  120,
		DiastolicBP: 80,
		Temperature: 37.0,
		Glucose:     100,
		SpO2:        98,
	}
}

package evaluator

import (
	"fmt"

	"vitals-monitor/internal/models"
)

// Issue codes, one per vital-sign group.
const (
	IssueHeartRate     = "heart_rate"
	IssueBloodPressure = "blood_pressure"
	IssueFever         = "fever"
	IssueHyperglycemia = "hyperglycemia"
	IssueHypoxemia     = "hypoxemia"
)

// Predicate 单个判定条件，触发时返回 Issue 和 true
type Predicate func(t models.Thresholds, r models.VitalsReading) (models.Issue, bool)

// DefaultPredicates returns the five independent checks in display order.
func DefaultPredicates() []Predicate {
	return []Predicate{
		HeartRateOutOfRange,
		BloodPressureElevated,
		Fever,
		Hyperglycemia,
		Hypoxemia,
	}
}

// HeartRateOutOfRange 判定1：心率 < low 或 > high
func HeartRateOutOfRange(t models.Thresholds, r models.VitalsReading) (models.Issue, bool) {
	if r.HeartRate < t.HeartRateLow {
		return models.Issue{
			Code:    IssueHeartRate,
			Message: fmt.Sprintf("Heart rate %d bpm is below %d bpm", r.HeartRate, t.HeartRateLow),
			Value:   float64(r.HeartRate),
			Limit:   float64(t.HeartRateLow),
		}, true
	}
	if r.HeartRate > t.HeartRateHigh {
		return models.Issue{
			Code:    IssueHeartRate,
			Message: fmt.Sprintf("Heart rate %d bpm is above %d bpm", r.HeartRate, t.HeartRateHigh),
			Value:   float64(r.HeartRate),
			Limit:   float64(t.HeartRateHigh),
		}, true
	}
	return models.Issue{}, false
}

// BloodPressureElevated 判定2：收缩压 > high 或 舒张压 > high
// 两者都超标时仍只计 1 次
func BloodPressureElevated(t models.Thresholds, r models.VitalsReading) (models.Issue, bool) {
	if r.SystolicBP > t.SystolicHigh {
		return models.Issue{
			Code:    IssueBloodPressure,
			Message: fmt.Sprintf("Blood pressure %d/%d mmHg: systolic above %d", r.SystolicBP, r.DiastolicBP, t.SystolicHigh),
			Value:   float64(r.SystolicBP),
			Limit:   float64(t.SystolicHigh),
		}, true
	}
	if r.DiastolicBP > t.DiastolicHigh {
		return models.Issue{
			Code:    IssueBloodPressure,
			Message: fmt.Sprintf("Blood pressure %d/%d mmHg: diastolic above %d", r.SystolicBP, r.DiastolicBP, t.DiastolicHigh),
			Value:   float64(r.DiastolicBP),
			Limit:   float64(t.DiastolicHigh),
		}, true
	}
	return models.Issue{}, false
}

// Fever 判定3：体温 > high
func Fever(t models.Thresholds, r models.VitalsReading) (models.Issue, bool) {
	if r.Temperature > t.TemperatureHigh {
		return models.Issue{
			Code:    IssueFever,
			Message: fmt.Sprintf("Temperature %.1f °C is above %.1f °C", r.Temperature, t.TemperatureHigh),
			Value:   r.Temperature,
			Limit:   t.TemperatureHigh,
		}, true
	}
	return models.Issue{}, false
}

// Hyperglycemia 判定4：血糖 > high
func Hyperglycemia(t models.Thresholds, r models.VitalsReading) (models.Issue, bool) {
	if r.Glucose > t.GlucoseHigh {
		return models.Issue{
			Code:    IssueHyperglycemia,
			Message: fmt.Sprintf("Glucose %d mg/dL is above %d mg/dL", r.Glucose, t.GlucoseHigh),
			Value:   float64(r.Glucose),
			Limit:   float64(t.GlucoseHigh),
		}, true
	}
	return models.Issue{}, false
}

// Hypoxemia 判定5：血氧 < low
func Hypoxemia(t models.Thresholds, r models.VitalsReading) (models.Issue, bool) {
	if r.SpO2 < t.SpO2Low {
		return models.Issue{
			Code:    IssueHypoxemia,
			Message: fmt.Sprintf("SpO2 %d%% is below %d%%", r.SpO2, t.SpO2Low),
			Value:   float64(r.SpO2),
			Limit:   float64(t.SpO2Low),
		}, true
	}
	return models.Issue{}, false
}

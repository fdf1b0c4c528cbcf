package intake

import (
	"fmt"
	"math"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"vitals-monitor/internal/models"
)

// FieldError 单个字段的校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError 表单校验失败（包含所有字段错误）
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "invalid vitals input: " + strings.Join(parts, "; ")
}

// ForField returns the message for field, or "" when it passed.
func (e *ValidationError) ForField(field string) string {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// ParseReading 从表单值解析六项体征
// 缺失、非数字或超出控件范围的值会被拒绝，不会传到评估器
func ParseReading(values url.Values) (models.VitalsReading, error) {
	parsed := make(map[string]float64, len(models.FieldBounds))
	var errs []FieldError

	for _, b := range models.FieldBounds {
		raw := strings.TrimSpace(values.Get(b.Field))
		if raw == "" {
			errs = append(errs, FieldError{Field: b.Field, Message: fmt.Sprintf("%s is required", b.Label)})
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, FieldError{Field: b.Field, Message: fmt.Sprintf("%s must be a number", b.Label)})
			continue
		}
		if b.Step >= 1 && v != math.Trunc(v) {
			errs = append(errs, FieldError{Field: b.Field, Message: fmt.Sprintf("%s must be a whole number", b.Label)})
			continue
		}
		if b.Step > 0 && b.Step < 1 && !onStep(v, b.Step) {
			errs = append(errs, FieldError{Field: b.Field, Message: fmt.Sprintf("%s must be entered in steps of %s", b.Label, strconv.FormatFloat(b.Step, 'f', -1, 64))})
			continue
		}
		if err := CheckBounds(b, v); err != nil {
			errs = append(errs, FieldError{Field: b.Field, Message: err.Error()})
			continue
		}
		parsed[b.Field] = v
	}

	if len(errs) > 0 {
		return models.VitalsReading{}, &ValidationError{Errors: errs}
	}

	return models.VitalsReading{
		HeartRate:   int(parsed[models.FieldHeartRate]),
		SystolicBP:  int(parsed[models.FieldSystolicBP]),
		DiastolicBP: int(parsed[models.FieldDiastolicBP]),
		Temperature: parsed[models.FieldTemperature],
		Glucose:     int(parsed[models.FieldGlucose]),
		SpO2:        int(parsed[models.FieldSpO2]),
	}, nil
}

// onStep 判断 v 是否落在 step 的整数倍上（容忍浮点表示误差）
func onStep(v, step float64) bool {
	n := v / step
	return math.Abs(n-math.Round(n)) < 1e-6
}

// ValidateReading 校验已解析的读数（JSON API 使用）
func ValidateReading(r models.VitalsReading) error {
	values := map[string]float64{
		models.FieldHeartRate:   float64(r.HeartRate),
		models.FieldSystolicBP:  float64(r.SystolicBP),
		models.FieldDiastolicBP: float64(r.DiastolicBP),
		models.FieldTemperature: r.Temperature,
		models.FieldGlucose:     float64(r.Glucose),
		models.FieldSpO2:        float64(r.SpO2),
	}

	var errs []FieldError
	for _, b := range models.FieldBounds {
		if err := CheckBounds(b, values[b.Field]); err != nil {
			errs = append(errs, FieldError{Field: b.Field, Message: err.Error()})
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// CheckBounds 检查值是否在控件声明的范围内（含边界）
func CheckBounds(b models.FieldBound, v float64) error {
	if v < b.Min || v > b.Max {
		return fmt.Errorf("%s must be between %s and %s %s", b.Label, formatBound(b, b.Min), formatBound(b, b.Max), b.Unit)
	}
	return nil
}

func formatBound(b models.FieldBound, v float64) string {
	if b.Step < 1 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}

// ParseSubject 解析身份表单（姓名可选，邮箱必填）
func ParseSubject(values url.Values) (models.Subject, error) {
	name := strings.TrimSpace(values.Get("name"))
	email := strings.TrimSpace(values.Get("email"))

	// 姓名会写入邮件头，禁止换行等控制字符
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return models.Subject{}, &ValidationError{Errors: []FieldError{
			{Field: "name", Message: "Name must not contain line breaks or control characters"},
		}}
	}
	if strings.IndexFunc(email, unicode.IsControl) >= 0 {
		return models.Subject{}, &ValidationError{Errors: []FieldError{
			{Field: "email", Message: "Email address is not valid"},
		}}
	}

	if email == "" {
		return models.Subject{}, &ValidationError{Errors: []FieldError{
			{Field: "email", Message: "Please provide your name and email address to continue."},
		}}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return models.Subject{}, &ValidationError{Errors: []FieldError{
			{Field: "email", Message: "Email address is not valid"},
		}}
	}

	return models.Subject{Name: name, Email: addr.Address}, nil
}

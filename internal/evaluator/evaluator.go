package evaluator

import (
	"vitals-monitor/internal/models"
)

// Assessment 一次评估的结果
type Assessment struct {
	Issues []models.Issue        `json:"issues"`
	Count  int                   `json:"issue_count"`
	Status models.SeverityStatus `json:"status"`
}

// Evaluator 生命体征分级评估器
// 无状态：结果只取决于当前读数和阈值，不依赖历史记录
type Evaluator struct {
	thresholds models.Thresholds
	predicates []Predicate
}

// NewEvaluator 创建评估器
func NewEvaluator(thresholds models.Thresholds) *Evaluator {
	return &Evaluator{
		thresholds: thresholds,
		predicates: DefaultPredicates(),
	}
}

// Thresholds returns the cut points this evaluator was built with.
func (e *Evaluator) Thresholds() models.Thresholds {
	return e.thresholds
}

// Classify maps a reading to its severity. Out-of-range readings are still
// classified; input bounds are enforced by the intake form.
func (e *Evaluator) Classify(reading models.VitalsReading) models.SeverityStatus {
	return e.Assess(reading).Status
}

// Assess 评估所有判定条件，每个触发条件计 1 分（不加权）
func (e *Evaluator) Assess(reading models.VitalsReading) Assessment {
	issues := make([]models.Issue, 0, len(e.predicates))
	for _, p := range e.predicates {
		if issue, ok := p(e.thresholds, reading); ok {
			issues = append(issues, issue)
		}
	}

	return Assessment{
		Issues: issues,
		Count:  len(issues),
		Status: SeverityFromCount(len(issues)),
	}
}

// SeverityFromCount 将异常计数映射为严重程度
//
//	n == 0      → Normal
//	1 <= n <= 2 → Warning
//	n >= 3      → Critical
func SeverityFromCount(n int) models.SeverityStatus {
	switch {
	case n <= 0:
		return models.StatusNormal
	case n <= 2:
		return models.StatusWarning
	default:
		return models.StatusCritical
	}
}

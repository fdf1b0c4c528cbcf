package export

import (
	"strconv"

	"vitals-monitor/internal/models"
)

const (
	// CSVFilename 下载文件名
	CSVFilename = "monitoring_log.csv"
	// XLSXFilename 下载文件名
	XLSXFilename = "monitoring_log.xlsx"

	timeLayout = "2006-01-02 15:04:05"
)

// Header 导出表头：时间戳 + 六项指标 + 状态
var Header = []string{
	"Timestamp",
	"Heart Rate",
	"BP Systolic",
	"BP Diastolic",
	"Temperature",
	"Glucose",
	"SpO2",
	"Status",
}

// row 将一条记录格式化为字符串列
func row(rec models.MonitoringRecord) []string {
	r := rec.Reading
	return []string{
		rec.Timestamp.Format(timeLayout),
		strconv.Itoa(r.HeartRate),
		strconv.Itoa(r.SystolicBP),
		strconv.Itoa(r.DiastolicBP),
		strconv.FormatFloat(r.Temperature, 'f', 1, 64),
		strconv.Itoa(r.Glucose),
		strconv.Itoa(r.SpO2),
		string(rec.Status),
	}
}

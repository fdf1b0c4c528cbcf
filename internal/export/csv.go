package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"vitals-monitor/internal/models"
)

// WriteCSV 按追加顺序写出监测日志
func WriteCSV(w io.Writer, records []models.MonitoringRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(row(rec)); err != nil {
			return fmt.Errorf("failed to write csv row %s: %w", rec.RecordID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

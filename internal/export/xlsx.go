package export

import (
	"bytes"
	"fmt"

	"vitals-monitor/internal/models"

	"github.com/xuri/excelize/v2"
)

// SheetName 导出工作表名称
const SheetName = "Monitoring Log"

// 状态列填充色
var statusFill = map[models.SeverityStatus]string{
	models.StatusNormal:   "#E2F0D9",
	models.StatusWarning:  "#FFF2CC",
	models.StatusCritical: "#F8CBAD",
}

// GenerateXLSX 生成监测日志 Excel 文件
func GenerateXLSX(records []models.MonitoringRecord) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo 之前文件需保持打开

	index, err := f.NewSheet(SheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	statusStyles := make(map[models.SeverityStatus]int, len(statusFill))
	for status, color := range statusFill {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create status style: %w", err)
		}
		statusStyles[status] = style
	}

	for col, header := range Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	// 列宽：Timestamp 较宽，其余统一
	if err := f.SetColWidth(SheetName, "A", "A", 20); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(SheetName, "B", "H", 14); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	for i, rec := range records {
		rowNum := i + 2 // 第1行是表头
		r := rec.Reading
		values := []interface{}{
			rec.Timestamp.Format(timeLayout),
			r.HeartRate,
			r.SystolicBP,
			r.DiastolicBP,
			r.Temperature,
			r.Glucose,
			r.SpO2,
			string(rec.Status),
		}
		for col, value := range values {
			if err := setCellValue(f, col+1, rowNum, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell value at row %d, col %d: %w", rowNum, col+1, err)
			}
		}

		if style, ok := statusStyles[rec.Status]; ok {
			cell, _ := excelize.CoordinatesToCellName(len(Header), rowNum)
			if err := f.SetCellStyle(SheetName, cell, cell, style); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set status style: %w", err)
			}
		}
	}

	// 冻结表头
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}

	return buf.Bytes(), nil
}

func setCellValue(f *excelize.File, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(SheetName, cell, value)
}

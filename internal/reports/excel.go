package reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportMIME is the content type of the generated workbook.
const ExportMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportFilename is the download name of the generated workbook.
const ExportFilename = "attendance-report.xlsx"

const sheetName = "Attendance Report"

var exportHeaders = []string{"Enrollment No", "Name", "Total Classes", "Present", "Absent", "Attendance %"}

var exportWidths = []float64{15, 30, 15, 15, 15, 15}

// RenderWorkbook serializes roster rows into a single-sheet xlsx workbook.
// Absent is derived as total minus present; the percentage is formatted with
// two decimals and a trailing percent sign.
func RenderWorkbook(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, h := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, err
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, col, col, exportWidths[i]); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		values := []any{
			row.EnrollmentNo,
			row.Name,
			row.TotalClasses,
			row.PresentClasses,
			row.TotalClasses - row.PresentClasses,
			fmt.Sprintf("%.2f%%", row.AttendancePercentage),
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

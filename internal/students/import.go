package students

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"collegems/internal/apperr"
)

// MaxBatchSize caps one import sheet.
const MaxBatchSize = 50

// ImportError is one invalid row. Row numbers are 1-based and include the
// header row, matching what the user sees in the spreadsheet.
type ImportError struct {
	Row          int      `json:"row"`
	EnrollmentNo string   `json:"enrollmentNo"`
	Errors       []string `json:"errors"`
}

// ImportResult is either a full set of validation errors or the cleaned rows
// ready for preview; validation never writes anything.
type ImportResult struct {
	Records []Record      `json:"success,omitempty"`
	Errors  []ImportError `json:"errors,omitempty"`
}

var importColumns = map[string]func(*Record, string){
	"enrollmentno": func(r *Record, v string) { r.EnrollmentNo = v },
	"firstname":    func(r *Record, v string) { r.FirstName = v },
	"middlename":   func(r *Record, v string) { r.MiddleName = v },
	"lastname":     func(r *Record, v string) { r.LastName = v },
	"email":        func(r *Record, v string) { r.Email = v },
	"phonenumber":  func(r *Record, v string) { r.PhoneNumber = v },
	"semester":     func(r *Record, v string) { r.Semester = v },
	"branch":       func(r *Record, v string) { r.Branch = v },
	"gender":       func(r *Record, v string) { r.Gender = v },
}

// ParseImport reads the first sheet of an xlsx file into trimmed records.
// The first row is the header; unknown columns are ignored.
func ParseImport(src io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, apperr.Validation("Error importing Excel file")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperr.Validation("Excel file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperr.Validation("Error importing Excel file")
	}
	if len(rows) < 2 {
		return nil, apperr.Validation("Excel file has no data rows")
	}

	setters := make([]func(*Record, string), len(rows[0]))
	for i, header := range rows[0] {
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(header), " ", ""))
		setters[i] = importColumns[key]
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		var rec Record
		for i, cell := range row {
			if i < len(setters) && setters[i] != nil {
				setters[i](&rec, strings.TrimSpace(cell))
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// ValidateImport checks a parsed batch. The batch size limit applies before
// per-row validation; row numbers in errors are offset by the header row.
func ValidateImport(records []Record) (ImportResult, error) {
	if len(records) > MaxBatchSize {
		return ImportResult{}, apperr.Validation(fmt.Sprintf("Maximum %d students can be imported at once", MaxBatchSize))
	}

	var result ImportResult
	for i, rec := range records {
		if errs := rec.Validate(); len(errs) > 0 {
			result.Errors = append(result.Errors, ImportError{
				Row:          i + 2,
				EnrollmentNo: rec.EnrollmentNo,
				Errors:       errs,
			})
		}
	}
	if len(result.Errors) == 0 {
		result.Records = records
	}
	return result, nil
}

package students

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func validRecord() Record {
	return Record{
		EnrollmentNo: "101",
		FirstName:    "Asha",
		LastName:     "Verma",
		Email:        "asha@example.com",
		PhoneNumber:  "9876543210",
		Semester:     "3",
		Branch:       "CSE",
		Gender:       "Female",
	}
}

func TestValidateRecordOK(t *testing.T) {
	if errs := validRecord().Validate(); len(errs) != 0 {
		t.Fatalf("valid record rejected: %v", errs)
	}
}

func TestValidateRecordMissingFields(t *testing.T) {
	rec := validRecord()
	rec.Email = ""
	rec.Gender = ""
	errs := rec.Validate()
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}
	for _, e := range errs {
		if !strings.HasPrefix(e, "Missing required field:") {
			t.Errorf("unexpected error %q", e)
		}
	}
}

func TestValidateRecordBadFormats(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Record)
		want   string
	}{
		{"bad email", func(r *Record) { r.Email = "not-an-email" }, "Invalid email format"},
		{"short phone", func(r *Record) { r.PhoneNumber = "12345" }, "Invalid phone number format"},
		{"semester out of range", func(r *Record) { r.Semester = "9" }, "Must be between 1 and 8"},
		{"semester not numeric", func(r *Record) { r.Semester = "three" }, "Must be a number"},
		{"enrollment not numeric", func(r *Record) { r.EnrollmentNo = "abc" }, "Enrollment number must be a valid number"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := validRecord()
			tc.mutate(&rec)
			errs := rec.Validate()
			if len(errs) == 0 {
				t.Fatal("invalid record accepted")
			}
			found := false
			for _, e := range errs {
				if strings.Contains(e, tc.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("errors %v do not mention %q", errs, tc.want)
			}
		})
	}
}

func TestValidateImportBatchLimit(t *testing.T) {
	records := make([]Record, MaxBatchSize+1)
	for i := range records {
		records[i] = validRecord()
	}
	if _, err := ValidateImport(records); err == nil {
		t.Fatal("oversized batch accepted")
	}
}

func TestValidateImportRowNumbers(t *testing.T) {
	bad := validRecord()
	bad.Email = "broken"
	result, err := ValidateImport([]Record{validRecord(), bad})
	if err != nil {
		t.Fatalf("ValidateImport: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(result.Errors))
	}
	// Second data row sits on spreadsheet row 3 (header is row 1).
	if result.Errors[0].Row != 3 {
		t.Errorf("row = %d, want 3", result.Errors[0].Row)
	}
	if result.Records != nil {
		t.Error("records returned despite validation errors")
	}
}

func TestParseImport(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	headers := []string{"EnrollmentNo", " FirstName ", "LastName", "Email", "PhoneNumber", "Semester", "Branch", "Gender"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			t.Fatalf("SetCellValue: %v", err)
		}
	}
	values := []any{101, " Asha ", "Verma", "asha@example.com", "9876543210", 3, "CSE", "Female"}
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			t.Fatalf("SetCellValue: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	records, err := ParseImport(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ParseImport: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.EnrollmentNo != "101" || rec.FirstName != "Asha" || rec.Branch != "CSE" {
		t.Errorf("parsed record = %+v", rec)
	}
	if errs := rec.Validate(); len(errs) != 0 {
		t.Errorf("parsed record invalid: %v", errs)
	}
}

func TestParseImportRejectsEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	if err := f.SetCellValue(sheet, "A1", "EnrollmentNo"); err != nil {
		t.Fatalf("SetCellValue: %v", err)
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	if _, err := ParseImport(bytes.NewReader(buf.Bytes())); err == nil {
		t.Fatal("header-only sheet accepted")
	}
}

func TestParseImportRejectsGarbage(t *testing.T) {
	if _, err := ParseImport(strings.NewReader("not an xlsx file")); err == nil {
		t.Fatal("garbage input accepted")
	}
}

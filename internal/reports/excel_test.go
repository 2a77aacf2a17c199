package reports

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestRenderWorkbook(t *testing.T) {
	rows := []Row{
		{EnrollmentNo: 201, Name: "Dana", TotalClasses: 4, PresentClasses: 2, AttendancePercentage: 50},
		{EnrollmentNo: 202, Name: "Eli", TotalClasses: 4, PresentClasses: 4, AttendancePercentage: 100},
	}

	data, err := RenderWorkbook(rows)
	if err != nil {
		t.Fatalf("RenderWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d rows, want header + 2 data rows", len(got))
	}

	for i, h := range exportHeaders {
		if got[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, got[0][i], h)
		}
	}

	// Absent column is total minus present.
	if got[1][4] != "2" {
		t.Errorf("absent for 50%% row = %q, want 2", got[1][4])
	}
	if got[2][4] != "0" {
		t.Errorf("absent for 100%% row = %q, want 0", got[2][4])
	}
	if got[1][5] != "50.00%" {
		t.Errorf("percentage cell = %q, want 50.00%%", got[1][5])
	}
	if got[2][5] != "100.00%" {
		t.Errorf("percentage cell = %q, want 100.00%%", got[2][5])
	}
}

func TestRenderWorkbookEmpty(t *testing.T) {
	data, err := RenderWorkbook(nil)
	if err != nil {
		t.Fatalf("RenderWorkbook: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d rows, want header only", len(got))
	}
}

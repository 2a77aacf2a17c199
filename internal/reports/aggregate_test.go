package reports

import (
	"testing"
	"time"

	"collegems/internal/attendance"
	"collegems/internal/model"
)

func classRecord(day int, entries ...model.AttendanceEntry) model.AttendanceRecord {
	return model.AttendanceRecord{
		Date:       time.Date(2024, 8, day, 0, 0, 0, 0, attendance.IST),
		Branch:     "CSE",
		Semester:   3,
		Subject:    "DBMS",
		Attendance: entries,
	}
}

func TestAggregateCountsAllRecordsAsTotal(t *testing.T) {
	// Student 101 is present in two records and has no entry at all in the
	// third; the total still counts all three.
	students := []model.Student{
		{EnrollmentNo: 101, FirstName: "Asha"},
	}
	records := []model.AttendanceRecord{
		classRecord(5, model.AttendanceEntry{EnrollmentNo: 101, IsPresent: true}),
		classRecord(6, model.AttendanceEntry{EnrollmentNo: 101, IsPresent: true}),
		classRecord(7, model.AttendanceEntry{EnrollmentNo: 102, IsPresent: true}),
	}

	rows := Aggregate(students, records)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row.TotalClasses != 3 {
		t.Errorf("totalClasses = %d, want 3", row.TotalClasses)
	}
	if row.PresentClasses != 2 {
		t.Errorf("presentClasses = %d, want 2", row.PresentClasses)
	}
	if row.AttendancePercentage != 66.67 {
		t.Errorf("attendancePercentage = %v, want 66.67", row.AttendancePercentage)
	}
}

func TestAggregatePresentNeverExceedsTotal(t *testing.T) {
	students := []model.Student{
		{EnrollmentNo: 101, FirstName: "Asha"},
		{EnrollmentNo: 102, FirstName: "Ben"},
		{EnrollmentNo: 103, FirstName: "Carl"},
	}
	records := []model.AttendanceRecord{
		classRecord(1, model.AttendanceEntry{EnrollmentNo: 101, IsPresent: true}),
		classRecord(2,
			model.AttendanceEntry{EnrollmentNo: 101, IsPresent: true},
			model.AttendanceEntry{EnrollmentNo: 102, IsPresent: false},
		),
	}

	for _, row := range Aggregate(students, records) {
		if row.PresentClasses > row.TotalClasses {
			t.Errorf("student %d: present %d > total %d", row.EnrollmentNo, row.PresentClasses, row.TotalClasses)
		}
		if row.TotalClasses != len(records) {
			t.Errorf("student %d: total %d, want %d", row.EnrollmentNo, row.TotalClasses, len(records))
		}
	}
}

func TestAggregateNoRecords(t *testing.T) {
	rows := Aggregate([]model.Student{{EnrollmentNo: 101, FirstName: "Asha"}}, nil)
	if rows[0].TotalClasses != 0 || rows[0].PresentClasses != 0 || rows[0].AttendancePercentage != 0 {
		t.Fatalf("empty aggregation row = %+v", rows[0])
	}
}

func TestAggregateUsesFirstNameOnly(t *testing.T) {
	students := []model.Student{
		{EnrollmentNo: 101, FirstName: "Asha", LastName: "Verma"},
		{EnrollmentNo: 102},
	}
	rows := Aggregate(students, nil)
	if rows[0].Name != "Asha" {
		t.Errorf("name = %q, want first name only", rows[0].Name)
	}
	if rows[1].Name != "N/A" {
		t.Errorf("missing first name = %q, want N/A", rows[1].Name)
	}
}

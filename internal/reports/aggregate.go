package reports

import (
	"collegems/internal/attendance"
	"collegems/internal/model"
)

// Row is one student's line in the class-roster report.
type Row struct {
	EnrollmentNo         int     `json:"enrollmentNo"`
	Name                 string  `json:"name"`
	TotalClasses         int     `json:"totalClasses"`
	PresentClasses       int     `json:"presentClasses"`
	AttendancePercentage float64 `json:"attendancePercentage"`
}

// Aggregate joins students against the fetched attendance records.
//
// totalClasses is the count of every fetched record, including ones the
// student has no entry in. That is the stored behavior and reports depend on
// it; see DESIGN.md before changing.
func Aggregate(students []model.Student, records []model.AttendanceRecord) []Row {
	rows := make([]Row, 0, len(students))
	total := len(records)
	for _, student := range students {
		present := 0
		for _, rec := range records {
			if entry, ok := rec.EntryFor(student.EnrollmentNo); ok && entry.IsPresent {
				present++
			}
		}
		pct := 0.0
		if total > 0 {
			pct = attendance.Round2(float64(present) / float64(total) * 100)
		}
		name := student.FirstName
		if name == "" {
			name = "N/A"
		}
		rows = append(rows, Row{
			EnrollmentNo:         student.EnrollmentNo,
			Name:                 name,
			TotalClasses:         total,
			PresentClasses:       present,
			AttendancePercentage: pct,
		})
	}
	return rows
}

package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"collegems/internal/attendance"
	"collegems/internal/model"
)

var markedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "collegems_attendance_marked_total",
	Help: "Class sessions marked.",
})

type markRequest struct {
	Date       string                  `json:"date" binding:"required"`
	Branch     string                  `json:"branch" binding:"required"`
	Semester   int                     `json:"semester" binding:"required"`
	Subject    string                  `json:"subject" binding:"required"`
	FacultyID  int                     `json:"facultyId" binding:"required"`
	Attendance []model.AttendanceEntry `json:"attendance" binding:"required"`
}

// MarkAttendance handles POST /api/attendance/mark.
func (h *Handler) MarkAttendance(c *gin.Context) {
	var req markRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "date, branch, semester, subject, facultyId and attendance are required")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		badRequest(c, "Invalid date value")
		return
	}

	rec, err := h.attendance.Mark(c.Request.Context(), attendance.MarkRequest{
		Date:       date,
		Branch:     req.Branch,
		Semester:   req.Semester,
		Subject:    req.Subject,
		FacultyID:  req.FacultyID,
		Attendance: req.Attendance,
	})
	if err != nil {
		fail(c, err)
		return
	}

	markedTotal.Inc()
	h.reports.InvalidateRoster(c.Request.Context(), rec.Branch, rec.Semester)
	ok(c, "Attendance marked successfully", gin.H{"data": rec})
}

// StudentsForAttendance handles GET /api/attendance/students/:branch/:semester.
func (h *Handler) StudentsForAttendance(c *gin.Context) {
	branch := c.Param("branch")
	semester, err := strconv.Atoi(c.Param("semester"))
	if err != nil {
		badRequest(c, "Invalid semester value")
		return
	}

	roster, err := h.students.Roster(c.Request.Context(), branch, semester)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Students fetched successfully", gin.H{"students": roster})
}

// AttendanceRecords handles GET /api/attendance/records.
func (h *Handler) AttendanceRecords(c *gin.Context) {
	branch := c.Query("branch")
	semester, err := strconv.Atoi(c.Query("semester"))
	if err != nil {
		badRequest(c, "Invalid semester value")
		return
	}

	filter := attendance.ListFilter{
		Branch:   branch,
		Semester: semester,
		Subject:  c.Query("subject"),
	}
	start, end, err := dateRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		badRequest(c, "Invalid date range")
		return
	}
	filter.Start, filter.End = start, end

	records, err := h.attendance.Records(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	if records == nil {
		records = []model.AttendanceRecord{}
	}
	ok(c, "Attendance records fetched successfully", gin.H{"records": records})
}

// StudentAttendance handles GET /api/attendance/student.
func (h *Handler) StudentAttendance(c *gin.Context) {
	enrollmentNo, err := strconv.Atoi(c.Query("enrollmentNo"))
	if err != nil {
		badRequest(c, "Enrollment number is required")
		return
	}

	views, stats, err := h.attendance.StudentView(c.Request.Context(), enrollmentNo, attendance.ViewType(c.Query("viewType")))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Attendance records fetched successfully", gin.H{
		"records":    views,
		"statistics": stats,
	})
}

// dateRange parses an optional inclusive range; both ends or neither.
func dateRange(startStr, endStr string) (*time.Time, *time.Time, error) {
	if startStr == "" || endStr == "" {
		return nil, nil, nil
	}
	start, err := parseDate(startStr)
	if err != nil {
		return nil, nil, err
	}
	end, err := parseDate(endStr)
	if err != nil {
		return nil, nil, err
	}
	return &start, &end, nil
}

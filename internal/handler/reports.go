package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"collegems/internal/reports"
)

// AttendanceReport handles GET /api/reports/attendance.
func (h *Handler) AttendanceReport(c *gin.Context) {
	branch := c.Query("branch")
	semesterStr := c.Query("semester")
	if branch == "" || semesterStr == "" {
		badRequest(c, "Branch and semester are required")
		return
	}
	semester, err := strconv.Atoi(semesterStr)
	if err != nil {
		badRequest(c, "Invalid semester value")
		return
	}
	start, end, err := dateRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		badRequest(c, "Invalid date range")
		return
	}

	rows, err := h.reports.Roster(c.Request.Context(), branch, semester, start, end)
	if err != nil {
		fail(c, err)
		return
	}
	if rows == nil {
		rows = []reports.Row{}
	}
	ok(c, "", gin.H{"data": rows})
}

// StudentReport handles GET /api/reports/attendance/student.
func (h *Handler) StudentReport(c *gin.Context) {
	enrollmentNo, err := strconv.Atoi(c.Query("enrollmentNo"))
	if err != nil {
		badRequest(c, "Enrollment number is required")
		return
	}
	start, end, err := dateRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		badRequest(c, "Invalid date range")
		return
	}

	detail, err := h.reports.StudentDetail(c.Request.Context(), enrollmentNo, start, end)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "", gin.H{"data": detail})
}

// ExportAttendanceReport handles GET /api/reports/attendance/export.
// The roster aggregation is rendered as an xlsx download.
func (h *Handler) ExportAttendanceReport(c *gin.Context) {
	branch := c.Query("branch")
	semesterStr := c.Query("semester")
	if branch == "" || semesterStr == "" {
		badRequest(c, "Branch and semester are required")
		return
	}
	semester, err := strconv.Atoi(semesterStr)
	if err != nil {
		badRequest(c, "Invalid semester value")
		return
	}
	start, end, err := dateRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		badRequest(c, "Invalid date range")
		return
	}

	rows, err := h.reports.Roster(c.Request.Context(), branch, semester, start, end)
	if err != nil {
		fail(c, err)
		return
	}

	workbook, err := reports.RenderWorkbook(rows)
	if err != nil {
		fail(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+reports.ExportFilename)
	c.Data(http.StatusOK, reports.ExportMIME, workbook)
}

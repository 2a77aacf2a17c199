package handler

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"collegems/internal/students"
)

type studentSearchRequest struct {
	EnrollmentNo *int   `json:"enrollmentNo"`
	Branch       string `json:"branch"`
	Semester     *int   `json:"semester"`
}

// GetStudentDetails handles POST /api/student/details/getDetails.
func (h *Handler) GetStudentDetails(c *gin.Context) {
	var req studentSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Please provide enrollment number or branch and semester")
		return
	}

	found, err := h.students.Search(c.Request.Context(), students.SearchQuery{
		EnrollmentNo: req.EnrollmentNo,
		Branch:       req.Branch,
		Semester:     req.Semester,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Student Details Found!", gin.H{"user": found})
}

// AddStudentDetails handles POST /api/student/details/addDetails.
// Accepts a multipart form with student fields and an optional profile image.
func (h *Handler) AddStudentDetails(c *gin.Context) {
	rec := students.Record{
		EnrollmentNo: c.PostForm("enrollmentNo"),
		FirstName:    c.PostForm("firstName"),
		MiddleName:   c.PostForm("middleName"),
		LastName:     c.PostForm("lastName"),
		Email:        c.PostForm("email"),
		PhoneNumber:  c.PostForm("phoneNumber"),
		Semester:     c.PostForm("semester"),
		Branch:       c.PostForm("branch"),
		Gender:       c.PostForm("gender"),
	}

	profile := h.saveProfileUpload(c)

	student, err := h.students.Add(c.Request.Context(), rec, profile)
	if err != nil {
		fail(c, err)
		return
	}
	h.reports.InvalidateRoster(c.Request.Context(), student.Branch, student.Semester)
	ok(c, "Student Details Added Successfully!", gin.H{"user": student})
}

// UpdateStudentDetails handles PUT /api/student/details/updateDetails/:id.
func (h *Handler) UpdateStudentDetails(c *gin.Context) {
	fields := bson.M{}
	profile := ""
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fields = formFields(c)
		profile = h.saveProfileUpload(c)
	} else if err := c.ShouldBindJSON(&fields); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	if err := h.students.Update(c.Request.Context(), c.Param("id"), fields, profile); err != nil {
		fail(c, err)
		return
	}
	h.reports.InvalidateAllRosters(c.Request.Context())
	ok(c, "Updated Successfull!", nil)
}

// DeleteStudentDetails handles DELETE /api/student/details/deleteDetails/:id.
func (h *Handler) DeleteStudentDetails(c *gin.Context) {
	if err := h.students.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	h.reports.InvalidateAllRosters(c.Request.Context())
	ok(c, "Deleted Successfull!", nil)
}

// CountStudents handles GET /api/student/details/count.
func (h *Handler) CountStudents(c *gin.Context) {
	filter := bson.M{}
	if branch := c.Query("branch"); branch != "" {
		filter["branch"] = branch
	}
	if semStr := c.Query("semester"); semStr != "" {
		sem, err := strconv.Atoi(semStr)
		if err != nil {
			badRequest(c, "Invalid semester value")
			return
		}
		filter["semester"] = sem
	}

	n, err := h.students.Count(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Count Successfull!", gin.H{"user": n})
}

type addMultipleRequest struct {
	Students []students.Record `json:"students" binding:"required"`
}

// AddMultipleStudents handles POST /api/student/details/addMultiple.
// Failures are accumulated per item; the batch itself always succeeds.
func (h *Handler) AddMultipleStudents(c *gin.Context) {
	var req addMultipleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "students list is required")
		return
	}

	result := h.students.AddMultiple(c.Request.Context(), req.Students)
	if len(result.Success) > 0 {
		h.reports.InvalidateAllRosters(c.Request.Context())
	}
	ok(c, "Students added successfully", gin.H{"results": result})
}

// ImportStudents handles POST /api/student/excel/import. The sheet is
// validated and returned for preview; nothing is written here.
func (h *Handler) ImportStudents(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "No Excel file uploaded")
		return
	}
	src, err := fh.Open()
	if err != nil {
		badRequest(c, "Error importing Excel file")
		return
	}
	defer src.Close()

	records, err := students.ParseImport(src)
	if err != nil {
		fail(c, err)
		return
	}
	result, err := students.ValidateImport(records)
	if err != nil {
		fail(c, err)
		return
	}
	if len(result.Errors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":       false,
			"message":       "Validation errors found",
			"results":       result,
			"totalStudents": len(records),
			"errorCount":    len(result.Errors),
		})
		return
	}
	ok(c, "Validation successful. Preview the data before adding.", gin.H{"results": result})
}

// saveProfileUpload stores an optional profile image and returns its name.
func (h *Handler) saveProfileUpload(c *gin.Context) string {
	fh, err := c.FormFile("profile")
	if err != nil {
		return ""
	}
	name, err := h.media.SaveUpload(fh)
	if err != nil {
		log.Printf("profile upload rejected: %v", err)
		return ""
	}
	return name
}

// formFields collects non-file form values into an update document.
func formFields(c *gin.Context) bson.M {
	fields := bson.M{}
	if c.Request.PostForm == nil {
		_ = c.Request.ParseMultipartForm(8 << 20)
	}
	for key, values := range c.Request.PostForm {
		if len(values) > 0 {
			fields[key] = values[0]
		}
	}
	return fields
}

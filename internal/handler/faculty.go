package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"collegems/internal/model"
)

// GetFacultyDetails handles POST /api/faculty/details/getDetails.
func (h *Handler) GetFacultyDetails(c *gin.Context) {
	filter := bson.M{}
	_ = c.ShouldBindJSON(&filter)
	delete(filter, "_id")

	found, err := h.faculty.Search(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Faculty Details Found!", gin.H{"user": found})
}

type facultyForm struct {
	EmployeeID  string `form:"employeeId" json:"employeeId"`
	FirstName   string `form:"firstName" json:"firstName"`
	MiddleName  string `form:"middleName" json:"middleName"`
	LastName    string `form:"lastName" json:"lastName"`
	Email       string `form:"email" json:"email"`
	PhoneNumber string `form:"phoneNumber" json:"phoneNumber"`
	Department  string `form:"department" json:"department"`
	Gender      string `form:"gender" json:"gender"`
	Experience  int    `form:"experience" json:"experience"`
	Post        string `form:"post" json:"post"`
}

// AddFacultyDetails handles POST /api/faculty/details/addDetails.
// Accepts a multipart form with faculty fields and an optional profile image.
func (h *Handler) AddFacultyDetails(c *gin.Context) {
	var form facultyForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, "Invalid faculty details")
		return
	}
	f := model.Faculty{
		EmployeeID:  form.EmployeeID,
		FirstName:   form.FirstName,
		MiddleName:  form.MiddleName,
		LastName:    form.LastName,
		Email:       form.Email,
		PhoneNumber: form.PhoneNumber,
		Department:  form.Department,
		Gender:      form.Gender,
		Experience:  form.Experience,
		Post:        form.Post,
	}
	profile := h.saveProfileUpload(c)

	inserted, err := h.faculty.Add(c.Request.Context(), f, profile)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Faculty Details Added Successfully!", gin.H{"user": inserted})
}

// UpdateFacultyDetails handles PUT /api/faculty/details/updateDetails/:id.
func (h *Handler) UpdateFacultyDetails(c *gin.Context) {
	fields := bson.M{}
	profile := ""
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fields = formFields(c)
		profile = h.saveProfileUpload(c)
	} else if err := c.ShouldBindJSON(&fields); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	if err := h.faculty.Update(c.Request.Context(), c.Param("id"), fields, profile); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Updated Successfull!", nil)
}

// DeleteFacultyDetails handles DELETE /api/faculty/details/deleteDetails/:id.
func (h *Handler) DeleteFacultyDetails(c *gin.Context) {
	if err := h.faculty.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Deleted Successfull!", nil)
}

// CountFaculty handles GET /api/faculty/details/count.
func (h *Handler) CountFaculty(c *gin.Context) {
	filter := bson.M{}
	if dep := c.Query("department"); dep != "" {
		filter["department"] = dep
	}
	n, err := h.faculty.Count(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Count Successfull!", gin.H{"user": n})
}

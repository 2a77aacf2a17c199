package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"collegems/internal/model"
)

// GetSubjects handles GET /api/subject/getSubject.
func (h *Handler) GetSubjects(c *gin.Context) {
	subjects, err := h.subjects.ListAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if subjects == nil {
		subjects = []model.Subject{}
	}
	ok(c, "", gin.H{"subject": subjects})
}

// GetSubjectsByBranchAndSemester handles GET /api/subject/getSubjectsByBranchAndSemester.
func (h *Handler) GetSubjectsByBranchAndSemester(c *gin.Context) {
	branch := c.Query("branch")
	semStr := c.Query("semester")
	if branch == "" || semStr == "" {
		badRequest(c, "Branch and semester are required")
		return
	}
	semester, err := strconv.Atoi(semStr)
	if err != nil {
		badRequest(c, "Invalid semester value")
		return
	}

	subjects, err := h.subjects.ListByBranchSemester(c.Request.Context(), branch, semester)
	if err != nil {
		fail(c, err)
		return
	}
	if subjects == nil {
		subjects = []model.Subject{}
	}
	ok(c, "", gin.H{"subjects": subjects})
}

type addSubjectRequest struct {
	Name     string `json:"name" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Branch   string `json:"branch" binding:"required"`
	Semester int    `json:"semester" binding:"required"`
}

// AddSubject handles POST /api/subject/addSubject.
func (h *Handler) AddSubject(c *gin.Context) {
	var req addSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "name, code, branch and semester are required")
		return
	}

	subject, err := h.subjects.Add(c.Request.Context(), model.Subject{
		Name:     req.Name,
		Code:     req.Code,
		Branch:   req.Branch,
		Semester: req.Semester,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Subject added successfully", gin.H{"subject": subject})
}

// DeleteSubject handles DELETE /api/subject/deleteSubject/:id.
func (h *Handler) DeleteSubject(c *gin.Context) {
	if err := h.subjects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Subject deleted successfully", nil)
}

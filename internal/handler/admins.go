package handler

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// GetAdminDetails handles POST /api/admin/details/getDetails.
func (h *Handler) GetAdminDetails(c *gin.Context) {
	filter := bson.M{}
	_ = c.ShouldBindJSON(&filter)
	delete(filter, "_id")

	found, err := h.admins.Search(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, "Admin Details Found!", gin.H{"user": found})
}

// UpdateAdminDetails handles PUT /api/admin/details/updateDetails/:id.
func (h *Handler) UpdateAdminDetails(c *gin.Context) {
	fields := bson.M{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		badRequest(c, "Invalid admin details")
		return
	}
	if err := h.admins.UpdateByID(c.Request.Context(), c.Param("id"), fields); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Updated Successfull!", nil)
}

// DeleteAdminDetails handles DELETE /api/admin/details/deleteDetails/:id.
func (h *Handler) DeleteAdminDetails(c *gin.Context) {
	if err := h.admins.DeleteByID(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	ok(c, "Deleted Successfull!", nil)
}

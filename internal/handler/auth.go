package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"collegems/internal/auth"
)

type credentialRequest struct {
	LoginID  int    `json:"loginid" binding:"required"`
	Password string `json:"password" binding:"required"`
}

var roleLabels = map[string]string{
	auth.RoleStudent: "Student",
	auth.RoleFaculty: "Faculty",
	auth.RoleAdmin:   "Admin",
}

// Login handles POST /api/:role-prefixed auth/login for one role.
func (h *Handler) Login(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "loginid and password are required")
			return
		}

		cred, err := h.creds.Login(c.Request.Context(), role, req.LoginID, req.Password)
		if err != nil {
			fail(c, err)
			return
		}

		tokens, err := auth.Issue(cred.ID.Hex(), role, h.jwtIssuer, h.jwtKey, h.accessTTL, h.refreshTTL)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, "Login Successfull!", gin.H{
			"loginid":      cred.LoginID,
			"id":           cred.ID.Hex(),
			"accessToken":  tokens.AccessToken,
			"refreshToken": tokens.RefreshToken,
			"expiresAt":    tokens.AccessExp.Unix(),
		})
	}
}

// Register handles credential registration for one role.
func (h *Handler) Register(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "loginid and password are required")
			return
		}

		cred, err := h.creds.Create(c.Request.Context(), role, req.LoginID, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrDuplicateLogin) {
				badRequest(c, roleLabels[role]+" With This LoginId Already Exists")
				return
			}
			fail(c, err)
			return
		}
		ok(c, "Register Successfull!", gin.H{
			"loginid": cred.LoginID,
			"id":      cred.ID.Hex(),
		})
	}
}

type passwordUpdateRequest struct {
	Password string `json:"password" binding:"required"`
}

// UpdateCredential replaces the password of one credential.
func (h *Handler) UpdateCredential(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req passwordUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "password is required")
			return
		}
		matched, err := h.creds.UpdateByID(c.Request.Context(), role, c.Param("id"), req.Password)
		if err != nil || !matched {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No " + roleLabels[role] + " Exists!"})
			return
		}
		ok(c, "Updated Successfull!", nil)
	}
}

// DeleteCredential removes one credential.
func (h *Handler) DeleteCredential(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		matched, err := h.creds.DeleteByID(c.Request.Context(), role, c.Param("id"))
		if err != nil || !matched {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No " + roleLabels[role] + " Exists!"})
			return
		}
		ok(c, "Deleted Successfull!", nil)
	}
}

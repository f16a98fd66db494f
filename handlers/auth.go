package handlers

import (
	"net/http"

	"food-delivery-admin/middleware"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
	Redirect string `json:"redirect" form:"redirect"`
}

// LoginPage describes the login screen. Authenticated operators never reach
// it; the route redirects them to the dashboard.
func (h *Handler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":  "Please log in",
		"redirect": middleware.SafeRedirect(c.Query("redirect"), "/dashboard"),
		"error":    h.Session.Error(),
	})
}

// Login authenticates the operator against the backend
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Session.Login(c.Request.Context(), req.Email, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": h.Session.Error()})
		return
	}

	target := req.Redirect
	if target == "" {
		target = c.Query("redirect")
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"user":     h.Session.User(),
		"redirect": middleware.SafeRedirect(target, "/dashboard"),
	})
}

// Logout clears the session
func (h *Handler) Logout(c *gin.Context) {
	h.Session.Logout()
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetSession returns the logged-in account and token expiry
func (h *Handler) GetSession(c *gin.Context) {
	resp := gin.H{"user": h.Session.User()}
	if exp, ok := h.Session.ExpiresAt(); ok {
		resp["expires_at"] = exp
	}
	c.JSON(http.StatusOK, resp)
}

// ClearError dismisses the last login error
func (h *Handler) ClearError(c *gin.Context) {
	h.Session.ClearError()
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"food-delivery-admin/deliveries"
	"food-delivery-admin/listing"
	"food-delivery-admin/models"
	"food-delivery-admin/orderform"

	"github.com/gin-gonic/gin"
)

// Dashboard aggregates the order list by status
func (h *Handler) Dashboard(c *gin.Context) {
	if err := h.Board.Refresh(c.Request.Context()); err != nil {
		h.respondError(c, err, "Failed to load orders")
		return
	}
	summary := deliveries.Summarize(h.Board.Orders())
	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary.Counts,
		"count":         summary.Total,
		"open":          summary.Open,
		"total_revenue": orderform.FormatMoney(summary.Revenue, h.Currency),
		"user":          h.Session.User(),
	})
}

// ── Users ───────────────────────────────────────────────────────────────────

// ListUsers returns one page of accounts, optionally filtered by role
func (h *Handler) ListUsers(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}
	users, err := h.API.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to load users")
		return
	}
	var byRole func(models.User) bool
	if q.Role != "" {
		byRole = func(u models.User) bool { return string(u.Role) == q.Role }
	}
	filtered := listing.Filter(users, q.Search, byRole)
	c.JSON(http.StatusOK, page(listing.Paginate(filtered, q.Page, listing.Entries(q.Entries)), "users"))
}

func (h *Handler) GetUser(c *gin.Context) {
	u, err := h.API.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.API.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to create user")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created", "user": u})
}

// UpdateUser edits an account. The role cannot be changed.
func (h *Handler) UpdateUser(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.API.UpdateUser(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated", "user": u})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.API.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

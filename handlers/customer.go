package handlers

import (
	"net/http"

	"food-delivery-admin/listing"
	"food-delivery-admin/models"

	"github.com/gin-gonic/gin"
)

// ListCustomers returns one page of customer accounts
func (h *Handler) ListCustomers(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}
	customers, err := h.API.ListCustomers(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to load customers")
		return
	}
	filtered := listing.Filter(customers, q.Search)
	c.JSON(http.StatusOK, page(listing.Paginate(filtered, q.Page, listing.Entries(q.Entries)), "customers"))
}

// CreateCustomer creates an account with the customer role
func (h *Handler) CreateCustomer(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.API.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to create customer")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Customer created", "customer": u})
}

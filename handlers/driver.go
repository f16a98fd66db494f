package handlers

import (
	"net/http"

	"food-delivery-admin/listing"
	"food-delivery-admin/models"

	"github.com/gin-gonic/gin"
)

// ListDrivers returns one page of drivers, optionally filtered by status
func (h *Handler) ListDrivers(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}
	drivers, err := h.API.ListDrivers(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to load drivers")
		return
	}
	var byStatus func(models.Driver) bool
	if q.Status != "" {
		byStatus = func(d models.Driver) bool { return string(d.Status) == q.Status }
	}
	filtered := listing.Filter(drivers, q.Search, byStatus)
	c.JSON(http.StatusOK, page(listing.Paginate(filtered, q.Page, listing.Entries(q.Entries)), "drivers"))
}

func (h *Handler) GetDriver(c *gin.Context) {
	d, err := h.API.GetDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to load driver")
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": d})
}

// CreateDriver forwards the driver form and optional driver_photo
func (h *Handler) CreateDriver(c *gin.Context) {
	var form models.DriverForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := form.RequireAccount(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, done, err := photo(c, "driver_photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable driver_photo"})
		return
	}
	defer done()

	d, err := h.API.CreateDriver(c.Request.Context(), form, p)
	if err != nil {
		h.respondError(c, err, "Failed to create driver")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Driver created", "driver": d})
}

func (h *Handler) UpdateDriver(c *gin.Context) {
	var form models.DriverForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, done, err := photo(c, "driver_photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable driver_photo"})
		return
	}
	defer done()

	d, err := h.API.UpdateDriver(c.Request.Context(), c.Param("id"), form, p)
	if err != nil {
		h.respondError(c, err, "Failed to update driver")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver updated", "driver": d})
}

func (h *Handler) DeleteDriver(c *gin.Context) {
	if err := h.API.DeleteDriver(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to delete driver")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver deleted"})
}

package handlers

import (
	"net/http"

	"food-delivery-admin/listing"
	"food-delivery-admin/models"

	"github.com/gin-gonic/gin"
)

// ── Restaurants ─────────────────────────────────────────────────────────────

// ListRestaurants returns one page of restaurants, optionally by status
func (h *Handler) ListRestaurants(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}
	restaurants, err := h.API.ListRestaurants(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to load restaurants")
		return
	}
	var byStatus func(models.Restaurant) bool
	if q.Status != "" {
		byStatus = func(r models.Restaurant) bool { return string(r.Status) == q.Status }
	}
	filtered := listing.Filter(restaurants, q.Search, byStatus)
	c.JSON(http.StatusOK, page(listing.Paginate(filtered, q.Page, listing.Entries(q.Entries)), "restaurants"))
}

func (h *Handler) GetRestaurant(c *gin.Context) {
	r, err := h.API.GetRestaurant(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to load restaurant")
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": r})
}

// CreateRestaurant forwards the store form, owner account included
func (h *Handler) CreateRestaurant(c *gin.Context) {
	var form models.RestaurantForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := form.RequireAccount(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, done, err := photo(c, "restaurant_photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable restaurant_photo"})
		return
	}
	defer done()

	r, err := h.API.CreateRestaurant(c.Request.Context(), form, p)
	if err != nil {
		h.respondError(c, err, "Failed to create restaurant")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant created", "restaurant": r})
}

func (h *Handler) UpdateRestaurant(c *gin.Context) {
	var form models.RestaurantForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, done, err := photo(c, "restaurant_photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable restaurant_photo"})
		return
	}
	defer done()

	r, err := h.API.UpdateRestaurant(c.Request.Context(), c.Param("id"), form, p)
	if err != nil {
		h.respondError(c, err, "Failed to update restaurant")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": r})
}

func (h *Handler) DeleteRestaurant(c *gin.Context) {
	if err := h.API.DeleteRestaurant(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to delete restaurant")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant deleted"})
}

// ── Categories ──────────────────────────────────────────────────────────────

func (h *Handler) ListCategories(c *gin.Context) {
	q, ok := bindListQuery(c)
	if !ok {
		return
	}
	cats, err := h.API.ListCategories(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to load categories")
		return
	}
	filtered := listing.Filter(cats, q.Search)
	c.JSON(http.StatusOK, page(listing.Paginate(filtered, q.Page, listing.Entries(q.Entries)), "categories"))
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req models.CategoryForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, err := h.API.CreateCategory(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": cat})
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	var req models.CategoryForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cat, err := h.API.UpdateCategory(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err, "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated", "category": cat})
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.API.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to delete category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// ── Products ────────────────────────────────────────────────────────────────

// ListProducts returns a restaurant's menu
func (h *Handler) ListProducts(c *gin.Context) {
	rid := c.Query("restaurant_id")
	if rid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "restaurant_id is required"})
		return
	}
	products, err := h.API.ListProducts(c.Request.Context(), rid)
	if err != nil {
		h.respondError(c, err, "Failed to load products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(products), "products": products})
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req models.ProductForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.API.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": p})
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var req models.ProductForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.API.UpdateProduct(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": p})
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.API.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

package handlers

import (
	"errors"
	"net/http"

	"food-delivery-admin/apiclient"
	"food-delivery-admin/orderform"

	"github.com/gin-gonic/gin"
)

func (h *Handler) formView() gin.H {
	v := h.Form.View()
	cat := h.Form.Catalog()
	return gin.H{
		"form":          v,
		"total_display": orderform.FormatMoney(v.Total, h.Currency),
		"restaurants":   cat.Restaurants(),
		"customers":     cat.Customers(),
		"drivers":       cat.Drivers(),
		"products":      cat.Products(),
	}
}

// GetOrderForm returns the order being built and its pick lists
func (h *Handler) GetOrderForm(c *gin.Context) {
	c.JSON(http.StatusOK, h.formView())
}

// LoadOrderCatalog fetches restaurants, customers and drivers. A partial
// failure is reported as a warning; whatever loaded stays usable.
func (h *Handler) LoadOrderCatalog(c *gin.Context) {
	resp := gin.H{}
	if err := h.Form.Catalog().LoadAll(c.Request.Context()); err != nil {
		h.Logger.Warn("order catalog", "rid", c.GetString("rid"), "error", err)
		resp["warning"] = apiclient.MessageOr(err, "Some lists could not be loaded")
	}
	for k, v := range h.formView() {
		resp[k] = v
	}
	c.JSON(http.StatusOK, resp)
}

type selectRestaurantRequest struct {
	RestaurantID string `json:"restaurant_id" form:"restaurant_id"`
}

// SelectOrderRestaurant loads the chosen restaurant's products
func (h *Handler) SelectOrderRestaurant(c *gin.Context) {
	var req selectRestaurantRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Form.SelectRestaurant(c.Request.Context(), req.RestaurantID); err != nil {
		h.respondError(c, err, "Failed to load products")
		return
	}
	c.JSON(http.StatusOK, h.formView())
}

// SetOrderFields replaces the header fields
func (h *Handler) SetOrderFields(c *gin.Context) {
	var f orderform.Fields
	if err := c.ShouldBind(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.Form.SetFields(f)
	c.JSON(http.StatusOK, h.formView())
}

func (h *Handler) AddOrderItem(c *gin.Context) {
	h.Form.AddItem()
	c.JSON(http.StatusCreated, h.formView())
}

func (h *Handler) RemoveOrderItem(c *gin.Context) {
	i, ok := paramIndex(c)
	if !ok {
		return
	}
	if err := h.Form.RemoveItem(i); err != nil {
		h.respondError(c, err, "Failed to remove item")
		return
	}
	c.JSON(http.StatusOK, h.formView())
}

type updateItemRequest struct {
	ProductID *string `json:"product_id"`
	Quantity  *int    `json:"quantity"`
}

// UpdateOrderItem sets a row's quantity and/or product. The quantity is
// checked first so a rejected value leaves the row as it was.
func (h *Handler) UpdateOrderItem(c *gin.Context) {
	i, ok := paramIndex(c)
	if !ok {
		return
	}
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Quantity != nil {
		if err := h.Form.SetQuantity(i, *req.Quantity); err != nil {
			h.respondError(c, err, "Invalid quantity")
			return
		}
	}
	if req.ProductID != nil {
		if err := h.Form.SetProduct(i, *req.ProductID); err != nil {
			h.respondError(c, err, "Invalid product")
			return
		}
	}
	c.JSON(http.StatusOK, h.formView())
}

// SubmitOrder validates and posts the order. The confirmed total comes from
// the backend.
func (h *Handler) SubmitOrder(c *gin.Context) {
	order, err := h.Form.Submit(c.Request.Context())
	if err != nil {
		var ve *orderform.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
			return
		}
		h.respondError(c, err, "Failed to create order")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created",
		"order":   order,
		"total":   orderform.FormatMoney(order.TotalPrice, h.Currency),
	})
}

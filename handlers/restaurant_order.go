package handlers

import (
	"net/http"

	"food-delivery-admin/deliveries"
	"food-delivery-admin/listing"
	"food-delivery-admin/models"
	"food-delivery-admin/orderform"
	"food-delivery-admin/statemachine"

	"github.com/gin-gonic/gin"
)

// ListDeliveries refetches the orders and returns one filtered page
func (h *Handler) ListDeliveries(c *gin.Context) {
	var q deliveries.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Board.Refresh(c.Request.Context()); err != nil {
		h.respondError(c, err, "Failed to load orders")
		return
	}
	resp := page(h.Board.List(q), "orders")
	resp["entry_options"] = listing.EntryOptions
	c.JSON(http.StatusOK, resp)
}

// GetDelivery returns an order with its items and the statuses it may move to
func (h *Handler) GetDelivery(c *gin.Context) {
	d, err := h.Board.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to load order")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order":             d.Order,
		"items":             d.Items,
		"total":             orderform.FormatMoney(d.Order.TotalPrice, h.Currency),
		"editable":          !statemachine.IsTerminal(d.Order.Status),
		"valid_next_states": statemachine.ValidTransitionsFrom(d.Order.Status),
	})
}

func (h *Handler) DeleteDelivery(c *gin.Context) {
	if err := h.Board.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to delete order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}

// ChangeDeliveryStatus applies a state-machine transition through the backend
func (h *Handler) ChangeDeliveryStatus(c *gin.Context) {
	var req models.StatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id := c.Param("id")
	if err := h.Board.ChangeStatus(c.Request.Context(), id, req.Status); err != nil {
		h.respondError(c, err, "Failed to update order status")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Order status updated",
		"order_id":       id,
		"current_status": req.Status,
	})
}

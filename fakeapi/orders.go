package fakeapi

import (
	"fmt"
	"net/http"

	"food-delivery-admin/models"
	"food-delivery-admin/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Server) orders() *gorm.DB {
	return s.db.Preload("Restaurant").Preload("Customer").Preload("Driver.User")
}

// createOrder stores a new order. Unit prices are snapshotted from the
// products table and the total computed here; prices sent by the client
// are ignored.
func (s *Server) createOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.CustomerID == "" || req.RestaurantID == "" || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer_id, restaurant_id and at least one item are required"})
		return
	}
	if req.DeliveryStreet == "" || req.DeliveryCity == "" || req.DeliveryZipcode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "delivery_street, delivery_city and delivery_zipcode are required"})
		return
	}
	if req.PaymentMethod != models.PaymentCash && req.PaymentMethod != models.PaymentCard {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method. Must be: cash or card"})
		return
	}

	var restaurant restaurantRecord
	if err := s.db.First(&restaurant, "id = ?", req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if restaurant.Status == string(models.RestaurantClosed) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant is currently closed"})
		return
	}
	var customer userRecord
	if err := s.db.First(&customer, "id = ? AND role = ?", req.CustomerID, models.RoleCustomer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	if req.DriverID != nil {
		var driver driverRecord
		if err := s.db.First(&driver, "id = ?", *req.DriverID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
			return
		}
	}

	// Build order items and calculate total
	items := make([]orderItemRecord, 0, len(req.Items))
	total := decimal.Zero
	for _, line := range req.Items {
		if line.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
			return
		}
		var product productRecord
		if err := s.db.First(&product, "id = ?", line.ProductID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found: " + line.ProductID})
			return
		}
		if product.RestaurantID != req.RestaurantID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not belong to this restaurant"})
			return
		}
		if !product.Available {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product '" + product.Name + "' is not available"})
			return
		}
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, orderItemRecord{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
	}

	order := orderRecord{
		RestaurantID:    req.RestaurantID,
		CustomerID:      req.CustomerID,
		DriverID:        req.DriverID,
		TotalPrice:      total,
		Status:          string(models.StatusPending),
		PaymentMethod:   string(req.PaymentMethod),
		DeliveryStreet:  req.DeliveryStreet,
		DeliveryCity:    req.DeliveryCity,
		DeliveryZipcode: req.DeliveryZipcode,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		n, err := nextValue(tx, "orders")
		if err != nil {
			return err
		}
		order.Ref = fmt.Sprintf("CMD-%05d", n)
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		return tx.Omit(clause.Associations).Create(&items).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}
	s.logger.Info("order placed", "ref", order.Ref, "total", total.StringFixed(2))

	s.orders().First(&order, "id = ?", order.ID)
	c.JSON(http.StatusCreated, order.model())
}

func (s *Server) listOrders(c *gin.Context) {
	var orders []orderRecord
	query := s.orders()
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}
	out := make([]models.DeliveryOrder, len(orders))
	for i, o := range orders {
		out[i] = o.model()
	}
	c.JSON(http.StatusOK, out)
}

// getOrder returns the order with its items and their products
func (s *Server) getOrder(c *gin.Context) {
	var order orderRecord
	if err := s.orders().Preload("Items.Product").First(&order, "id = ?", c.Param("id")).Error; err != nil {
		respondLookup(c, err, "Order")
		return
	}
	detail := models.OrderDetail{Order: order.model(), Items: make([]models.OrderItem, len(order.Items))}
	for i, it := range order.Items {
		detail.Items[i] = it.model()
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) deleteOrder(c *gin.Context) {
	id := c.Param("id")
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&orderItemRecord{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&orderRecord{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		respondLookup(c, err, "Order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}

// updateOrderStatus applies a state-machine transition
func (s *Server) updateOrderStatus(c *gin.Context) {
	var req models.StatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var order orderRecord
	if err := s.db.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		respondLookup(c, err, "Order")
		return
	}

	from := models.OrderStatus(order.Status)
	if err := statemachine.CanTransition(from, req.Status); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             err.Error(),
			"current_status":    from,
			"requested":         req.Status,
			"valid_next_states": statemachine.ValidTransitionsFrom(from),
		})
		return
	}
	if err := s.db.Model(&order).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": from,
		"current_status":  req.Status,
	})
}

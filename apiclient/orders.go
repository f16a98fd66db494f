package apiclient

import (
	"context"
	"net/http"

	"food-delivery-admin/models"
)

// CreateOrder posts a new delivery order. The returned order carries the
// backend's authoritative total_price.
func (c *Client) CreateOrder(ctx context.Context, in models.CreateOrderRequest) (*models.DeliveryOrder, error) {
	var out models.DeliveryOrder
	if err := c.doJSON(ctx, http.MethodPost, "/api/admin/orders", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]models.DeliveryOrder, error) {
	var out []models.DeliveryOrder
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetOrder returns the order with its line items.
func (c *Client) GetOrder(ctx context.Context, id string) (*models.OrderDetail, error) {
	var out models.OrderDetail
	if err := c.doJSON(ctx, http.MethodGet, "/api/admin/orders/"+escape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/admin/orders/"+escape(id), nil, nil)
}

// UpdateOrderStatus sends PATCH /api/admin/orders/:id/status. It does not
// check the transition; callers go through the status machine first.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	return c.doJSON(ctx, http.MethodPatch, "/api/admin/orders/"+escape(id)+"/status", models.StatusUpdate{Status: status}, nil)
}

// Package deliveries mirrors the backend's delivery orders for the console:
// listing, detail, deletion and status changes gated by the state machine.
package deliveries

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"food-delivery-admin/listing"
	"food-delivery-admin/models"
	"food-delivery-admin/statemachine"
)

// Backend is the subset of the API client the board uses.
type Backend interface {
	ListOrders(ctx context.Context) ([]models.DeliveryOrder, error)
	GetOrder(ctx context.Context, id string) (*models.OrderDetail, error)
	DeleteOrder(ctx context.Context, id string) error
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error
}

// Board holds the last fetched order list. It never updates an order
// locally; every confirmed mutation is followed by a refetch.
type Board struct {
	api    Backend
	logger *slog.Logger

	mu     sync.RWMutex
	orders []models.DeliveryOrder
}

func NewBoard(api Backend, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	return &Board{api: api, logger: logger}
}

// Refresh replaces the list with the backend's. On failure the previous
// list is kept.
func (b *Board) Refresh(ctx context.Context) error {
	orders, err := b.api.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	b.mu.Lock()
	b.orders = orders
	b.mu.Unlock()
	return nil
}

func (b *Board) Orders() []models.DeliveryOrder {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.orders)
}

// Query is the deliveries table state.
type Query struct {
	Search  string             `form:"search"`
	Status  models.OrderStatus `form:"status"`
	Entries int                `form:"entries"`
	Page    int                `form:"page"`
}

// List filters the mirrored orders by search text and status and returns
// the requested page.
func (b *Board) List(q Query) listing.Page[models.DeliveryOrder] {
	var byStatus func(models.DeliveryOrder) bool
	if q.Status != "" {
		byStatus = func(o models.DeliveryOrder) bool { return o.Status == q.Status }
	}
	filtered := listing.Filter(b.Orders(), q.Search, byStatus)
	return listing.Paginate(filtered, q.Page, listing.Entries(q.Entries))
}

func (b *Board) find(id string) (models.DeliveryOrder, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, o := range b.orders {
		if o.ID == id {
			return o, true
		}
	}
	return models.DeliveryOrder{}, false
}

// Get fetches one order with its items.
func (b *Board) Get(ctx context.Context, id string) (*models.OrderDetail, error) {
	d, err := b.api.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return d, nil
}

// ChangeStatus moves order id to status to. Terminal orders and undefined
// edges fail without contacting the backend. A failed PATCH leaves the list
// as it was; a confirmed one triggers a refetch.
func (b *Board) ChangeStatus(ctx context.Context, id string, to models.OrderStatus) error {
	order, ok := b.find(id)
	if !ok {
		d, err := b.Get(ctx, id)
		if err != nil {
			return err
		}
		order = d.Order
	}

	if err := statemachine.CanTransition(order.Status, to); err != nil {
		return err
	}
	if err := b.api.UpdateOrderStatus(ctx, id, to); err != nil {
		b.logger.Warn("status change failed", "order_id", id, "from", order.Status, "to", to, "error", err)
		return fmt.Errorf("update order %s: %w", id, err)
	}
	b.logger.Info("order status changed", "order_id", id, "ref", order.Ref, "from", order.Status, "to", to)

	if err := b.Refresh(ctx); err != nil {
		b.logger.Warn("refetch after status change", "error", err)
	}
	return nil
}

// Delete removes order id and refetches.
func (b *Board) Delete(ctx context.Context, id string) error {
	if err := b.api.DeleteOrder(ctx, id); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	if err := b.Refresh(ctx); err != nil {
		b.logger.Warn("refetch after delete", "error", err)
	}
	return nil
}

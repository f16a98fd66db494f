// Package orderform is the order-creation workflow: header fields, the
// line-item editor, and submission to the backend.
package orderform

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"food-delivery-admin/catalog"
	"food-delivery-admin/models"

	"github.com/shopspring/decimal"
)

// Fields are the order header inputs other than the restaurant, which is
// chosen through SelectRestaurant.
type Fields struct {
	CustomerID      string               `json:"customer_id" form:"customer_id"`
	DriverID        string               `json:"driver_id" form:"driver_id"`
	PaymentMethod   models.PaymentMethod `json:"payment_method" form:"payment_method"`
	DeliveryStreet  string               `json:"delivery_street" form:"delivery_street"`
	DeliveryCity    string               `json:"delivery_city" form:"delivery_city"`
	DeliveryZipcode string               `json:"delivery_zipcode" form:"delivery_zipcode"`
}

// Creator posts a new order. *apiclient.Client implements it.
type Creator interface {
	CreateOrder(ctx context.Context, in models.CreateOrderRequest) (*models.DeliveryOrder, error)
}

// View is a consistent copy of the form for rendering.
type View struct {
	Fields       Fields          `json:"fields"`
	RestaurantID string          `json:"restaurant_id"`
	Items        []Item          `json:"items"`
	Total        decimal.Decimal `json:"total"`
}

type submission struct {
	CustomerID      string               `json:"customer_id" validate:"required"`
	RestaurantID    string               `json:"restaurant_id" validate:"required"`
	PaymentMethod   models.PaymentMethod `json:"payment_method" validate:"required,oneof=cash card"`
	DeliveryStreet  string               `json:"delivery_street" validate:"required"`
	DeliveryCity    string               `json:"delivery_city" validate:"required"`
	DeliveryZipcode string               `json:"delivery_zipcode" validate:"required"`
	Items           []submissionItem     `json:"items" validate:"min=1,dive"`
}

type submissionItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

type Form struct {
	catalog *catalog.Loader
	orders  Creator
	logger  *slog.Logger

	mu     sync.Mutex
	fields Fields
	editor *Editor
	rev    uint64 // bumped by every accepted edit
}

func NewForm(cat *catalog.Loader, orders Creator, logger *slog.Logger) *Form {
	if logger == nil {
		logger = slog.Default()
	}
	return &Form{catalog: cat, orders: orders, logger: logger, editor: NewEditor(cat)}
}

func (f *Form) Catalog() *catalog.Loader { return f.catalog }

// SelectRestaurant loads id's products. Moving to a different restaurant
// clears the line items, since their products belong to the old one.
func (f *Form) SelectRestaurant(ctx context.Context, id string) error {
	f.mu.Lock()
	if id != f.catalog.RestaurantID() {
		f.editor.Reset()
	}
	f.rev++
	f.mu.Unlock()
	return f.catalog.SelectRestaurant(ctx, id)
}

func (f *Form) SetFields(in Fields) {
	f.mu.Lock()
	f.fields = in
	f.rev++
	f.mu.Unlock()
}

func (f *Form) AddItem() {
	f.mu.Lock()
	f.editor.AddItem()
	f.rev++
	f.mu.Unlock()
}

func (f *Form) RemoveItem(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.edited(f.editor.RemoveItem(i))
}

func (f *Form) SetProduct(i int, productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.edited(f.editor.SetProduct(i, productID))
}

func (f *Form) SetQuantity(i, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.edited(f.editor.SetQuantity(i, qty))
}

func (f *Form) edited(err error) error {
	if err == nil {
		f.rev++
	}
	return err
}

func (f *Form) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return View{
		Fields:       f.fields,
		RestaurantID: f.catalog.RestaurantID(),
		Items:        f.editor.Items(),
		Total:        f.editor.Total(),
	}
}

// request validates the form and builds the backend payload. f.mu is held.
func (f *Form) request() (models.CreateOrderRequest, error) {
	items := f.editor.Items()
	sub := submission{
		CustomerID:      f.fields.CustomerID,
		RestaurantID:    f.catalog.RestaurantID(),
		PaymentMethod:   f.fields.PaymentMethod,
		DeliveryStreet:  f.fields.DeliveryStreet,
		DeliveryCity:    f.fields.DeliveryCity,
		DeliveryZipcode: f.fields.DeliveryZipcode,
		Items:           make([]submissionItem, len(items)),
	}
	for i, it := range items {
		sub.Items[i] = submissionItem{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	if err := check(sub); err != nil {
		return models.CreateOrderRequest{}, err
	}

	req := models.CreateOrderRequest{
		CustomerID:      sub.CustomerID,
		RestaurantID:    sub.RestaurantID,
		PaymentMethod:   sub.PaymentMethod,
		DeliveryStreet:  sub.DeliveryStreet,
		DeliveryCity:    sub.DeliveryCity,
		DeliveryZipcode: sub.DeliveryZipcode,
		Items:           make([]models.OrderLine, len(items)),
	}
	if f.fields.DriverID != "" {
		id := f.fields.DriverID
		req.DriverID = &id
	}
	for i, it := range items {
		req.Items[i] = models.OrderLine{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price}
	}
	return req, nil
}

// Submit validates, posts the order and, on success, resets the form to its
// initial state. The returned order's TotalPrice comes from the backend and
// is the amount to show; View().Total is only a preview. On failure the form
// is left as it was. Edits made while the order is in flight are kept.
func (f *Form) Submit(ctx context.Context) (*models.DeliveryOrder, error) {
	f.mu.Lock()
	req, err := f.request()
	rev := f.rev
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	order, err := f.orders.CreateOrder(ctx, req)
	if err != nil {
		f.logger.Warn("create order failed", "restaurant_id", req.RestaurantID, "error", err)
		return nil, fmt.Errorf("create order: %w", err)
	}

	f.logger.Info("order created", "id", order.ID, "ref", order.Ref, "total", order.TotalPrice.StringFixed(2))

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rev != rev {
		f.logger.Info("form edited during submit, keeping edits", "id", order.ID)
		return order, nil
	}
	f.fields = Fields{}
	f.editor.Reset()
	f.catalog.Reset()
	f.rev++
	return order, nil
}

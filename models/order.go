package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents all possible states of a delivery order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusOnTheWay  OrderStatus = "on_the_way"
	StatusDelivered OrderStatus = "delivered"
	StatusCanceled  OrderStatus = "canceled"
)

// AllStatuses lists the statuses in lifecycle order.
var AllStatuses = []OrderStatus{StatusPending, StatusPreparing, StatusOnTheWay, StatusDelivered, StatusCanceled}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

type DeliveryOrder struct {
	ID              string          `json:"id"`
	Ref             string          `json:"ref"`
	Restaurant      Ref[Restaurant] `json:"restaurant_id"`
	Customer        Ref[User]       `json:"customer_id"`
	Driver          Ref[Driver]     `json:"driver_id"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Status          OrderStatus     `json:"status"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	DeliveryStreet  string          `json:"delivery_street,omitempty"`
	DeliveryCity    string          `json:"delivery_city,omitempty"`
	DeliveryZipcode string          `json:"delivery_zipcode,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (o DeliveryOrder) RecordID() string { return o.ID }

// SearchText covers ref, driver, restaurant, customer and status, the columns
// the deliveries table lets the operator search.
func (o DeliveryOrder) SearchText() string {
	parts := []string{o.Ref}
	if d := o.Driver.Value; d != nil {
		parts = append(parts, d.Name())
	}
	if r := o.Restaurant.Value; r != nil {
		parts = append(parts, r.Name)
	}
	if c := o.Customer.Value; c != nil {
		parts = append(parts, c.Firstname, c.Lastname, c.Phone)
	}
	parts = append(parts, string(o.Status))
	return strings.Join(parts, " ")
}

type OrderItem struct {
	ID       string             `json:"id"`
	Order    Ref[DeliveryOrder] `json:"order_id"`
	Product  Ref[Product]       `json:"product_id"`
	Quantity int                `json:"quantity"`
	Price    decimal.Decimal    `json:"price"` // snapshot price at time of order
}

// LineTotal is price × quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderDetail is the shape of GET /api/admin/orders/:id.
type OrderDetail struct {
	Order DeliveryOrder `json:"order"`
	Items []OrderItem   `json:"items"`
}

package models

import (
	"errors"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrAccountFieldsRequired is returned when a create form lacks the account
// part (firstname, lastname, email, password).
var ErrAccountFieldsRequired = errors.New("firstname, lastname, email and password are required")

// DriverForm is sent as multipart/form-data together with an optional
// driver_photo file.
type DriverForm struct {
	Firstname   string       `form:"firstname" json:"firstname"`
	Lastname    string       `form:"lastname" json:"lastname"`
	Email       string       `form:"email" json:"email" binding:"omitempty,email"`
	Password    string       `form:"password" json:"password"`
	Phone       string       `form:"phone" json:"phone"`
	VehicleType string       `form:"vehicle_type" json:"vehicle_type"`
	PlateNumber string       `form:"plate_number" json:"plate_number"`
	Street      string       `form:"street" json:"street"`
	City        string       `form:"city" json:"city"`
	Zipcode     string       `form:"zipcode" json:"zipcode"`
	Status      DriverStatus `form:"status" json:"status" binding:"omitempty,oneof=available on_delivery offline"`
}

func (f DriverForm) RequireAccount() error {
	return requireAccount(f.Firstname, f.Lastname, f.Email, f.Password)
}

func (f DriverForm) Values() url.Values {
	return url.Values{
		"firstname":    {f.Firstname},
		"lastname":     {f.Lastname},
		"email":        {f.Email},
		"password":     {f.Password},
		"phone":        {f.Phone},
		"vehicle_type": {f.VehicleType},
		"plate_number": {f.PlateNumber},
		"street":       {f.Street},
		"city":         {f.City},
		"zipcode":      {f.Zipcode},
		"status":       {string(f.Status)},
	}
}

// RestaurantForm creates the store and its owner account in one request,
// with an optional restaurant_photo file.
type RestaurantForm struct {
	Firstname  string           `form:"firstname" json:"firstname"`
	Lastname   string           `form:"lastname" json:"lastname"`
	Email      string           `form:"email" json:"email" binding:"omitempty,email"`
	Password   string           `form:"password" json:"password"`
	Phone      string           `form:"phone" json:"phone"`
	Name       string           `form:"name" json:"name"`
	Street     string           `form:"street" json:"street"`
	City       string           `form:"city" json:"city"`
	Zipcode    string           `form:"zipcode" json:"zipcode"`
	CategoryID string           `form:"category_id" json:"category_id"`
	Status     RestaurantStatus `form:"status" json:"status" binding:"omitempty,oneof=active closed"`
}

func (f RestaurantForm) RequireAccount() error {
	if err := requireAccount(f.Firstname, f.Lastname, f.Email, f.Password); err != nil {
		return err
	}
	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.CategoryID) == "" {
		return errors.New("name and category_id are required")
	}
	return nil
}

func (f RestaurantForm) Values() url.Values {
	return url.Values{
		"firstname":   {f.Firstname},
		"lastname":    {f.Lastname},
		"email":       {f.Email},
		"password":    {f.Password},
		"phone":       {f.Phone},
		"name":        {f.Name},
		"street":      {f.Street},
		"city":        {f.City},
		"zipcode":     {f.Zipcode},
		"category_id": {f.CategoryID},
		"status":      {string(f.Status)},
	}
}

func requireAccount(fields ...string) error {
	for _, v := range fields {
		if strings.TrimSpace(v) == "" {
			return ErrAccountFieldsRequired
		}
	}
	return nil
}

// ProductForm is the JSON body for product create/update.
type ProductForm struct {
	RestaurantID string          `json:"restaurant_id" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Available    bool            `json:"available"`
}

type CategoryForm struct {
	Name string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// OrderLine is one item of the create-order payload.
type OrderLine struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// CreateOrderRequest is the body of POST /api/admin/orders. DriverID is
// encoded as null when no driver is attached.
type CreateOrderRequest struct {
	CustomerID      string        `json:"customer_id"`
	RestaurantID    string        `json:"restaurant_id"`
	DriverID        *string       `json:"driver_id"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	DeliveryStreet  string        `json:"delivery_street"`
	DeliveryCity    string        `json:"delivery_city"`
	DeliveryZipcode string        `json:"delivery_zipcode"`
	Items           []OrderLine   `json:"items"`
}

type StatusUpdate struct {
	Status OrderStatus `json:"status" binding:"required"`
}

package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend speaks JSON numbers for money.
	decimal.MarshalJSONWithoutQuotes = true
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (c Category) RecordID() string { return c.ID }

func (c Category) SearchText() string { return c.Name }

type RestaurantStatus string

const (
	RestaurantActive RestaurantStatus = "active"
	RestaurantClosed RestaurantStatus = "closed"
)

type Restaurant struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Category Ref[Category]    `json:"category_id"`
	Email    string           `json:"email,omitempty"`
	Phone    string           `json:"phone,omitempty"`
	Street   string           `json:"street,omitempty"`
	City     string           `json:"city,omitempty"`
	Zipcode  string           `json:"zipcode,omitempty"`
	Status   RestaurantStatus `json:"status"`
	Photo    string           `json:"restaurant_photo,omitempty"`
	Owner    Ref[User]        `json:"user_id"`
}

func (r Restaurant) RecordID() string { return r.ID }

func (r Restaurant) SearchText() string {
	parts := []string{r.Name, r.Email, r.Phone, r.City, string(r.Status)}
	if r.Category.Value != nil {
		parts = append(parts, r.Category.Value.Name)
	}
	return strings.Join(parts, " ")
}

type Product struct {
	ID          string          `json:"id"`
	Restaurant  Ref[Restaurant] `json:"restaurant_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Available   bool            `json:"available"`
	Photo       string          `json:"product_photo,omitempty"`
}

func (p Product) RecordID() string { return p.ID }

package fakeapi

import (
	"time"

	"food-delivery-admin/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Model carries the id and timestamps shared by every table.
type Model struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b *Model) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

type userRecord struct {
	Model
	Firstname    string
	Lastname     string
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Phone        string
	Role         string
	IsAdmin      bool
}

func (userRecord) TableName() string { return "users" }

func (u userRecord) model() models.User {
	return models.User{
		ID:        u.ID,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      models.UserRole(u.Role),
	}
}

type categoryRecord struct {
	Model
	Name string `gorm:"not null"`
}

func (categoryRecord) TableName() string { return "categories" }

func (c categoryRecord) model() models.Category {
	return models.Category{ID: c.ID, Name: c.Name}
}

type restaurantRecord struct {
	Model
	Name       string `gorm:"not null"`
	CategoryID string
	Category   categoryRecord
	OwnerID    string
	Owner      userRecord
	Street     string
	City       string
	Zipcode    string
	Status     string
	Photo      string
}

func (restaurantRecord) TableName() string { return "restaurants" }

func (r restaurantRecord) model() models.Restaurant {
	m := models.Restaurant{
		ID:       r.ID,
		Name:     r.Name,
		Category: models.RefTo[models.Category](r.CategoryID),
		Street:   r.Street,
		City:     r.City,
		Zipcode:  r.Zipcode,
		Status:   models.RestaurantStatus(r.Status),
		Photo:    r.Photo,
		Owner:    models.RefTo[models.User](r.OwnerID),
	}
	if r.Category.ID != "" {
		m.Category = models.Populated(r.Category.model())
	}
	if r.Owner.ID != "" {
		m.Owner = models.Populated(r.Owner.model())
		m.Email, m.Phone = r.Owner.Email, r.Owner.Phone
	}
	return m
}

type productRecord struct {
	Model
	RestaurantID string          `gorm:"index;not null"`
	Name         string          `gorm:"not null"`
	Description  string
	Price        decimal.Decimal `gorm:"type:text"`
	Available    bool
	Photo        string
}

func (productRecord) TableName() string { return "products" }

func (p productRecord) model() models.Product {
	return models.Product{
		ID:          p.ID,
		Restaurant:  models.RefTo[models.Restaurant](p.RestaurantID),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Available:   p.Available,
		Photo:       p.Photo,
	}
}

type driverRecord struct {
	Model
	UserID      string
	User        userRecord
	VehicleType string
	PlateNumber string
	Status      string
	CurrentLat  *float64
	CurrentLng  *float64
	Photo       string
}

func (driverRecord) TableName() string { return "drivers" }

func (d driverRecord) model() models.Driver {
	m := models.Driver{
		ID:          d.ID,
		User:        models.RefTo[models.User](d.UserID),
		VehicleType: d.VehicleType,
		PlateNumber: d.PlateNumber,
		Status:      models.DriverStatus(d.Status),
		CurrentLat:  d.CurrentLat,
		CurrentLng:  d.CurrentLng,
		Photo:       d.Photo,
	}
	if d.User.ID != "" {
		m.User = models.Populated(d.User.model())
	}
	return m
}

type orderRecord struct {
	Model
	Ref             string `gorm:"uniqueIndex"`
	RestaurantID    string
	Restaurant      restaurantRecord
	CustomerID      string
	Customer        userRecord
	DriverID        *string
	Driver          *driverRecord
	TotalPrice      decimal.Decimal `gorm:"type:text"`
	Status          string
	PaymentMethod   string
	DeliveryStreet  string
	DeliveryCity    string
	DeliveryZipcode string
	Items           []orderItemRecord `gorm:"foreignKey:OrderID"`
}

func (orderRecord) TableName() string { return "orders" }

func (o orderRecord) model() models.DeliveryOrder {
	m := models.DeliveryOrder{
		ID:              o.ID,
		Ref:             o.Ref,
		Restaurant:      models.RefTo[models.Restaurant](o.RestaurantID),
		Customer:        models.RefTo[models.User](o.CustomerID),
		TotalPrice:      o.TotalPrice,
		Status:          models.OrderStatus(o.Status),
		PaymentMethod:   models.PaymentMethod(o.PaymentMethod),
		DeliveryStreet:  o.DeliveryStreet,
		DeliveryCity:    o.DeliveryCity,
		DeliveryZipcode: o.DeliveryZipcode,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	if o.Restaurant.ID != "" {
		m.Restaurant = models.Populated(o.Restaurant.model())
	}
	if o.Customer.ID != "" {
		m.Customer = models.Populated(o.Customer.model())
	}
	if o.Driver != nil && o.Driver.ID != "" {
		m.Driver = models.Populated(o.Driver.model())
	} else if o.DriverID != nil {
		m.Driver = models.RefTo[models.Driver](*o.DriverID)
	}
	return m
}

type orderItemRecord struct {
	Model
	OrderID   string `gorm:"index;not null"`
	ProductID string
	Product   productRecord
	Quantity  int
	Price     decimal.Decimal `gorm:"type:text"` // snapshot price at time of order
}

func (orderItemRecord) TableName() string { return "order_items" }

func (i orderItemRecord) model() models.OrderItem {
	m := models.OrderItem{
		ID:       i.ID,
		Order:    models.RefTo[models.DeliveryOrder](i.OrderID),
		Product:  models.RefTo[models.Product](i.ProductID),
		Quantity: i.Quantity,
		Price:    i.Price,
	}
	if i.Product.ID != "" {
		m.Product = models.Populated(i.Product.model())
	}
	return m
}

// sequenceRecord is a named counter that only moves forward, so numbers
// handed out stay unique after deletes.
type sequenceRecord struct {
	Name  string `gorm:"primaryKey"`
	Value int64
}

func (sequenceRecord) TableName() string { return "sequences" }

// nextValue increments the named counter inside tx and returns its new value.
func nextValue(tx *gorm.DB, name string) (int64, error) {
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]any{"value": gorm.Expr("value + 1")}),
	}).Create(&sequenceRecord{Name: name, Value: 1}).Error
	if err != nil {
		return 0, err
	}
	var seq sequenceRecord
	if err := tx.First(&seq, "name = ?", name).Error; err != nil {
		return 0, err
	}
	return seq.Value, nil
}

func tables() []any {
	return []any{
		&userRecord{}, &categoryRecord{}, &restaurantRecord{}, &productRecord{},
		&driverRecord{}, &orderRecord{}, &orderItemRecord{}, &sequenceRecord{},
	}
}

package fakeapi

import (
	"fmt"

	"food-delivery-admin/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Demo holds the ids created by SeedDemo.
type Demo struct {
	CategoryID   string
	RestaurantID string
	ProductIDs   []string
	CustomerID   string
	DriverID     string
}

// SeedDemo fills an empty database with one restaurant, its menu, a
// customer and a driver.
func (s *Server) SeedDemo() (Demo, error) {
	var d Demo
	err := s.db.Transaction(func(tx *gorm.DB) error {
		cat := categoryRecord{Name: "Pizza"}
		if err := tx.Create(&cat).Error; err != nil {
			return err
		}
		owner, _, err := s.insertUser(tx, models.CreateUserRequest{
			Firstname: "Hedi", Lastname: "Trabelsi", Email: "hedi@pizzeria.tn",
			Password: "restaurant123", Phone: "+216 71 000 001", Role: models.RoleRestaurant,
		})
		if err != nil {
			return err
		}
		r := restaurantRecord{
			Name: "Pizzeria Carthage", CategoryID: cat.ID, OwnerID: owner.ID,
			Street: "5 Avenue Habib Bourguiba", City: "Tunis", Zipcode: "1000",
			Status: string(models.RestaurantActive),
		}
		if err := tx.Omit(clause.Associations).Create(&r).Error; err != nil {
			return err
		}
		menu := []productRecord{
			{RestaurantID: r.ID, Name: "Margherita", Price: decimal.NewFromInt(10), Available: true},
			{RestaurantID: r.ID, Name: "Tiramisu", Price: decimal.NewFromInt(5), Available: true},
		}
		if err := tx.Create(&menu).Error; err != nil {
			return err
		}
		customer, _, err := s.insertUser(tx, models.CreateUserRequest{
			Firstname: "Mouna", Lastname: "Jlassi", Email: "mouna@example.tn",
			Password: "customer123", Phone: "+216 22 000 002", Role: models.RoleCustomer,
		})
		if err != nil {
			return err
		}
		du, _, err := s.insertUser(tx, models.CreateUserRequest{
			Firstname: "Karim", Lastname: "Ayari", Email: "karim@example.tn",
			Password: "driver123", Phone: "+216 98 000 003", Role: models.RoleDriver,
		})
		if err != nil {
			return err
		}
		drv := driverRecord{UserID: du.ID, VehicleType: "scooter", PlateNumber: "123 TU 4567", Status: string(models.DriverAvailable)}
		if err := tx.Omit(clause.Associations).Create(&drv).Error; err != nil {
			return err
		}

		d = Demo{
			CategoryID:   cat.ID,
			RestaurantID: r.ID,
			ProductIDs:   []string{menu[0].ID, menu[1].ID},
			CustomerID:   customer.ID,
			DriverID:     drv.ID,
		}
		return nil
	})
	if err != nil {
		return Demo{}, fmt.Errorf("seed demo data: %w", err)
	}
	return d, nil
}

package models

import "strings"

type DriverStatus string

const (
	DriverAvailable  DriverStatus = "available"
	DriverOnDelivery DriverStatus = "on_delivery"
	DriverOffline    DriverStatus = "offline"
)

type Driver struct {
	ID          string       `json:"id"`
	User        Ref[User]    `json:"user_id"`
	VehicleType string       `json:"vehicle_type,omitempty"`
	PlateNumber string       `json:"plate_number,omitempty"`
	Status      DriverStatus `json:"status"`
	CurrentLat  *float64     `json:"current_lat,omitempty"`
	CurrentLng  *float64     `json:"current_lng,omitempty"`
	Photo       string       `json:"driver_photo,omitempty"`
}

func (d Driver) RecordID() string { return d.ID }

// Name is the display name of the driver's account, if it was populated.
func (d Driver) Name() string {
	if d.User.Value == nil {
		return ""
	}
	return d.User.Value.FullName()
}

func (d Driver) SearchText() string {
	return strings.Join([]string{d.Name(), d.VehicleType, d.PlateNumber, string(d.Status)}, " ")
}

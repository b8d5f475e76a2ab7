package domain

import "time"

// VehicleStatus represents fleet states.
type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusRented      VehicleStatus = "RENTED"
	VehicleStatusMaintenance VehicleStatus = "MAINTENANCE"
	VehicleStatusRetired     VehicleStatus = "RETIRED"
)

// Vehicle models an electric vehicle in the rental fleet.
type Vehicle struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Model        string        `json:"model"`
	LicensePlate string        `json:"licensePlate"`
	StationID    string        `json:"stationId"`
	Status       VehicleStatus `json:"status"`
	BatteryLevel int           `json:"batteryLevel"`
	PricePerDay  float64       `json:"pricePerDay"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

package domain

import "time"

// RentalStatus represents rental lifecycle states, server-owned.
type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
)

// Rental is the console-facing shape of a rental contract.
type Rental struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	VehicleID   string       `json:"vehicleId"`
	StationID   string       `json:"stationId"`
	Status      RentalStatus `json:"status"`
	StartTime   time.Time    `json:"startTime"`
	EndTime     *time.Time   `json:"endTime,omitempty"`
	TotalAmount float64      `json:"totalAmount"`
}

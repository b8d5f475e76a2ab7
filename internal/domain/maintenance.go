package domain

import "time"

// MaintenanceStatus tracks a maintenance ticket on a vehicle.
type MaintenanceStatus string

const (
	MaintenanceStatusOpen       MaintenanceStatus = "OPEN"
	MaintenanceStatusInProgress MaintenanceStatus = "IN_PROGRESS"
	MaintenanceStatusCompleted  MaintenanceStatus = "COMPLETED"
)

// MaintenanceRecord is a vehicle service record, server-owned.
type MaintenanceRecord struct {
	ID          string            `json:"id"`
	VehicleID   string            `json:"vehicleId"`
	Description string            `json:"description"`
	Status      MaintenanceStatus `json:"status"`
	Cost        float64           `json:"cost"`
	ReportedBy  string            `json:"reportedBy"`
	CreatedAt   time.Time         `json:"createdAt"`
	CompletedAt *time.Time        `json:"completedAt,omitempty"`
}

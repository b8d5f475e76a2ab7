package dto

import (
	"strings"

	"github.com/spec-kit/ev-admin-gateway/internal/domain"
	"github.com/spec-kit/ev-admin-gateway/internal/platform"
	"github.com/spec-kit/ev-admin-gateway/pkg/apierr"
)

// VehicleRequest payload for creating or updating a fleet vehicle.
type VehicleRequest struct {
	Name         string  `json:"name"`
	Model        string  `json:"model"`
	LicensePlate string  `json:"licensePlate"`
	StationID    string  `json:"stationId"`
	PricePerDay  float64 `json:"pricePerDay"`
}

// Validate applies the form rules.
func (r VehicleRequest) Validate() error {
	details := map[string]any{}
	if strings.TrimSpace(r.Name) == "" {
		details["name"] = "required"
	}
	if strings.TrimSpace(r.LicensePlate) == "" {
		details["licensePlate"] = "required"
	}
	if strings.TrimSpace(r.StationID) == "" {
		details["stationId"] = "required"
	}
	if r.PricePerDay < 0 {
		details["pricePerDay"] = "must not be negative"
	}
	if len(details) > 0 {
		return apierr.NewValidation("invalid vehicle details", details)
	}
	return nil
}

// ToInput converts the validated request to the backend payload.
func (r VehicleRequest) ToInput() platform.VehicleInput {
	return platform.VehicleInput{
		Name:         strings.TrimSpace(r.Name),
		Model:        strings.TrimSpace(r.Model),
		LicensePlate: strings.TrimSpace(r.LicensePlate),
		StationID:    strings.TrimSpace(r.StationID),
		PricePerDay:  r.PricePerDay,
	}
}

// UpdateVehicleStatusRequest payload for PATCH status.
type UpdateVehicleStatusRequest struct {
	Status domain.VehicleStatus `json:"status"`
}

// MaintenanceRequest payload for reporting a maintenance issue.
type MaintenanceRequest struct {
	VehicleID   string `json:"vehicleId"`
	Description string `json:"description"`
}

// CompleteMaintenanceRequest payload for closing a maintenance record.
type CompleteMaintenanceRequest struct {
	Cost float64 `json:"cost"`
}

// ChatRequest payload for the chatbot proxy.
type ChatRequest struct {
	Question string `json:"question"`
}

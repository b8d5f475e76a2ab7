package platform

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/spec-kit/ev-admin-gateway/internal/domain"
)

// VehiclesClient wraps the backend's fleet endpoints.
type VehiclesClient struct {
	core *Client
}

// NewVehiclesClient builds the vehicles resource client.
func NewVehiclesClient(core *Client) *VehiclesClient {
	return &VehiclesClient{core: core}
}

// VehicleInput is the create/update body for a fleet vehicle.
type VehicleInput struct {
	Name         string  `json:"name"`
	Model        string  `json:"model"`
	LicensePlate string  `json:"licensePlate"`
	StationID    string  `json:"stationId"`
	PricePerDay  float64 `json:"pricePerDay"`
}

// ListVehiclesParams filters GET /api/vehicles.
type ListVehiclesParams struct {
	StationID string
	Status    domain.VehicleStatus
	Search    string
	Limit     int
	Page      int
}

// List fetches the fleet with optional filters.
func (v *VehiclesClient) List(ctx context.Context, params ListVehiclesParams) ([]domain.Vehicle, error) {
	query := url.Values{}
	if params.StationID != "" {
		query.Set("stationId", params.StationID)
	}
	if params.Status != "" {
		query.Set("status", string(params.Status))
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}

	var vehicles []domain.Vehicle
	if err := v.core.get(ctx, "vehicles", "/api/vehicles", query, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// Get fetches one vehicle.
func (v *VehiclesClient) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	if err := v.core.get(ctx, "vehicles", fmt.Sprintf("/api/vehicles/%s", id), nil, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// Create registers a new vehicle.
func (v *VehiclesClient) Create(ctx context.Context, input VehicleInput) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	if err := v.core.do(ctx, "vehicles", "POST", "/api/vehicles", nil, input, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// Update replaces a vehicle's mutable fields.
func (v *VehiclesClient) Update(ctx context.Context, id string, input VehicleInput) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	if err := v.core.do(ctx, "vehicles", "PUT", fmt.Sprintf("/api/vehicles/%s", id), nil, input, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// UpdateStatus patches a vehicle's fleet status.
func (v *VehiclesClient) UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	body := map[string]any{"status": status}
	if err := v.core.do(ctx, "vehicles", "PATCH", fmt.Sprintf("/api/vehicles/%s/status", id), nil, body, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// Delete removes a vehicle from the fleet.
func (v *VehiclesClient) Delete(ctx context.Context, id string) error {
	return v.core.do(ctx, "vehicles", "DELETE", fmt.Sprintf("/api/vehicles/%s", id), nil, nil, nil)
}

package platform

import (
	"context"
	"fmt"
	"net/url"

	"github.com/spec-kit/ev-admin-gateway/internal/domain"
)

// MaintenanceClient wraps the backend's vehicle maintenance endpoints.
type MaintenanceClient struct {
	core *Client
}

// NewMaintenanceClient builds the maintenance resource client.
func NewMaintenanceClient(core *Client) *MaintenanceClient {
	return &MaintenanceClient{core: core}
}

// MaintenanceInput is the body for reporting a maintenance issue.
type MaintenanceInput struct {
	VehicleID   string `json:"vehicleId"`
	Description string `json:"description"`
}

// List fetches maintenance records, optionally for one vehicle.
func (m *MaintenanceClient) List(ctx context.Context, vehicleID string) ([]domain.MaintenanceRecord, error) {
	query := url.Values{}
	if vehicleID != "" {
		query.Set("vehicleId", vehicleID)
	}
	var records []domain.MaintenanceRecord
	if err := m.core.get(ctx, "maintenance", "/api/maintenance", query, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Create reports a new maintenance issue.
func (m *MaintenanceClient) Create(ctx context.Context, input MaintenanceInput) (*domain.MaintenanceRecord, error) {
	var record domain.MaintenanceRecord
	if err := m.core.do(ctx, "maintenance", "POST", "/api/maintenance", nil, input, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Complete marks a maintenance record as done with its final cost.
func (m *MaintenanceClient) Complete(ctx context.Context, id string, cost float64) (*domain.MaintenanceRecord, error) {
	var record domain.MaintenanceRecord
	body := map[string]any{"cost": cost}
	if err := m.core.do(ctx, "maintenance", "POST", fmt.Sprintf("/api/maintenance/%s/complete", id), nil, body, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

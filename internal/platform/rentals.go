package platform

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/spec-kit/ev-admin-gateway/internal/domain"
)

// RentalsClient wraps the backend's rental endpoints.
type RentalsClient struct {
	core *Client
}

// NewRentalsClient builds the rentals resource client.
func NewRentalsClient(core *Client) *RentalsClient {
	return &RentalsClient{core: core}
}

// ListRentalsParams filters GET /api/rentals.
type ListRentalsParams struct {
	UserID    string
	VehicleID string
	Status    domain.RentalStatus
	Limit     int
	Page      int
}

// List fetches rentals with optional filters.
func (r *RentalsClient) List(ctx context.Context, params ListRentalsParams) ([]domain.Rental, error) {
	query := url.Values{}
	if params.UserID != "" {
		query.Set("userId", params.UserID)
	}
	if params.VehicleID != "" {
		query.Set("vehicleId", params.VehicleID)
	}
	if params.Status != "" {
		query.Set("status", string(params.Status))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}

	var rentals []domain.Rental
	if err := r.core.get(ctx, "rentals", "/api/rentals", query, &rentals); err != nil {
		return nil, err
	}
	return rentals, nil
}

// Get fetches one rental.
func (r *RentalsClient) Get(ctx context.Context, id string) (*domain.Rental, error) {
	var rental domain.Rental
	if err := r.core.get(ctx, "rentals", fmt.Sprintf("/api/rentals/%s", id), nil, &rental); err != nil {
		return nil, err
	}
	return &rental, nil
}

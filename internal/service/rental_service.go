package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ev-admin-gateway/internal/domain"
	"github.com/spec-kit/ev-admin-gateway/internal/platform"
)

// RentalLedger covers the rental endpoints.
type RentalLedger interface {
	List(ctx context.Context, params platform.ListRentalsParams) ([]domain.Rental, error)
	Get(ctx context.Context, id string) (*domain.Rental, error)
}

// RentalService is a thin read proxy over the rental ledger.
type RentalService struct {
	ledger RentalLedger
	logger *zap.Logger
}

// NewRentalService constructs the service.
func NewRentalService(ledger RentalLedger, logger *zap.Logger) *RentalService {
	return &RentalService{ledger: ledger, logger: logger}
}

// List fetches rentals with filters.
func (s *RentalService) List(ctx context.Context, params platform.ListRentalsParams) ([]domain.Rental, error) {
	return s.ledger.List(ctx, params)
}

// Get fetches one rental.
func (s *RentalService) Get(ctx context.Context, id string) (*domain.Rental, error) {
	return s.ledger.Get(ctx, id)
}

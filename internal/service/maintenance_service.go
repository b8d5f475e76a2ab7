package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ev-admin-gateway/internal/domain"
	"github.com/spec-kit/ev-admin-gateway/internal/platform"
)

// MaintenanceLog covers the maintenance endpoints.
type MaintenanceLog interface {
	List(ctx context.Context, vehicleID string) ([]domain.MaintenanceRecord, error)
	Create(ctx context.Context, input platform.MaintenanceInput) (*domain.MaintenanceRecord, error)
	Complete(ctx context.Context, id string, cost float64) (*domain.MaintenanceRecord, error)
}

// MaintenanceService proxies maintenance reads and reports.
type MaintenanceService struct {
	log    MaintenanceLog
	cache  Cache
	logger *zap.Logger
}

// NewMaintenanceService constructs the service.
func NewMaintenanceService(log MaintenanceLog, cache Cache, logger *zap.Logger) *MaintenanceService {
	return &MaintenanceService{log: log, cache: cache, logger: logger}
}

// List fetches maintenance records, optionally for one vehicle.
func (s *MaintenanceService) List(ctx context.Context, vehicleID string) ([]domain.MaintenanceRecord, error) {
	return s.log.List(ctx, vehicleID)
}

// Report files a new maintenance issue. A vehicle entering maintenance
// changes fleet status upstream, so the vehicle list cache is invalidated.
func (s *MaintenanceService) Report(ctx context.Context, input platform.MaintenanceInput) (*domain.MaintenanceRecord, error) {
	record, err := s.log.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cacheNamespaceVehicles)
	}
	return record, nil
}

// Complete closes a maintenance record.
func (s *MaintenanceService) Complete(ctx context.Context, id string, cost float64) (*domain.MaintenanceRecord, error) {
	record, err := s.log.Complete(ctx, id, cost)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, cacheNamespaceVehicles)
	}
	return record, nil
}

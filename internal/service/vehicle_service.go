package service

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ev-admin-gateway/internal/domain"
	"github.com/spec-kit/ev-admin-gateway/internal/events"
	"github.com/spec-kit/ev-admin-gateway/internal/platform"
)

// Fleet covers the vehicle endpoints.
type Fleet interface {
	List(ctx context.Context, params platform.ListVehiclesParams) ([]domain.Vehicle, error)
	Get(ctx context.Context, id string) (*domain.Vehicle, error)
	Create(ctx context.Context, input platform.VehicleInput) (*domain.Vehicle, error)
	Update(ctx context.Context, id string, input platform.VehicleInput) (*domain.Vehicle, error)
	UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) (*domain.Vehicle, error)
	Delete(ctx context.Context, id string) error
}

const (
	cacheNamespaceVehicles = "vehicles"
	vehicleListCacheTTL    = 30 * time.Second
)

// VehicleService proxies fleet CRUD to the backend with list caching.
type VehicleService struct {
	fleet      Fleet
	cache      Cache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewVehicleService constructs the service.
func NewVehicleService(fleet Fleet, cache Cache, dispatcher events.Dispatcher, logger *zap.Logger) *VehicleService {
	return &VehicleService{fleet: fleet, cache: cache, dispatcher: dispatcher, logger: logger}
}

// List fetches vehicles, serving repeat queries from cache.
func (s *VehicleService) List(ctx context.Context, params platform.ListVehiclesParams) ([]domain.Vehicle, error) {
	key := vehicleListCacheKey(params)

	var cached []domain.Vehicle
	if s.cache != nil && s.cache.GetJSON(ctx, cacheNamespaceVehicles, key, &cached) {
		return cached, nil
	}

	vehicles, err := s.fleet.List(ctx, params)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetJSON(ctx, cacheNamespaceVehicles, key, vehicles, vehicleListCacheTTL)
	}
	return vehicles, nil
}

// Get fetches one vehicle.
func (s *VehicleService) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	return s.fleet.Get(ctx, id)
}

// Create registers a vehicle and invalidates the list cache.
func (s *VehicleService) Create(ctx context.Context, actorID string, input platform.VehicleInput) (*domain.Vehicle, error) {
	vehicle, err := s.fleet.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.publish(ctx, events.EventVehicleCreated, actorID, vehicle.ID, vehicle.LicensePlate, vehicle.Status)
	return vehicle, nil
}

// Update replaces a vehicle's mutable fields.
func (s *VehicleService) Update(ctx context.Context, actorID, id string, input platform.VehicleInput) (*domain.Vehicle, error) {
	vehicle, err := s.fleet.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.publish(ctx, events.EventVehicleUpdated, actorID, vehicle.ID, vehicle.LicensePlate, vehicle.Status)
	return vehicle, nil
}

// UpdateStatus patches fleet status.
func (s *VehicleService) UpdateStatus(ctx context.Context, actorID, id string, status domain.VehicleStatus) (*domain.Vehicle, error) {
	vehicle, err := s.fleet.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.publish(ctx, events.EventVehicleUpdated, actorID, vehicle.ID, vehicle.LicensePlate, vehicle.Status)
	return vehicle, nil
}

// Delete removes a vehicle.
func (s *VehicleService) Delete(ctx context.Context, actorID, id string) error {
	if err := s.fleet.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.publish(ctx, events.EventVehicleDeleted, actorID, id, "", "")
	return nil
}

func (s *VehicleService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, cacheNamespaceVehicles)
	}
}

func (s *VehicleService) publish(ctx context.Context, eventType events.EventType, actorID, subjectID, plate string, status domain.VehicleStatus) {
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload: events.VehicleChangedPayload{
			LicensePlate: plate,
			Status:       status,
		},
	})
}

func vehicleListCacheKey(params platform.ListVehiclesParams) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s|%s|%s|%d|%d", params.StationID, params.Status, params.Search, params.Limit, params.Page)))
	return "list:" + hex.EncodeToString(sum[:8])
}

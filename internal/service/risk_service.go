package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ev-admin-gateway/internal/domain"
	"github.com/spec-kit/ev-admin-gateway/internal/events"
	"github.com/spec-kit/ev-admin-gateway/internal/platform"
)

// RiskDirectory covers the risk-profile endpoints.
type RiskDirectory interface {
	RiskyCustomers(ctx context.Context) ([]domain.RiskProfile, error)
	RiskyCustomer(ctx context.Context, id string) (*domain.RiskProfile, error)
	ResetRiskScore(ctx context.Context, id, reason string) (*domain.RiskProfile, error)
	AddViolation(ctx context.Context, id string, input platform.ViolationInput) (*domain.RiskProfile, error)
}

// RiskService reads and mutates server-computed risk profiles. Scores are
// never computed here; the backend owns the scoring model.
type RiskService struct {
	directory  RiskDirectory
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewRiskService constructs the service.
func NewRiskService(directory RiskDirectory, dispatcher events.Dispatcher, logger *zap.Logger) *RiskService {
	return &RiskService{directory: directory, dispatcher: dispatcher, logger: logger}
}

// RiskyCustomers lists flagged customers.
func (s *RiskService) RiskyCustomers(ctx context.Context) ([]domain.RiskProfile, error) {
	return s.directory.RiskyCustomers(ctx)
}

// RiskyCustomer fetches one risk profile.
func (s *RiskService) RiskyCustomer(ctx context.Context, id string) (*domain.RiskProfile, error) {
	return s.directory.RiskyCustomer(ctx, id)
}

// ResetRiskScore triggers a backend reset and publishes the action.
func (s *RiskService) ResetRiskScore(ctx context.Context, actorID, id, reason string) (*domain.RiskProfile, error) {
	before, err := s.directory.RiskyCustomer(ctx, id)
	previousScore := 0
	if err == nil && before != nil {
		previousScore = before.RiskScore
	}

	profile, err := s.directory.ResetRiskScore(ctx, id, reason)
	if err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventRiskScoreReset,
		SubjectID: id,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload: events.RiskScoreResetPayload{
			Reason:        reason,
			PreviousScore: previousScore,
		},
	})
	return profile, nil
}

// AddViolation records a violation and publishes the action.
func (s *RiskService) AddViolation(ctx context.Context, actorID, id string, input platform.ViolationInput) (*domain.RiskProfile, error) {
	profile, err := s.directory.AddViolation(ctx, id, input)
	if err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventViolationAdded,
		SubjectID: id,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload: events.ViolationAddedPayload{
			Type:   input.Type,
			Points: input.Points,
		},
	})
	return profile, nil
}

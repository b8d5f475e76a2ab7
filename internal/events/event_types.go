package events

import (
	"time"

	"github.com/spec-kit/ev-admin-gateway/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventStaffCreated    EventType = "staff_created"
	EventStaffReconciled EventType = "staff_reconciled"
	EventRiskScoreReset  EventType = "risk_score_reset"
	EventViolationAdded  EventType = "violation_added"
	EventVehicleCreated  EventType = "vehicle_created"
	EventVehicleUpdated  EventType = "vehicle_updated"
	EventVehicleDeleted  EventType = "vehicle_deleted"
)

// Event represents an admin action emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// StaffCreatedPayload payload.
type StaffCreatedPayload struct {
	Email    string      `json:"email"`
	FullName string      `json:"fullname"`
	Role     domain.Role `json:"role"`
	// Reconciled is true when the account was confirmed by the
	// post-failure verification read rather than the original response.
	Reconciled bool `json:"reconciled"`
}

// RiskScoreResetPayload payload.
type RiskScoreResetPayload struct {
	Reason        string `json:"reason"`
	PreviousScore int    `json:"previous_score"`
}

// ViolationAddedPayload payload.
type ViolationAddedPayload struct {
	Type   string `json:"type"`
	Points int    `json:"points"`
}

// VehicleChangedPayload payload for vehicle create/update/delete.
type VehicleChangedPayload struct {
	LicensePlate string               `json:"license_plate"`
	Status       domain.VehicleStatus `json:"status,omitempty"`
}

package dto

import "github.com/spec-kit/ev-admin-gateway/internal/domain"

// UpdateStatusRequest payload for PATCH status.
type UpdateStatusRequest struct {
	Status domain.UserStatus `json:"status"`
}

// UpdateRoleRequest payload for PATCH role.
type UpdateRoleRequest struct {
	Role domain.Role `json:"role"`
}

// UpdateUserRequest payload for PUT profile updates.
type UpdateUserRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// ResetRiskScoreRequest payload for a risk score reset.
type ResetRiskScoreRequest struct {
	Reason string `json:"reason"`
}

// ViolationRequest payload for recording a violation.
type ViolationRequest struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

package platform

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/spec-kit/ev-admin-gateway/internal/domain"
)

// UsersClient wraps the backend's user and risk-profile endpoints.
type UsersClient struct {
	core *Client
}

// NewUsersClient builds the users resource client.
func NewUsersClient(core *Client) *UsersClient {
	return &UsersClient{core: core}
}

// CreateStaffInput is the body for POST /api/users/staff.
type CreateStaffInput struct {
	FullName string      `json:"fullname"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Role     domain.Role `json:"role"`
}

// ListUsersParams filters GET /api/users.
type ListUsersParams struct {
	Search string
	Role   domain.Role
	Limit  int
	Page   int
}

// UpdateUserInput is the body for PUT /api/users/{id}.
type UpdateUserInput struct {
	FullName string `json:"fullname,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// ViolationInput is the body for POST /api/users/{id}/violations.
type ViolationInput struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

// CreateStaff creates a staff account on the platform.
func (u *UsersClient) CreateStaff(ctx context.Context, input CreateStaffInput) (*domain.CreatedStaff, error) {
	var created domain.CreatedStaff
	if err := u.core.do(ctx, "users", "POST", "/api/users/staff", nil, input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// List searches platform accounts. Also used by the reconciliation flow as
// its post-failure verification read (search=email, role=Station Staff).
func (u *UsersClient) List(ctx context.Context, params ListUsersParams) ([]domain.User, error) {
	query := url.Values{}
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Role != "" {
		query.Set("role", string(params.Role))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}

	var users []domain.User
	if err := u.core.get(ctx, "users", "/api/users", query, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateStatus patches an account's lifecycle status.
func (u *UsersClient) UpdateStatus(ctx context.Context, id string, status domain.UserStatus) (*domain.User, error) {
	var user domain.User
	body := map[string]any{"status": status}
	if err := u.core.do(ctx, "users", "PATCH", fmt.Sprintf("/api/users/%s/status", id), nil, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateRole patches an account's role.
func (u *UsersClient) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	var user domain.User
	body := map[string]any{"role": role}
	if err := u.core.do(ctx, "users", "PATCH", fmt.Sprintf("/api/users/%s/role", id), nil, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update replaces mutable profile fields of an account.
func (u *UsersClient) Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error) {
	var user domain.User
	if err := u.core.do(ctx, "users", "PUT", fmt.Sprintf("/api/users/%s", id), nil, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// RiskyCustomers lists customers flagged by the server-side risk scoring.
func (u *UsersClient) RiskyCustomers(ctx context.Context) ([]domain.RiskProfile, error) {
	var profiles []domain.RiskProfile
	if err := u.core.get(ctx, "risk", "/api/users/risky-customers", nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// RiskyCustomer fetches a single risk profile.
func (u *UsersClient) RiskyCustomer(ctx context.Context, id string) (*domain.RiskProfile, error) {
	var profile domain.RiskProfile
	if err := u.core.get(ctx, "risk", fmt.Sprintf("/api/users/risky-customers/%s", id), nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ResetRiskScore asks the backend to reset a customer's risk score.
func (u *UsersClient) ResetRiskScore(ctx context.Context, id, reason string) (*domain.RiskProfile, error) {
	var profile domain.RiskProfile
	body := map[string]any{"reason": reason}
	if err := u.core.do(ctx, "risk", "POST", fmt.Sprintf("/api/users/%s/reset-risk-score", id), nil, body, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// AddViolation records a violation against a customer.
func (u *UsersClient) AddViolation(ctx context.Context, id string, input ViolationInput) (*domain.RiskProfile, error) {
	var profile domain.RiskProfile
	if err := u.core.do(ctx, "risk", "POST", fmt.Sprintf("/api/users/%s/violations", id), nil, input, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

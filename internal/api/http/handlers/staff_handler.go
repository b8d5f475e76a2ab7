package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ev-admin-gateway/internal/api/dto"
	"github.com/spec-kit/ev-admin-gateway/internal/auth"
	"github.com/spec-kit/ev-admin-gateway/internal/domain"
	"github.com/spec-kit/ev-admin-gateway/internal/platform"
	"github.com/spec-kit/ev-admin-gateway/internal/service"
	"github.com/spec-kit/ev-admin-gateway/pkg/apierr"
)

// StaffHandler exposes staff account administration.
type StaffHandler struct {
	staff *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staff *service.StaffService) *StaffHandler {
	return &StaffHandler{staff: staff}
}

// Create handles POST /admin/staff. The submission runs through the
// reconciliation flow, so an ambiguous backend failure may still resolve
// to a created account.
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apierr.NewUnauthorized("authentication required")
	}

	var req dto.CreateStaffRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}

	result, err := h.staff.Create(c.UserContext(), principal.ID, req.ToInput())
	if err != nil {
		if errors.Is(err, service.ErrSubmissionAbandoned) {
			return apierr.New(apierr.KindUnknown, "SUBMISSION_ABANDONED", "submission abandoned before completion", http.StatusRequestTimeout)
		}
		return err
	}

	switch result.Phase {
	case service.PhaseSucceeded:
		return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CreateStaffResponse{
			Phase:             string(result.Phase),
			Message:           result.Message,
			User:              &result.Staff.User,
			TemporaryPassword: result.Staff.TemporaryPassword,
		}})
	case service.PhaseReconciledSuccess:
		// Created despite the lost response; the temporary password was
		// lost with it and must be reset by the new staff member.
		return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CreateStaffResponse{
			Phase:   string(result.Phase),
			Message: result.Message,
			User:    result.Matched,
		}})
	case service.PhaseVerificationFailed:
		return apierr.New(apierr.KindUnknown, "VERIFICATION_FAILED", result.Message, http.StatusBadGateway)
	default:
		return confirmedFailureError(result)
	}
}

func confirmedFailureError(result *service.SubmissionResult) error {
	if result.Duplicate {
		apiErr := apierr.NewDuplicateEmail("")
		apiErr.Message = result.Message
		if result.Matched != nil {
			apiErr.Details = map[string]any{"email": result.Matched.Email}
		}
		return apiErr
	}
	status := http.StatusBadGateway
	switch result.Outcome {
	case apierr.KindValidation:
		status = http.StatusBadRequest
	case apierr.KindTimeout:
		status = http.StatusGatewayTimeout
	}
	return apierr.New(result.Outcome, "STAFF_CREATE_FAILED", result.Message, status)
}

// List handles GET /admin/staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	params := platform.ListUsersParams{
		Search: c.Query("search"),
		Role:   domain.RoleStationStaff,
		Limit:  parseIntQuery(c, "limit", 50),
		Page:   parseIntQuery(c, "page", 1),
	}
	users, err := h.staff.List(c.UserContext(), params)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": users})
}

// Audits handles GET /admin/staff/audit.
func (h *StaffHandler) Audits(c *fiber.Ctx) error {
	audits, err := h.staff.RecentAudits(c.UserContext(), parseIntQuery(c, "limit", 50))
	if err != nil {
		return err
	}
	if audits == nil {
		audits = []domain.SubmissionAudit{}
	}
	return c.JSON(fiber.Map{"data": audits})
}

func parseIntQuery(c *fiber.Ctx, key string, defaultVal int) int {
	if val := c.Query(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ev-admin-gateway/internal/api/dto"
	"github.com/spec-kit/ev-admin-gateway/internal/auth"
	"github.com/spec-kit/ev-admin-gateway/internal/platform"
	"github.com/spec-kit/ev-admin-gateway/internal/service"
	"github.com/spec-kit/ev-admin-gateway/pkg/apierr"
)

// RiskHandler exposes the risk-scoring review pages.
type RiskHandler struct {
	risk *service.RiskService
}

// NewRiskHandler constructs handler.
func NewRiskHandler(risk *service.RiskService) *RiskHandler {
	return &RiskHandler{risk: risk}
}

// ListRisky handles GET /admin/customers/risky.
func (h *RiskHandler) ListRisky(c *fiber.Ctx) error {
	profiles, err := h.risk.RiskyCustomers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": profiles})
}

// GetRisky handles GET /admin/customers/risky/:id.
func (h *RiskHandler) GetRisky(c *fiber.Ctx) error {
	profile, err := h.risk.RiskyCustomer(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": profile})
}

// ResetRiskScore handles POST /admin/customers/:id/reset-risk-score.
func (h *RiskHandler) ResetRiskScore(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apierr.NewUnauthorized("authentication required")
	}
	var req dto.ResetRiskScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	profile, err := h.risk.ResetRiskScore(c.UserContext(), principal.ID, c.Params("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": profile})
}

// AddViolation handles POST /admin/customers/:id/violations.
func (h *RiskHandler) AddViolation(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apierr.NewUnauthorized("authentication required")
	}
	var req dto.ViolationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Type == "" {
		return fiber.NewError(http.StatusBadRequest, "violation type required")
	}
	profile, err := h.risk.AddViolation(c.UserContext(), principal.ID, c.Params("id"), platform.ViolationInput{
		Type:        req.Type,
		Description: req.Description,
		Points:      req.Points,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": profile})
}

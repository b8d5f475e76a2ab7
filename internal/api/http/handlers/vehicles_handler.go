package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ev-admin-gateway/internal/api/dto"
	"github.com/spec-kit/ev-admin-gateway/internal/auth"
	"github.com/spec-kit/ev-admin-gateway/internal/domain"
	"github.com/spec-kit/ev-admin-gateway/internal/platform"
	"github.com/spec-kit/ev-admin-gateway/internal/service"
	"github.com/spec-kit/ev-admin-gateway/pkg/apierr"
)

// VehiclesHandler exposes fleet management.
type VehiclesHandler struct {
	vehicles *service.VehicleService
}

// NewVehiclesHandler constructs handler.
func NewVehiclesHandler(vehicles *service.VehicleService) *VehiclesHandler {
	return &VehiclesHandler{vehicles: vehicles}
}

// List handles GET /admin/vehicles.
func (h *VehiclesHandler) List(c *fiber.Ctx) error {
	params := platform.ListVehiclesParams{
		StationID: c.Query("stationId"),
		Status:    domain.VehicleStatus(c.Query("status")),
		Search:    c.Query("search"),
		Limit:     parseIntQuery(c, "limit", 50),
		Page:      parseIntQuery(c, "page", 1),
	}
	vehicles, err := h.vehicles.List(c.UserContext(), params)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": vehicles})
}

// Get handles GET /admin/vehicles/:id.
func (h *VehiclesHandler) Get(c *fiber.Ctx) error {
	vehicle, err := h.vehicles.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": vehicle})
}

// Create handles POST /admin/vehicles.
func (h *VehiclesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apierr.NewUnauthorized("authentication required")
	}
	var req dto.VehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}
	vehicle, err := h.vehicles.Create(c.UserContext(), principal.ID, req.ToInput())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": vehicle})
}

// Update handles PUT /admin/vehicles/:id.
func (h *VehiclesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apierr.NewUnauthorized("authentication required")
	}
	var req dto.VehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return err
	}
	vehicle, err := h.vehicles.Update(c.UserContext(), principal.ID, c.Params("id"), req.ToInput())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": vehicle})
}

// UpdateStatus handles PATCH /admin/vehicles/:id/status.
func (h *VehiclesHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apierr.NewUnauthorized("authentication required")
	}
	var req dto.UpdateVehicleStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Status == "" {
		return fiber.NewError(http.StatusBadRequest, "status required")
	}
	vehicle, err := h.vehicles.UpdateStatus(c.UserContext(), principal.ID, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": vehicle})
}

// Delete handles DELETE /admin/vehicles/:id.
func (h *VehiclesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apierr.NewUnauthorized("authentication required")
	}
	if err := h.vehicles.Delete(c.UserContext(), principal.ID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

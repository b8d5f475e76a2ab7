package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ev-admin-gateway/internal/api/dto"
	"github.com/spec-kit/ev-admin-gateway/internal/domain"
	"github.com/spec-kit/ev-admin-gateway/internal/platform"
	"github.com/spec-kit/ev-admin-gateway/internal/service"
)

// UsersHandler exposes account listing and mutation.
type UsersHandler struct {
	staff    *service.StaffService
	accounts *service.AccountService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(staff *service.StaffService, accounts *service.AccountService) *UsersHandler {
	return &UsersHandler{staff: staff, accounts: accounts}
}

// List handles GET /admin/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	params := platform.ListUsersParams{
		Search: c.Query("search"),
		Role:   domain.Role(c.Query("role")),
		Limit:  parseIntQuery(c, "limit", 50),
		Page:   parseIntQuery(c, "page", 1),
	}
	users, err := h.staff.List(c.UserContext(), params)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": users})
}

// UpdateStatus handles PATCH /admin/users/:id/status.
func (h *UsersHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Status == "" {
		return fiber.NewError(http.StatusBadRequest, "status required")
	}
	user, err := h.accounts.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

// UpdateRole handles PATCH /admin/users/:id/role.
func (h *UsersHandler) UpdateRole(c *fiber.Ctx) error {
	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Role == "" {
		return fiber.NewError(http.StatusBadRequest, "role required")
	}
	user, err := h.accounts.UpdateRole(c.UserContext(), c.Params("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

// Update handles PUT /admin/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	user, err := h.accounts.UpdateProfile(c.UserContext(), c.Params("id"), platform.UpdateUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

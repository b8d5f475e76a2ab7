package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ev-admin-gateway/internal/api/dto"
	"github.com/spec-kit/ev-admin-gateway/internal/domain"
	"github.com/spec-kit/ev-admin-gateway/internal/platform"
	"github.com/spec-kit/ev-admin-gateway/internal/service"
)

// OperationsHandler exposes rentals, maintenance and the chatbot proxy.
type OperationsHandler struct {
	rentals     *service.RentalService
	maintenance *service.MaintenanceService
	chatbot     *service.ChatbotService
}

// NewOperationsHandler constructs handler.
func NewOperationsHandler(rentals *service.RentalService, maintenance *service.MaintenanceService, chatbot *service.ChatbotService) *OperationsHandler {
	return &OperationsHandler{rentals: rentals, maintenance: maintenance, chatbot: chatbot}
}

// ListRentals handles GET /admin/rentals.
func (h *OperationsHandler) ListRentals(c *fiber.Ctx) error {
	params := platform.ListRentalsParams{
		UserID:    c.Query("userId"),
		VehicleID: c.Query("vehicleId"),
		Status:    domain.RentalStatus(c.Query("status")),
		Limit:     parseIntQuery(c, "limit", 50),
		Page:      parseIntQuery(c, "page", 1),
	}
	rentals, err := h.rentals.List(c.UserContext(), params)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rentals})
}

// GetRental handles GET /admin/rentals/:id.
func (h *OperationsHandler) GetRental(c *fiber.Ctx) error {
	rental, err := h.rentals.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": rental})
}

// ListMaintenance handles GET /admin/maintenance.
func (h *OperationsHandler) ListMaintenance(c *fiber.Ctx) error {
	records, err := h.maintenance.List(c.UserContext(), c.Query("vehicleId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": records})
}

// ReportMaintenance handles POST /admin/maintenance.
func (h *OperationsHandler) ReportMaintenance(c *fiber.Ctx) error {
	var req dto.MaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.VehicleID == "" || req.Description == "" {
		return fiber.NewError(http.StatusBadRequest, "vehicleId and description required")
	}
	record, err := h.maintenance.Report(c.UserContext(), platform.MaintenanceInput{
		VehicleID:   req.VehicleID,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": record})
}

// CompleteMaintenance handles POST /admin/maintenance/:id/complete.
func (h *OperationsHandler) CompleteMaintenance(c *fiber.Ctx) error {
	var req dto.CompleteMaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	record, err := h.maintenance.Complete(c.UserContext(), c.Params("id"), req.Cost)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": record})
}

// AskChatbot handles POST /admin/chatbot/query.
func (h *OperationsHandler) AskChatbot(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	reply, err := h.chatbot.Ask(c.UserContext(), req.Question)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reply})
}

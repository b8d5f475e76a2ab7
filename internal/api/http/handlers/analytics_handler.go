package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ev-admin-gateway/internal/service"
)

// AnalyticsHandler exposes the revenue and dashboard views.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analytics *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Revenue handles GET /admin/analytics/revenue.
func (h *AnalyticsHandler) Revenue(c *fiber.Ctx) error {
	summary, err := h.analytics.Revenue(c.UserContext(), c.Query("period"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

// Dashboard handles GET /admin/analytics/dashboard.
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.analytics.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

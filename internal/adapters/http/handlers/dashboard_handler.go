package handlers

import (
	"time"

	"assurgest/internal/core/services"
	"assurgest/internal/pkg/actor"
	"assurgest/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetOverview returns portfolio aggregates. The period defaults to the current year.
// @Summary Dashboard overview
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param du query string false "From date (YYYY-MM-DD)"
// @Param au query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) GetOverview(c *fiber.Ctx) error {
	today := actor.Today(c.UserContext())
	from := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	to := today

	if d, err := queryDate(c, "du"); err != nil {
		return respondError(c, err)
	} else if d != nil {
		from = *d
	}
	if d, err := queryDate(c, "au"); err != nil {
		return respondError(c, err)
	} else if d != nil {
		to = *d
	}

	data, err := h.dashboardService.GetOverview(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Dashboard retrieved successfully", data)
}

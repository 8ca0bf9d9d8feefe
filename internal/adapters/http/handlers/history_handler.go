package handlers

import (
	"assurgest/internal/adapters/persistence/repositories"
	"assurgest/internal/core/services"
	"assurgest/internal/pkg/pagination"
	"assurgest/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// HistoryHandler exposes the audit trail. It is read-only.
type HistoryHandler struct {
	historyService *services.HistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historyService *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// List lists history events, newest first
// @Summary List history events
// @Tags History
// @Produce json
// @Security BearerAuth
// @Param entite_affectee query string false "Entity type"
// @Param id_entite query string false "Entity ID"
// @Param id_utilisateur query string false "Actor ID"
// @Param type_evenement query string false "Event type"
// @Param du query string false "From date (YYYY-MM-DD)"
// @Param au query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /historique [get]
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	from, err := queryDate(c, "du")
	if err != nil {
		return respondError(c, err)
	}
	to, err := queryDate(c, "au")
	if err != nil {
		return respondError(c, err)
	}
	if to != nil {
		// inclusive upper bound
		end := to.AddDate(0, 0, 1)
		to = &end
	}

	p := pagination.FromQuery(c)
	filter := repositories.HistoryFilter{
		Entity:    c.Query("entite_affectee"),
		EntityID:  c.Query("id_entite"),
		UserID:    c.Query("id_utilisateur"),
		EventType: c.Query("type_evenement"),
		From:      from,
		To:        to,
	}

	events, total, err := h.historyService.List(c.UserContext(), filter, p)
	if err != nil {
		return respondError(c, err)
	}

	return paginated(c, "History retrieved successfully", events, p, total)
}

// Timeline returns every event of one entity, oldest first
// @Summary Entity timeline
// @Tags History
// @Produce json
// @Security BearerAuth
// @Param entity path string true "Entity type"
// @Param id path string true "Entity ID"
// @Success 200 {object} response.Response
// @Router /historique/{entity}/{id} [get]
func (h *HistoryHandler) Timeline(c *fiber.Ctx) error {
	events, err := h.historyService.Timeline(c.UserContext(), c.Params("entity"), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Timeline retrieved successfully", events)
}

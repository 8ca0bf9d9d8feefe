package handlers

import (
	"assurgest/internal/core/services"
	"assurgest/internal/pkg/pagination"
	"assurgest/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// IndemnificationHandler handles the indemnification workflow
type IndemnificationHandler struct {
	indemnificationService *services.IndemnificationService
}

// NewIndemnificationHandler creates a new indemnification handler
func NewIndemnificationHandler(indemnificationService *services.IndemnificationService) *IndemnificationHandler {
	return &IndemnificationHandler{indemnificationService: indemnificationService}
}

// List lists indemnifications
// @Summary List indemnifications
// @Tags Indemnifications
// @Produce json
// @Security BearerAuth
// @Param statut query string false "Status"
// @Success 200 {object} response.Response
// @Router /indemnisations [get]
func (h *IndemnificationHandler) List(c *fiber.Ctx) error {
	p := pagination.FromQuery(c)

	items, total, err := h.indemnificationService.List(c.UserContext(), c.Query("statut"), p)
	if err != nil {
		return respondError(c, err)
	}

	return paginated(c, "Indemnifications retrieved successfully", items, p, total)
}

// Get returns one indemnification
// @Summary Get indemnification
// @Tags Indemnifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Indemnification ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /indemnisations/{id} [get]
func (h *IndemnificationHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	item, err := h.indemnificationService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Indemnification retrieved successfully", item)
}

// Propose proposes an indemnification for a claim
// @Summary Propose indemnification
// @Tags Indemnifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ProposeInput true "Proposal"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /indemnisations [post]
func (h *IndemnificationHandler) Propose(c *fiber.Ctx) error {
	var req services.ProposeInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	item, err := h.indemnificationService.Propose(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Indemnification proposed successfully", item)
}

// Validate validates a pending indemnification
// @Summary Validate indemnification
// @Tags Indemnifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Indemnification ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /indemnisations/{id}/valider [post]
func (h *IndemnificationHandler) Validate(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	item, err := h.indemnificationService.Validate(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Indemnification validated successfully", item)
}

// Pay records the payment of a validated indemnification
// @Summary Record indemnification payment
// @Tags Indemnifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Indemnification ID"
// @Param body body services.PaymentInput true "Payment"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /indemnisations/{id}/payer [post]
func (h *IndemnificationHandler) Pay(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req services.PaymentInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	item, err := h.indemnificationService.RecordPayment(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Payment recorded successfully", item)
}

package handlers

import (
	"assurgest/internal/core/services"
	"assurgest/internal/pkg/pagination"
	"assurgest/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PremiumHandler handles premium due notices and payments
type PremiumHandler struct {
	premiumService *services.PremiumService
}

// NewPremiumHandler creates a new premium handler
func NewPremiumHandler(premiumService *services.PremiumService) *PremiumHandler {
	return &PremiumHandler{premiumService: premiumService}
}

// List lists premiums
// @Summary List premiums
// @Tags Premiums
// @Produce json
// @Security BearerAuth
// @Param statut query string false "Status"
// @Success 200 {object} response.Response
// @Router /primes [get]
func (h *PremiumHandler) List(c *fiber.Ctx) error {
	p := pagination.FromQuery(c)

	premiums, total, err := h.premiumService.List(c.UserContext(), c.Query("statut"), p)
	if err != nil {
		return respondError(c, err)
	}

	return paginated(c, "Premiums retrieved successfully", premiums, p, total)
}

// Get returns a premium
// @Summary Get premium
// @Tags Premiums
// @Produce json
// @Security BearerAuth
// @Param id path string true "Premium ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /primes/{id} [get]
func (h *PremiumHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	premium, err := h.premiumService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Premium retrieved successfully", premium)
}

// GenerateDueNotice issues a due notice for a contract
// @Summary Generate due notice
// @Tags Premiums
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.DueNoticeInput true "Due notice"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /primes [post]
func (h *PremiumHandler) GenerateDueNotice(c *fiber.Ctx) error {
	var req services.DueNoticeInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	premium, err := h.premiumService.GenerateDueNotice(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Due notice generated successfully", premium)
}

// Pay records a premium payment
// @Summary Record premium payment
// @Tags Premiums
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Premium ID"
// @Param body body services.PaymentInput true "Payment"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /primes/{id}/payer [post]
func (h *PremiumHandler) Pay(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req services.PaymentInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	premium, err := h.premiumService.RecordPayment(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Payment recorded successfully", premium)
}

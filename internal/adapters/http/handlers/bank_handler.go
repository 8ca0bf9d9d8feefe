package handlers

import (
	"assurgest/internal/core/services"
	"assurgest/internal/pkg/pagination"
	"assurgest/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BankHandler handles bank statement import and reconciliation
type BankHandler struct {
	reconciliationService *services.ReconciliationService
}

// NewBankHandler creates a new bank handler
func NewBankHandler(reconciliationService *services.ReconciliationService) *BankHandler {
	return &BankHandler{reconciliationService: reconciliationService}
}

// Import imports a batch of bank lines. The batch is rejected as a whole on any error.
// @Summary Import bank transactions
// @Tags Bank
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body []services.BankLineInput true "Bank lines"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /transactions-bancaires [post]
func (h *BankHandler) Import(c *fiber.Ctx) error {
	var req []services.BankLineInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	lines, err := h.reconciliationService.Import(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Bank transactions imported successfully", lines)
}

// List lists bank transactions
// @Summary List bank transactions
// @Tags Bank
// @Produce json
// @Security BearerAuth
// @Param non_rapprochees query bool false "Only unreconciled lines"
// @Success 200 {object} response.Response
// @Router /transactions-bancaires [get]
func (h *BankHandler) List(c *fiber.Ctx) error {
	p := pagination.FromQuery(c)

	lines, total, err := h.reconciliationService.List(c.UserContext(), c.QueryBool("non_rapprochees"), p)
	if err != nil {
		return respondError(c, err)
	}

	return paginated(c, "Bank transactions retrieved successfully", lines, p, total)
}

// Get returns a bank transaction
// @Summary Get bank transaction
// @Tags Bank
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.Response
// @Router /transactions-bancaires/{id} [get]
func (h *BankHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	line, err := h.reconciliationService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Bank transaction retrieved successfully", line)
}

// Reconcile matches a bank line with a premium or an indemnification
// @Summary Reconcile bank transaction
// @Tags Bank
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Param body body services.ReconcileInput true "Target"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /transactions-bancaires/{id}/rapprocher [post]
func (h *BankHandler) Reconcile(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req services.ReconcileInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	line, err := h.reconciliationService.Reconcile(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Bank transaction reconciled successfully", line)
}

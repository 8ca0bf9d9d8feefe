package handlers

import (
	"assurgest/internal/adapters/persistence/repositories"
	"assurgest/internal/core/services"
	"assurgest/internal/pkg/pagination"
	"assurgest/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ContractHandler handles insurance contract endpoints
type ContractHandler struct {
	contractService *services.ContractService
	premiumService  *services.PremiumService
}

// NewContractHandler creates a new contract handler
func NewContractHandler(contractService *services.ContractService, premiumService *services.PremiumService) *ContractHandler {
	return &ContractHandler{
		contractService: contractService,
		premiumService:  premiumService,
	}
}

// List lists contracts
// @Summary List contracts
// @Tags Contracts
// @Produce json
// @Security BearerAuth
// @Param statut query string false "Status"
// @Param id_client query string false "Client ID"
// @Param numero_contrat query string false "Contract number"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /contrats [get]
func (h *ContractHandler) List(c *fiber.Ctx) error {
	p := pagination.FromQuery(c)
	filter := repositories.ContractFilter{
		Status:   c.Query("statut"),
		ClientID: c.Query("id_client"),
		Number:   c.Query("numero_contrat"),
	}

	contracts, total, err := h.contractService.List(c.UserContext(), filter, p)
	if err != nil {
		return respondError(c, err)
	}

	return paginated(c, "Contracts retrieved successfully", contracts, p, total)
}

// Get returns a contract with its client, type and company
// @Summary Get contract
// @Tags Contracts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contract ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /contrats/{id} [get]
func (h *ContractHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	contract, err := h.contractService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Contract retrieved successfully", contract)
}

// Create creates a contract
// @Summary Create contract
// @Tags Contracts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateContractInput true "Contract"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /contrats [post]
func (h *ContractHandler) Create(c *fiber.Ctx) error {
	var req services.CreateContractInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	contract, err := h.contractService.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Contract created successfully", contract)
}

// Update applies a partial update; status writes follow the contract lifecycle
// @Summary Update contract
// @Tags Contracts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contract ID"
// @Param body body services.UpdateContractInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /contrats/{id} [put]
func (h *ContractHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req services.UpdateContractInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	contract, err := h.contractService.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Contract updated successfully", contract)
}

// Renew extends a contract
// @Summary Renew contract
// @Tags Contracts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contract ID"
// @Param body body services.RenewContractInput true "New end date and premium"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /contrats/{id}/renouveler [post]
func (h *ContractHandler) Renew(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req services.RenewContractInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	contract, err := h.contractService.Renew(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Contract renewed successfully", contract)
}

// Cancel cancels a contract
// @Summary Cancel contract
// @Tags Contracts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contract ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /contrats/{id}/annuler [post]
func (h *ContractHandler) Cancel(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	contract, err := h.contractService.Cancel(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Contract cancelled successfully", contract)
}

// Delete deletes a contract with no dependents
// @Summary Delete contract
// @Tags Contracts
// @Security BearerAuth
// @Param id path string true "Contract ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /contrats/{id} [delete]
func (h *ContractHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.contractService.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Contract deleted successfully", nil)
}

// ListPremiums lists the premiums of a contract
// @Summary List contract premiums
// @Tags Contracts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Contract ID"
// @Success 200 {object} response.Response
// @Router /contrats/{id}/primes [get]
func (h *ContractHandler) ListPremiums(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	premiums, err := h.premiumService.ListByContract(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Premiums retrieved successfully", premiums)
}

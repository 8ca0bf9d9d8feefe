package handlers

import (
	"assurgest/internal/adapters/persistence/repositories"
	"assurgest/internal/core/services"
	"assurgest/internal/pkg/pagination"
	"assurgest/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ClaimHandler handles claim (sinistre) and indemnification endpoints
type ClaimHandler struct {
	claimService           *services.ClaimService
	indemnificationService *services.IndemnificationService
}

// NewClaimHandler creates a new claim handler
func NewClaimHandler(claimService *services.ClaimService, indemnificationService *services.IndemnificationService) *ClaimHandler {
	return &ClaimHandler{
		claimService:           claimService,
		indemnificationService: indemnificationService,
	}
}

// List lists claims
// @Summary List claims
// @Tags Claims
// @Produce json
// @Security BearerAuth
// @Param statut query string false "Status"
// @Param id_police query string false "Contract ID"
// @Param id_dossier query string false "Folder ID"
// @Param id_utilisateur query string false "Assignee ID"
// @Success 200 {object} response.Response
// @Router /sinistres [get]
func (h *ClaimHandler) List(c *fiber.Ctx) error {
	p := pagination.FromQuery(c)
	filter := repositories.ClaimFilter{
		Status:     c.Query("statut"),
		ContractID: c.Query("id_police"),
		FolderID:   c.Query("id_dossier"),
		AssigneeID: c.Query("id_utilisateur"),
	}

	claims, total, err := h.claimService.List(c.UserContext(), filter, p)
	if err != nil {
		return respondError(c, err)
	}

	return paginated(c, "Claims retrieved successfully", claims, p, total)
}

// Get returns a claim
// @Summary Get claim
// @Tags Claims
// @Produce json
// @Security BearerAuth
// @Param id path string true "Claim ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /sinistres/{id} [get]
func (h *ClaimHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	claim, err := h.claimService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Claim retrieved successfully", claim)
}

// Create declares a claim
// @Summary Declare claim
// @Tags Claims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateClaimInput true "Claim"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /sinistres [post]
func (h *ClaimHandler) Create(c *fiber.Ctx) error {
	var req services.CreateClaimInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	claim, err := h.claimService.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Claim declared successfully", claim)
}

// Update applies a partial update; status writes follow the claim lifecycle
// @Summary Update claim
// @Tags Claims
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Claim ID"
// @Param body body services.UpdateClaimInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /sinistres/{id} [put]
func (h *ClaimHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req services.UpdateClaimInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	claim, err := h.claimService.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Claim updated successfully", claim)
}

// Delete deletes a claim without indemnification
// @Summary Delete claim
// @Tags Claims
// @Security BearerAuth
// @Param id path string true "Claim ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /sinistres/{id} [delete]
func (h *ClaimHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.claimService.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Claim deleted successfully", nil)
}

// ListIndemnifications lists the indemnifications proposed for a claim
// @Summary List claim indemnifications
// @Tags Claims
// @Produce json
// @Security BearerAuth
// @Param id path string true "Claim ID"
// @Success 200 {object} response.Response
// @Router /sinistres/{id}/indemnisations [get]
func (h *ClaimHandler) ListIndemnifications(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	items, err := h.indemnificationService.ListByClaim(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Indemnifications retrieved successfully", items)
}

package handlers

import (
	"assurgest/internal/core/services"
	"assurgest/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReferenceHandler handles insurance types, companies and folder states
type ReferenceHandler struct {
	referenceService *services.ReferenceService
}

// NewReferenceHandler creates a new reference data handler
func NewReferenceHandler(referenceService *services.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{referenceService: referenceService}
}

// ListInsuranceTypes godoc
// @Summary List insurance types
// @Tags Reference
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /types-assurance [get]
func (h *ReferenceHandler) ListInsuranceTypes(c *fiber.Ctx) error {
	items, err := h.referenceService.ListInsuranceTypes(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Insurance types retrieved successfully", items)
}

// CreateInsuranceType godoc
// @Summary Create insurance type
// @Tags Reference
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.NamedInput true "Insurance type"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /types-assurance [post]
func (h *ReferenceHandler) CreateInsuranceType(c *fiber.Ctx) error {
	var req services.NamedInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	item, err := h.referenceService.CreateInsuranceType(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, "Insurance type created successfully", item)
}

// UpdateInsuranceType godoc
// @Summary Update insurance type
// @Tags Reference
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Insurance type ID"
// @Param body body services.NamedInput true "Insurance type"
// @Success 200 {object} response.Response
// @Router /types-assurance/{id} [put]
func (h *ReferenceHandler) UpdateInsuranceType(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req services.NamedInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	item, err := h.referenceService.UpdateInsuranceType(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Insurance type updated successfully", item)
}

// DeleteInsuranceType godoc
// @Summary Delete insurance type
// @Tags Reference
// @Security BearerAuth
// @Param id path string true "Insurance type ID"
// @Success 200 {object} response.Response
// @Router /types-assurance/{id} [delete]
func (h *ReferenceHandler) DeleteInsuranceType(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.referenceService.DeleteInsuranceType(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Insurance type deleted successfully", nil)
}

// ListCompanies godoc
// @Summary List insurance companies
// @Tags Reference
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /compagnies [get]
func (h *ReferenceHandler) ListCompanies(c *fiber.Ctx) error {
	items, err := h.referenceService.ListCompanies(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Companies retrieved successfully", items)
}

// CreateCompany godoc
// @Summary Create insurance company
// @Tags Reference
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CompanyInput true "Company"
// @Success 201 {object} response.Response
// @Router /compagnies [post]
func (h *ReferenceHandler) CreateCompany(c *fiber.Ctx) error {
	var req services.CompanyInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	item, err := h.referenceService.CreateCompany(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, "Company created successfully", item)
}

// UpdateCompany godoc
// @Summary Update insurance company
// @Tags Reference
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company ID"
// @Param body body services.CompanyInput true "Company"
// @Success 200 {object} response.Response
// @Router /compagnies/{id} [put]
func (h *ReferenceHandler) UpdateCompany(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req services.CompanyInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	item, err := h.referenceService.UpdateCompany(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Company updated successfully", item)
}

// DeleteCompany godoc
// @Summary Delete insurance company
// @Tags Reference
// @Security BearerAuth
// @Param id path string true "Company ID"
// @Success 200 {object} response.Response
// @Router /compagnies/{id} [delete]
func (h *ReferenceHandler) DeleteCompany(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.referenceService.DeleteCompany(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Company deleted successfully", nil)
}

// ListFolderStates godoc
// @Summary List folder states
// @Tags Reference
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /etats-dossier [get]
func (h *ReferenceHandler) ListFolderStates(c *fiber.Ctx) error {
	items, err := h.referenceService.ListFolderStates(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Folder states retrieved successfully", items)
}

// CreateFolderState godoc
// @Summary Create folder state
// @Tags Reference
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.NamedInput true "Folder state"
// @Success 201 {object} response.Response
// @Router /etats-dossier [post]
func (h *ReferenceHandler) CreateFolderState(c *fiber.Ctx) error {
	var req services.NamedInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	item, err := h.referenceService.CreateFolderState(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, "Folder state created successfully", item)
}

// DeleteFolderState godoc
// @Summary Delete folder state
// @Tags Reference
// @Security BearerAuth
// @Param id path string true "Folder state ID"
// @Success 200 {object} response.Response
// @Router /etats-dossier/{id} [delete]
func (h *ReferenceHandler) DeleteFolderState(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.referenceService.DeleteFolderState(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Folder state deleted successfully", nil)
}

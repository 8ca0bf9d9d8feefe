package handlers

import (
	"assurgest/internal/core/services"
	"assurgest/internal/pkg/pagination"
	"assurgest/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ClientHandler handles policyholder endpoints
type ClientHandler struct {
	clientService *services.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// List lists clients, optionally filtered by a search term
// @Summary List clients
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search by name, email or national id"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	p := pagination.FromQuery(c)

	clients, total, err := h.clientService.List(c.UserContext(), c.Query("q"), p)
	if err != nil {
		return respondError(c, err)
	}

	return paginated(c, "Clients retrieved successfully", clients, p, total)
}

// Get returns one client
// @Summary Get client
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clients/{id} [get]
func (h *ClientHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	client, err := h.clientService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Client retrieved successfully", client)
}

// Create creates a client
// @Summary Create client
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ClientInput true "Client"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var req services.ClientInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	client, err := h.clientService.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Client created successfully", client)
}

// Update applies a partial update
// @Summary Update client
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param body body services.UpdateClientInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req services.UpdateClientInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	client, err := h.clientService.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Client updated successfully", client)
}

// Delete deletes a client without contracts
// @Summary Delete client
// @Tags Clients
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.clientService.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Client deleted successfully", nil)
}

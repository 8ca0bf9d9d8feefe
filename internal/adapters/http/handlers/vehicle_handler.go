package handlers

import (
	"assurgest/internal/core/services"
	"assurgest/internal/pkg/pagination"
	"assurgest/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// VehicleHandler handles insured vehicles, keyed by plate
type VehicleHandler struct {
	vehicleService *services.VehicleService
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicleService *services.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// List lists vehicles
// @Summary List vehicles
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Param id_police query string false "Contract ID"
// @Success 200 {object} response.Response
// @Router /vehicules [get]
func (h *VehicleHandler) List(c *fiber.Ctx) error {
	p := pagination.FromQuery(c)

	vehicles, total, err := h.vehicleService.List(c.UserContext(), c.Query("id_police"), p)
	if err != nil {
		return respondError(c, err)
	}

	return paginated(c, "Vehicles retrieved successfully", vehicles, p, total)
}

// Get returns a vehicle
// @Summary Get vehicle
// @Tags Vehicles
// @Produce json
// @Security BearerAuth
// @Param plate path string true "Plate"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /vehicules/{plate} [get]
func (h *VehicleHandler) Get(c *fiber.Ctx) error {
	vehicle, err := h.vehicleService.Get(c.UserContext(), c.Params("plate"))
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Vehicle retrieved successfully", vehicle)
}

// Create registers a vehicle
// @Summary Create vehicle
// @Tags Vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.VehicleInput true "Vehicle"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /vehicules [post]
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	var req services.VehicleInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	vehicle, err := h.vehicleService.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, "Vehicle created successfully", vehicle)
}

// Update applies a partial update
// @Summary Update vehicle
// @Tags Vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plate path string true "Plate"
// @Param body body services.UpdateVehicleInput true "Fields to change"
// @Success 200 {object} response.Response
// @Router /vehicules/{plate} [put]
func (h *VehicleHandler) Update(c *fiber.Ctx) error {
	var req services.UpdateVehicleInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	vehicle, err := h.vehicleService.Update(c.UserContext(), c.Params("plate"), req)
	if err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Vehicle updated successfully", vehicle)
}

// Delete deletes a vehicle
// @Summary Delete vehicle
// @Tags Vehicles
// @Security BearerAuth
// @Param plate path string true "Plate"
// @Success 200 {object} response.Response
// @Router /vehicules/{plate} [delete]
func (h *VehicleHandler) Delete(c *fiber.Ctx) error {
	if err := h.vehicleService.Delete(c.UserContext(), c.Params("plate")); err != nil {
		return respondError(c, err)
	}
	return response.Success(c, "Vehicle deleted successfully", nil)
}

package handlers

import (
	"assurgest/internal/core/services"
	"assurgest/internal/pkg/pagination"
	"assurgest/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// FolderHandler handles claim folders and their archives
type FolderHandler struct {
	folderService *services.FolderService
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService *services.FolderService) *FolderHandler {
	return &FolderHandler{folderService: folderService}
}

// List lists folders
// @Summary List folders
// @Tags Folders
// @Produce json
// @Security BearerAuth
// @Param id_etat_dossier query string false "Folder state ID"
// @Success 200 {object} response.Response
// @Router /dossiers [get]
func (h *FolderHandler) List(c *fiber.Ctx) error {
	p := pagination.FromQuery(c)

	folders, total, err := h.folderService.List(c.UserContext(), c.Query("id_etat_dossier"), p)
	if err != nil {
		return respondError(c, err)
	}

	return paginated(c, "Folders retrieved successfully", folders, p, total)
}

// Get returns a folder
// @Summary Get folder
// @Tags Folders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Folder ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /dossiers/{id} [get]
func (h *FolderHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	folder, err := h.folderService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Folder retrieved successfully", folder)
}

// Create opens a folder for a contract
// @Summary Create folder
// @Tags Folders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateFolderInput true "Folder"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /dossiers [post]
func (h *FolderHandler) Create(c *fiber.Ctx) error {
	var req services.CreateFolderInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	folder, err := h.folderService.Create(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Folder created successfully", folder)
}

// Update applies a partial update
// @Summary Update folder
// @Tags Folders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Folder ID"
// @Param body body services.UpdateFolderInput true "Fields to change"
// @Success 200 {object} response.Response
// @Router /dossiers/{id} [put]
func (h *FolderHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req services.UpdateFolderInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	folder, err := h.folderService.Update(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Folder updated successfully", folder)
}

// Archive snapshots the folder into an archive and removes it
// @Summary Archive folder
// @Tags Folders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Folder ID"
// @Param body body services.ArchiveFolderInput false "Reason"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /dossiers/{id}/archiver [post]
func (h *FolderHandler) Archive(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req services.ArchiveFolderInput
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return respondError(c, err)
		}
	}

	archive, err := h.folderService.Archive(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Folder archived successfully", archive)
}

// ListArchives lists archived folders
// @Summary List archives
// @Tags Folders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /archives [get]
func (h *FolderHandler) ListArchives(c *fiber.Ctx) error {
	p := pagination.FromQuery(c)

	archives, total, err := h.folderService.ListArchives(c.UserContext(), p)
	if err != nil {
		return respondError(c, err)
	}

	return paginated(c, "Archives retrieved successfully", archives, p, total)
}

// GetArchive returns one archive
// @Summary Get archive
// @Tags Folders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Archive ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /archives/{id} [get]
func (h *FolderHandler) GetArchive(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	archive, err := h.folderService.GetArchive(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Archive retrieved successfully", archive)
}

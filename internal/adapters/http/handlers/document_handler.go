package handlers

import (
	"assurgest/internal/core/domain"
	"assurgest/internal/core/services"
	"assurgest/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// DocumentHandler handles document upload and download
type DocumentHandler struct {
	documentService *services.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Upload stores a file attached to a folder, contract or claim
// @Summary Upload document
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File"
// @Param type_proprietaire formData string true "dossier, contrat or sinistre"
// @Param id_proprietaire formData string true "Owner ID"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /documents [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return response.FieldError(c, fiber.StatusBadRequest, "file", "file is required")
	}
	ownerID, err := uuid.Parse(c.FormValue("id_proprietaire"))
	if err != nil {
		return respondError(c, domain.Invalid("id_proprietaire", "invalid identifier"))
	}

	file, err := header.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer file.Close()

	doc, err := h.documentService.Upload(c.UserContext(), services.UploadInput{
		FileName:    header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Size:        header.Size,
		Body:        file,
		OwnerType:   c.FormValue("type_proprietaire"),
		OwnerID:     ownerID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, "Document uploaded successfully", doc)
}

// ListByOwner lists the documents of one entity
// @Summary List documents
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param type_proprietaire query string true "dossier, contrat or sinistre"
// @Param id_proprietaire query string true "Owner ID"
// @Success 200 {object} response.Response
// @Router /documents [get]
func (h *DocumentHandler) ListByOwner(c *fiber.Ctx) error {
	ownerID, err := uuid.Parse(c.Query("id_proprietaire"))
	if err != nil {
		return respondError(c, domain.Invalid("id_proprietaire", "invalid identifier"))
	}

	docs, err := h.documentService.ListByOwner(c.UserContext(), c.Query("type_proprietaire"), ownerID)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Documents retrieved successfully", docs)
}

// Get returns document metadata
// @Summary Get document
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} response.Response
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	doc, err := h.documentService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Document retrieved successfully", doc)
}

// Download returns a short-lived download link
// @Summary Document download link
// @Tags Documents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /documents/{id}/telechargement [get]
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	url, err := h.documentService.DownloadURL(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Download link generated", fiber.Map{"url": url})
}

// Delete deletes the document and its object
// @Summary Delete document
// @Tags Documents
// @Security BearerAuth
// @Param id path string true "Document ID"
// @Success 200 {object} response.Response
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.documentService.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}

	return response.Success(c, "Document deleted successfully", nil)
}

package http

import (
	"metadata-backoffice/internal/backoffice/usecase"

	"github.com/gofiber/fiber/v2"
)

const (
	msgMetadataListError   = "Error al obtener metadata"
	msgMetadataCreateError = "Error al crear metadata"
	msgMetadataUpdateError = "Error al actualizar metadata"
	msgMetadataDeleteError = "Error al eliminar metadata"
	msgMetadataDeleted     = "Llave de configuración eliminada correctamente"
)

// GetAllMetadata returns every entry, raw with ?format=full or projected otherwise.
func (h *HTTPHandler) GetAllMetadata(c *fiber.Ctx) error {
	listing, err := h.MetadataUC.GetAll(c.UserContext(), c.Query("format"))
	if err != nil {
		return h.respondError(c, err, msgMetadataListError)
	}
	return c.JSON(listing)
}

func (h *HTTPHandler) GetMetadataByCountry(c *fiber.Ctx) error {
	listing, err := h.MetadataUC.GetByCountry(c.UserContext(), param(c, "country"), c.Query("format"))
	if err != nil {
		return h.respondError(c, err, msgMetadataListError)
	}
	return c.JSON(listing)
}

func (h *HTTPHandler) GetMetadataByCountryAndDevice(c *fiber.Ctx) error {
	listing, err := h.MetadataUC.GetByCountryAndDevice(c.UserContext(), param(c, "country"), param(c, "device"), c.Query("format"))
	if err != nil {
		return h.respondError(c, err, msgMetadataListError)
	}
	return c.JSON(listing)
}

func (h *HTTPHandler) CreateMetadata(c *fiber.Ctx) error {
	var req usecase.MetadataRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msgInvalidBody})
	}

	entry, err := h.MetadataUC.Create(c.UserContext(), req)
	if err != nil {
		return h.respondError(c, err, msgMetadataCreateError)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (h *HTTPHandler) UpdateMetadata(c *fiber.Ctx) error {
	var req usecase.MetadataRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msgInvalidBody})
	}

	entry, err := h.MetadataUC.Update(c.UserContext(), param(c, "id"), req)
	if err != nil {
		return h.respondError(c, err, msgMetadataUpdateError)
	}
	return c.JSON(entry)
}

func (h *HTTPHandler) DeleteMetadata(c *fiber.Ctx) error {
	deleted, err := h.MetadataUC.Delete(c.UserContext(), param(c, "id"))
	if err != nil {
		return h.respondError(c, err, msgMetadataDeleteError)
	}
	return c.JSON(fiber.Map{
		"message": msgMetadataDeleted,
		"deleted": deleted,
	})
}

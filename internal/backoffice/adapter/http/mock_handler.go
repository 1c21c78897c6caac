package http

import (
	"metadata-backoffice/internal/backoffice/usecase"

	"github.com/gofiber/fiber/v2"
)

const (
	msgMockCreated     = "Mock creado exitosamente"
	msgMockDeleted     = "Mock eliminado exitosamente"
	msgMockCreateError = "Error al crear el mock"
	msgMockGetError    = "Error al obtener el mock"
	msgMockListError   = "Error al listar los mocks"
	msgMockDeleteError = "Error al eliminar el mock"
)

func (h *HTTPHandler) CreateMock(c *fiber.Ctx) error {
	var req usecase.CreateMockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": true, "message": msgInvalidBody})
	}

	created, err := h.MockUC.Create(c.UserContext(), req)
	if err != nil {
		return h.respondMockError(c, err, msgMockCreateError)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"error":     false,
		"message":   msgMockCreated,
		"mockId":    created.MockID,
		"mockUrl":   created.MockURL,
		"name":      created.Name,
		"createdAt": created.CreatedAt,
	})
}

// GetMock serves the stored payload itself, without the mock wrapper.
func (h *HTTPHandler) GetMock(c *fiber.Ctx) error {
	data, err := h.MockUC.Get(c.UserContext(), param(c, "mockId"))
	if err != nil {
		return h.respondMockError(c, err, msgMockGetError)
	}
	return c.Status(fiber.StatusOK).JSON(data)
}

func (h *HTTPHandler) ListMocks(c *fiber.Ctx) error {
	mocks, err := h.MockUC.List(c.UserContext())
	if err != nil {
		return h.respondMockError(c, err, msgMockListError)
	}
	return c.Status(fiber.StatusOK).JSON(mocks)
}

func (h *HTTPHandler) DeleteMock(c *fiber.Ctx) error {
	if err := h.MockUC.Delete(c.UserContext(), param(c, "mockId")); err != nil {
		return h.respondMockError(c, err, msgMockDeleteError)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"error":   false,
		"message": msgMockDeleted,
	})
}

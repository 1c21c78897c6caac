package http

import (
	"github.com/gofiber/fiber/v2"
)

// ListChanges returns the most recent change events, newest first.
func (h *HTTPHandler) ListChanges(c *fiber.Ctx) error {
	events, err := h.ChangeFeedUC.Recent(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return h.respondError(c, err, "Error al obtener el registro de cambios")
	}
	return c.JSON(events)
}

package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const msgInvalidBody = "El cuerpo de la solicitud no es un JSON válido"

// param returns the decoded route parameter as a string safe to keep after the handler returns.
func param(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return utils.CopyString(raw)
}

package http

import (
	"metadata-backoffice/internal/backoffice/domain/model"

	"github.com/gofiber/fiber/v2"
)

// catalogBody accepts the request bodies of both catalog lists.
type catalogBody struct {
	Country    string `json:"country"`
	OldCountry string `json:"oldCountry"`
	NewCountry string `json:"newCountry"`
	Device     string `json:"device"`
	OldDevice  string `json:"oldDevice"`
	NewDevice  string `json:"newDevice"`
}

// names returns the name, old name and new name fields for kind.
func (b catalogBody) names(kind model.CatalogKind) (name, oldName, newName string) {
	if kind == model.CatalogDevices {
		return b.Device, b.OldDevice, b.NewDevice
	}
	return b.Country, b.OldCountry, b.NewCountry
}

// catalogFields names the route and fallback messages of one catalog list.
type catalogFields struct {
	kind      model.CatalogKind
	path      string
	param     string
	listError string
	addError  string
	editError string
	delError  string
}

var countryFields = catalogFields{
	kind:      model.CatalogCountries,
	path:      "/countries",
	param:     "country",
	listError: "Error al obtener países",
	addError:  "Error al agregar país",
	editError: "Error al actualizar país",
	delError:  "Error al eliminar país",
}

var deviceFields = catalogFields{
	kind:      model.CatalogDevices,
	path:      "/devices",
	param:     "device",
	listError: "Error al obtener dispositivos",
	addError:  "Error al agregar dispositivo",
	editError: "Error al actualizar dispositivo",
	delError:  "Error al eliminar dispositivo",
}

func (h *HTTPHandler) registerCatalogRoutes(catalog fiber.Router, f catalogFields) {
	catalog.Get(f.path, h.listCatalog(f))
	catalog.Post(f.path, h.addCatalog(f))
	catalog.Put(f.path, h.renameCatalog(f))
	catalog.Delete(f.path+"/:"+f.param, h.deleteCatalog(f))
}

func (h *HTTPHandler) listCatalog(f catalogFields) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := h.CatalogUC.List(c.UserContext(), f.kind)
		if err != nil {
			return h.respondError(c, err, f.listError)
		}
		return c.JSON(list)
	}
}

func (h *HTTPHandler) addCatalog(f catalogFields) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body catalogBody
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msgInvalidBody})
		}

		name, _, _ := body.names(f.kind)
		list, err := h.CatalogUC.Add(c.UserContext(), f.kind, name)
		if err != nil {
			return h.respondError(c, err, f.addError)
		}
		return c.Status(fiber.StatusCreated).JSON(list)
	}
}

func (h *HTTPHandler) renameCatalog(f catalogFields) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body catalogBody
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msgInvalidBody})
		}

		_, oldName, newName := body.names(f.kind)
		list, err := h.CatalogUC.Rename(c.UserContext(), f.kind, oldName, newName)
		if err != nil {
			return h.respondError(c, err, f.editError)
		}
		return c.JSON(list)
	}
}

func (h *HTTPHandler) deleteCatalog(f catalogFields) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := h.CatalogUC.Delete(c.UserContext(), f.kind, param(c, f.param))
		if err != nil {
			return h.respondError(c, err, f.delError)
		}
		return c.JSON(list)
	}
}

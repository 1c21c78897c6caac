package http

import (
	"metadata-backoffice/internal/backoffice/usecase"
	"metadata-backoffice/internal/shared/errors"
	"metadata-backoffice/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// HTTPHandler serves the backoffice REST API consumed by the admin UI
type HTTPHandler struct {
	CatalogUC    usecase.CatalogUsecaseInterface
	MetadataUC   usecase.MetadataUsecaseInterface
	MockUC       usecase.MockUsecaseInterface
	ChangeFeedUC usecase.ChangeFeedUsecaseInterface
	Log          logger.Logger

	// ShowErrorDetails adds the cause of 500 responses to the body. Off in production.
	ShowErrorDetails bool
}

// NewBackofficeHTTPHandler creates a new HTTPHandler
func NewBackofficeHTTPHandler(
	catalogUC usecase.CatalogUsecaseInterface,
	metadataUC usecase.MetadataUsecaseInterface,
	mockUC usecase.MockUsecaseInterface,
	changeFeedUC usecase.ChangeFeedUsecaseInterface,
	log logger.Logger,
	showErrorDetails bool,
) *HTTPHandler {
	return &HTTPHandler{
		CatalogUC:        catalogUC,
		MetadataUC:       metadataUC,
		MockUC:           mockUC,
		ChangeFeedUC:     changeFeedUC,
		Log:              log.WithComponent("http"),
		ShowErrorDetails: showErrorDetails,
	}
}

func (h *HTTPHandler) RegisterRoutes(router fiber.Router) {
	api := router.Group("/api")

	catalog := api.Group("/catalog")
	h.registerCatalogRoutes(catalog, countryFields)
	h.registerCatalogRoutes(catalog, deviceFields)

	api.Get("/metadata", h.GetAllMetadata)
	api.Get("/metadata/:country", h.GetMetadataByCountry)
	api.Get("/metadata/:country/:device", h.GetMetadataByCountryAndDevice)
	api.Post("/metadata", h.CreateMetadata)
	api.Put("/metadata/:id", h.UpdateMetadata)
	api.Delete("/metadata/:id", h.DeleteMetadata)

	api.Post("/mock", h.CreateMock)
	api.Get("/mock", h.ListMocks)
	api.Get("/mock/:mockId", h.GetMock)
	api.Delete("/mock/:mockId", h.DeleteMock)

	if h.ChangeFeedUC != nil {
		api.Get("/changes", h.ListChanges)
	}
}

// respondError answers catalog and metadata routes with {"error": message}.
func (h *HTTPHandler) respondError(c *fiber.Ctx, err error, fallback string) error {
	status := errors.HTTPStatus(err)
	if status < fiber.StatusInternalServerError {
		return c.Status(status).JSON(fiber.Map{"error": clientMessage(err)})
	}

	h.Log.WithContext(c.UserContext()).WithFields(map[string]interface{}{
		"path":  c.Path(),
		"error": err.Error(),
	}).Error(fallback)

	body := fiber.Map{"error": fallback}
	if h.ShowErrorDetails {
		body["details"] = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}

// respondMockError answers mock routes with {"error": true, "message": message}.
func (h *HTTPHandler) respondMockError(c *fiber.Ctx, err error, fallback string) error {
	status := errors.HTTPStatus(err)
	if status < fiber.StatusInternalServerError {
		return c.Status(status).JSON(fiber.Map{"error": true, "message": clientMessage(err)})
	}

	h.Log.WithContext(c.UserContext()).WithFields(map[string]interface{}{
		"path":  c.Path(),
		"error": err.Error(),
	}).Error(fallback)

	body := fiber.Map{"error": true, "message": fallback}
	if h.ShowErrorDetails {
		body["details"] = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}

func clientMessage(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		return appErr.Message
	}
	return err.Error()
}

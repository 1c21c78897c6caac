package backoffice

import (
	httpadapter "metadata-backoffice/internal/backoffice/adapter/http"
	"metadata-backoffice/internal/backoffice/adapter/persistence"
	"metadata-backoffice/internal/backoffice/config"
	"metadata-backoffice/internal/backoffice/domain/repository"
	"metadata-backoffice/internal/backoffice/usecase"
	"metadata-backoffice/internal/shared/docstore"
	"metadata-backoffice/internal/shared/eventbus"
	"metadata-backoffice/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// BackofficeModule wires the catalog, metadata and mock features over one document store.
type BackofficeModule struct {
	Config *config.Config
	Logger logger.Logger
	Bus    *eventbus.EventBus

	CatalogRepo  repository.CatalogRepository
	MetadataRepo repository.MetadataRepository
	MockRepo     repository.MockRepository

	CatalogUsecase    usecase.CatalogUsecaseInterface
	MetadataUsecase   usecase.MetadataUsecaseInterface
	MockUsecase       usecase.MockUsecaseInterface
	ChangeFeedUsecase *usecase.ChangeFeedUsecase

	HTTPHandler *httpadapter.HTTPHandler
	ChangeFeed  *httpadapter.ChangeFeed
	WSHandler   *httpadapter.WebSocketHandler
}

// NewBackofficeModule creates the module. changeLog may be nil, which disables
// the /api/changes history but keeps the live WebSocket feed.
func NewBackofficeModule(cfg *config.Config, store docstore.DocumentStore, changeLog repository.ChangeLog, log logger.Logger) *BackofficeModule {
	log.Info("Initializing Backoffice Module...")

	bus := eventbus.NewEventBus(log.WithComponent("eventbus"))

	catalogRepo := persistence.NewCatalogRepository(store)
	metadataRepo := persistence.NewMetadataRepository(store)
	mockRepo := persistence.NewMockRepository(store)
	legacyMocks := persistence.NewLegacyMockDirectory(cfg.Storage.LegacyMocksDir, log)

	catalogUC := usecase.NewCatalogUsecase(catalogRepo, metadataRepo, bus, log)
	metadataUC := usecase.NewMetadataUsecase(metadataRepo, bus, log)
	mockUC := usecase.NewMockUsecase(mockRepo, legacyMocks, bus, log)

	changeFeedUC := usecase.NewChangeFeedUsecase(changeLog, log)
	if changeFeedUC.Enabled() {
		bus.Subscribe(eventbus.WildcardEventType, changeFeedUC.Record)
		log.Info("Change log recording enabled")
	}

	// The handler field stays a nil interface when history is off, so the route is not registered.
	var changeFeedAPI usecase.ChangeFeedUsecaseInterface
	if changeFeedUC.Enabled() {
		changeFeedAPI = changeFeedUC
	}
	handler := httpadapter.NewBackofficeHTTPHandler(catalogUC, metadataUC, mockUC, changeFeedAPI, log, !cfg.IsProduction())

	module := &BackofficeModule{
		Config:            cfg,
		Logger:            log,
		Bus:               bus,
		CatalogRepo:       catalogRepo,
		MetadataRepo:      metadataRepo,
		MockRepo:          mockRepo,
		CatalogUsecase:    catalogUC,
		MetadataUsecase:   metadataUC,
		MockUsecase:       mockUC,
		ChangeFeedUsecase: changeFeedUC,
		HTTPHandler:       handler,
	}

	if cfg.Server.WebSocketEnabled {
		module.ChangeFeed = httpadapter.NewChangeFeed(log)
		module.ChangeFeed.Attach(bus)
		module.WSHandler = httpadapter.NewWebSocketHandler(module.ChangeFeed, log)
	}

	log.Info("Backoffice Module initialized successfully.")
	return module
}

// RegisterRoutes registers the REST API and, when enabled, the WebSocket feed.
func (m *BackofficeModule) RegisterRoutes(router fiber.Router) {
	m.HTTPHandler.RegisterRoutes(router)
	if m.WSHandler != nil {
		m.WSHandler.RegisterRoutes(router)
	}
}

// Stop detaches every bus subscriber.
func (m *BackofficeModule) Stop() {
	m.Bus.Reset()
	m.Logger.Info("Backoffice Module stopped")
}

package http

import (
	"context"
	"encoding/json"
	"io"

	"metadata-backoffice/internal/backoffice/domain/model"
	"metadata-backoffice/internal/backoffice/usecase"
	"metadata-backoffice/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
)

type MockCatalogUC struct {
	mock.Mock
}

func (m *MockCatalogUC) List(ctx context.Context, kind model.CatalogKind) ([]string, error) {
	args := m.Called(ctx, kind)
	return stringsOrNil(args.Get(0)), args.Error(1)
}

func (m *MockCatalogUC) Add(ctx context.Context, kind model.CatalogKind, name string) ([]string, error) {
	args := m.Called(ctx, kind, name)
	return stringsOrNil(args.Get(0)), args.Error(1)
}

func (m *MockCatalogUC) Rename(ctx context.Context, kind model.CatalogKind, oldName, newName string) ([]string, error) {
	args := m.Called(ctx, kind, oldName, newName)
	return stringsOrNil(args.Get(0)), args.Error(1)
}

func (m *MockCatalogUC) Delete(ctx context.Context, kind model.CatalogKind, name string) ([]string, error) {
	args := m.Called(ctx, kind, name)
	return stringsOrNil(args.Get(0)), args.Error(1)
}

func stringsOrNil(v interface{}) []string {
	if v == nil {
		return nil
	}
	return v.([]string)
}

type MockMetadataUC struct {
	mock.Mock
}

func (m *MockMetadataUC) GetAll(ctx context.Context, format string) (usecase.MetadataListing, error) {
	args := m.Called(ctx, format)
	return args.Get(0).(usecase.MetadataListing), args.Error(1)
}

func (m *MockMetadataUC) GetByCountry(ctx context.Context, country, format string) (usecase.MetadataListing, error) {
	args := m.Called(ctx, country, format)
	return args.Get(0).(usecase.MetadataListing), args.Error(1)
}

func (m *MockMetadataUC) GetByCountryAndDevice(ctx context.Context, country, device, format string) (usecase.MetadataListing, error) {
	args := m.Called(ctx, country, device, format)
	return args.Get(0).(usecase.MetadataListing), args.Error(1)
}

func (m *MockMetadataUC) Create(ctx context.Context, req usecase.MetadataRequest) (*model.MetadataEntry, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MetadataEntry), args.Error(1)
}

func (m *MockMetadataUC) Update(ctx context.Context, id string, req usecase.MetadataRequest) (*model.MetadataEntry, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MetadataEntry), args.Error(1)
}

func (m *MockMetadataUC) Delete(ctx context.Context, id string) (*model.MetadataEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MetadataEntry), args.Error(1)
}

type MockMockUC struct {
	mock.Mock
}

func (m *MockMockUC) MigrateLegacy(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockMockUC) EnsureMigrated(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockMockUC) Create(ctx context.Context, req usecase.CreateMockRequest) (*model.MockSummary, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MockSummary), args.Error(1)
}

func (m *MockMockUC) Get(ctx context.Context, id string) (json.RawMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockMockUC) List(ctx context.Context) ([]model.MockSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MockSummary), args.Error(1)
}

func (m *MockMockUC) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockChangeFeedUC struct {
	mock.Mock
}

func (m *MockChangeFeedUC) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *MockChangeFeedUC) Recent(ctx context.Context, limit int) ([]model.ChangeEvent, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChangeEvent), args.Error(1)
}

type testHandler struct {
	app      *fiber.App
	catalog  *MockCatalogUC
	metadata *MockMetadataUC
	mocks    *MockMockUC
	changes  *MockChangeFeedUC
}

func quietLogger() logger.Logger {
	return logger.NewLoggerWithOutput("error", "text", io.Discard)
}

func setupTestHandler(showDetails bool) *testHandler {
	th := &testHandler{
		catalog:  &MockCatalogUC{},
		metadata: &MockMetadataUC{},
		mocks:    &MockMockUC{},
		changes:  &MockChangeFeedUC{},
	}
	handler := NewBackofficeHTTPHandler(th.catalog, th.metadata, th.mocks, th.changes, quietLogger(), showDetails)

	th.app = fiber.New(fiber.Config{ErrorHandler: ErrorHandler(quietLogger(), showDetails)})
	th.app.Use(RequestContext(quietLogger()))
	handler.RegisterRoutes(th.app)
	return th
}

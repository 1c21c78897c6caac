package usecase

import (
	"context"
	"encoding/json"

	"metadata-backoffice/internal/backoffice/domain/model"
)

// CatalogUsecaseInterface manages the country and device allow-lists.
type CatalogUsecaseInterface interface {
	List(ctx context.Context, kind model.CatalogKind) ([]string, error)
	Add(ctx context.Context, kind model.CatalogKind, name string) ([]string, error)
	Rename(ctx context.Context, kind model.CatalogKind, oldName, newName string) ([]string, error)
	Delete(ctx context.Context, kind model.CatalogKind, name string) ([]string, error)
}

// MetadataUsecaseInterface manages configuration entries.
type MetadataUsecaseInterface interface {
	GetAll(ctx context.Context, format string) (MetadataListing, error)
	GetByCountry(ctx context.Context, country, format string) (MetadataListing, error)
	GetByCountryAndDevice(ctx context.Context, country, device, format string) (MetadataListing, error)
	Create(ctx context.Context, req MetadataRequest) (*model.MetadataEntry, error)
	Update(ctx context.Context, id string, req MetadataRequest) (*model.MetadataEntry, error)
	Delete(ctx context.Context, id string) (*model.MetadataEntry, error)
}

// MockUsecaseInterface manages mock endpoints.
type MockUsecaseInterface interface {
	MigrateLegacy(ctx context.Context) (int, error)
	EnsureMigrated(ctx context.Context) (int, error)
	Create(ctx context.Context, req CreateMockRequest) (*model.MockSummary, error)
	Get(ctx context.Context, id string) (json.RawMessage, error)
	List(ctx context.Context) ([]model.MockSummary, error)
	Delete(ctx context.Context, id string) error
}

var (
	_ CatalogUsecaseInterface  = (*CatalogUsecase)(nil)
	_ MetadataUsecaseInterface = (*MetadataUsecase)(nil)
	_ MockUsecaseInterface     = (*MockUsecase)(nil)
)

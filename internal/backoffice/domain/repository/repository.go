package repository

import (
	"context"
	"encoding/json"

	"metadata-backoffice/internal/backoffice/domain/model"
)

// CatalogMutation edits the catalog in place and reports whether it changed.
type CatalogMutation func(catalog *model.Catalog) (changed bool, err error)

// MetadataMutation edits the metadata collection in place and reports whether it changed.
type MetadataMutation func(entries *[]model.MetadataEntry) (changed bool, err error)

// MockMutation edits the mock collection in place and reports whether it changed.
type MockMutation func(mocks *[]model.Mock) (changed bool, err error)

// CatalogRepository persists the catalog document.
type CatalogRepository interface {
	// Get returns the catalog, creating it with the default lists on first access.
	Get(ctx context.Context) (model.Catalog, error)
	// Update runs fn under the catalog lock and persists the result when fn reports a change.
	// A non-nil error from fn leaves the stored catalog untouched.
	Update(ctx context.Context, fn CatalogMutation) (model.Catalog, error)
}

// MetadataRepository persists the metadata entry collection.
type MetadataRepository interface {
	List(ctx context.Context) ([]model.MetadataEntry, error)
	Update(ctx context.Context, fn MetadataMutation) ([]model.MetadataEntry, error)
}

// MockRepository persists the mock collection.
type MockRepository interface {
	List(ctx context.Context) ([]model.Mock, error)
	Update(ctx context.Context, fn MockMutation) ([]model.Mock, error)
}

// LegacyMockFile is one file of the deprecated one-file-per-mock layout.
// Err is set when the file could not be read or is not valid JSON.
type LegacyMockFile struct {
	ID      string
	Content json.RawMessage
	Err     error
}

// LegacyMockSource lists the mocks stored in the deprecated layout.
type LegacyMockSource interface {
	// Scan returns one LegacyMockFile per *.json file, or nothing when the
	// legacy location does not exist.
	Scan(ctx context.Context) ([]LegacyMockFile, error)
}

// ChangeLog keeps a bounded history of change events.
type ChangeLog interface {
	Append(ctx context.Context, event model.ChangeEvent) (string, error)
	// Recent returns up to limit events, newest first.
	Recent(ctx context.Context, limit int) ([]model.ChangeEvent, error)
	Ping(ctx context.Context) error
}

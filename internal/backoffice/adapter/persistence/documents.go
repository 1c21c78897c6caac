package persistence

import (
	"context"

	"metadata-backoffice/internal/backoffice/domain/model"
	"metadata-backoffice/internal/shared/docstore"
)

// Document names inside the storage backend
const (
	CatalogDocument  = "catalog.json"
	MetadataDocument = "metadata.json"
	MocksDocument    = "mocks.json"
)

// EnsureDocuments creates any missing backing document with its default content.
// Existing documents are left untouched.
func EnsureDocuments(ctx context.Context, store docstore.DocumentStore) error {
	defaults := []struct {
		name string
		def  interface{}
	}{
		{CatalogDocument, model.DefaultCatalog()},
		{MetadataDocument, []model.MetadataEntry{}},
		{MocksDocument, []model.Mock{}},
	}
	for _, d := range defaults {
		unlock := store.Lock(d.name)
		err := store.EnsureExists(ctx, d.name, d.def)
		unlock()
		if err != nil {
			return err
		}
	}
	return nil
}

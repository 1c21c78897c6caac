package persistence

import (
	"context"

	"metadata-backoffice/internal/backoffice/domain/model"
	"metadata-backoffice/internal/backoffice/domain/repository"
	"metadata-backoffice/internal/shared/docstore"
)

// CatalogRepository stores the catalog as a single document.
type CatalogRepository struct {
	store docstore.DocumentStore
}

var _ repository.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a catalog repository over store
func NewCatalogRepository(store docstore.DocumentStore) *CatalogRepository {
	return &CatalogRepository{store: store}
}

func (r *CatalogRepository) Get(ctx context.Context) (model.Catalog, error) {
	return docstore.Load(ctx, r.store, CatalogDocument, model.DefaultCatalog())
}

func (r *CatalogRepository) Update(ctx context.Context, fn repository.CatalogMutation) (model.Catalog, error) {
	return docstore.Mutate(ctx, r.store, CatalogDocument, model.DefaultCatalog(), fn)
}

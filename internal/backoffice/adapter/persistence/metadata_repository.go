package persistence

import (
	"context"

	"metadata-backoffice/internal/backoffice/domain/model"
	"metadata-backoffice/internal/backoffice/domain/repository"
	"metadata-backoffice/internal/shared/docstore"
)

// MetadataRepository stores all metadata entries as one JSON array.
type MetadataRepository struct {
	store docstore.DocumentStore
}

var _ repository.MetadataRepository = (*MetadataRepository)(nil)

// NewMetadataRepository creates a metadata repository over store
func NewMetadataRepository(store docstore.DocumentStore) *MetadataRepository {
	return &MetadataRepository{store: store}
}

func (r *MetadataRepository) List(ctx context.Context) ([]model.MetadataEntry, error) {
	return docstore.Load(ctx, r.store, MetadataDocument, []model.MetadataEntry{})
}

func (r *MetadataRepository) Update(ctx context.Context, fn repository.MetadataMutation) ([]model.MetadataEntry, error) {
	return docstore.Mutate(ctx, r.store, MetadataDocument, []model.MetadataEntry{}, fn)
}

package persistence

import (
	"context"

	"metadata-backoffice/internal/backoffice/domain/model"
	"metadata-backoffice/internal/backoffice/domain/repository"
	"metadata-backoffice/internal/shared/docstore"
)

// MockRepository stores all mocks as one JSON array.
type MockRepository struct {
	store docstore.DocumentStore
}

var _ repository.MockRepository = (*MockRepository)(nil)

// NewMockRepository creates a mock repository over store
func NewMockRepository(store docstore.DocumentStore) *MockRepository {
	return &MockRepository{store: store}
}

func (r *MockRepository) List(ctx context.Context) ([]model.Mock, error) {
	return docstore.Load(ctx, r.store, MocksDocument, []model.Mock{})
}

func (r *MockRepository) Update(ctx context.Context, fn repository.MockMutation) ([]model.Mock, error) {
	return docstore.Mutate(ctx, r.store, MocksDocument, []model.Mock{}, fn)
}

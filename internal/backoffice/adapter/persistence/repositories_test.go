package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"metadata-backoffice/internal/backoffice/domain/model"
	"metadata-backoffice/internal/shared/docstore"
	"metadata-backoffice/internal/shared/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*docstore.FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := docstore.NewFileStore(dir, logger.NewLoggerWithOutput("error", "text", io.Discard))
	require.NoError(t, err)
	return store, dir
}

func TestCatalogRepository_CreatesDefaultsOnFirstRead(t *testing.T) {
	store, dir := newTestStore(t)
	repo := NewCatalogRepository(store)

	catalog, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultCatalog(), catalog)
	assert.FileExists(t, filepath.Join(dir, CatalogDocument))
}

func TestCatalogRepository_UpdatePersists(t *testing.T) {
	store, _ := newTestStore(t)
	repo := NewCatalogRepository(store)
	ctx := context.Background()

	_, err := repo.Update(ctx, func(c *model.Catalog) (bool, error) {
		c.Countries = append(c.Countries, "Uruguay")
		return true, nil
	})
	require.NoError(t, err)

	catalog, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Contains(t, catalog.Countries, "Uruguay")
}

func TestMetadataRepository_StartsEmptyAndRoundTripsValues(t *testing.T) {
	store, dir := newTestStore(t)
	repo := NewMetadataRepository(store)
	ctx := context.Background()

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	raw, err := os.ReadFile(filepath.Join(dir, MetadataDocument))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	_, err = repo.Update(ctx, func(list *[]model.MetadataEntry) (bool, error) {
		*list = append(*list,
			model.MetadataEntry{ID: "1", Key: "a", Value: model.TextValue("hi")},
			model.MetadataEntry{ID: "2", Key: "b", Value: model.JSONValue(json.RawMessage(`{"x":1}`))},
		)
		return true, nil
	})
	require.NoError(t, err)

	entries, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.ValueText, entries[0].Value.Kind())
	assert.True(t, entries[1].Value.IsStructured())
}

func TestMockRepository_FailedUpdateLeavesDocument(t *testing.T) {
	store, _ := newTestStore(t)
	repo := NewMockRepository(store)
	ctx := context.Background()

	_, err := repo.Update(ctx, func(mocks *[]model.Mock) (bool, error) {
		*mocks = append(*mocks, model.Mock{ID: "abc"})
		return false, errors.New("boom")
	})
	require.Error(t, err)

	mocks, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, mocks)
}

func TestLegacyMockDirectory_Scan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abc.json"), []byte(`{"foo":1}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{nope`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`ignored`), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o755))

	source := NewLegacyMockDirectory(dir, logger.NewLoggerWithOutput("error", "text", io.Discard))
	files, err := source.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "abc", files[0].ID)
	assert.NoError(t, files[0].Err)
	assert.JSONEq(t, `{"foo":1}`, string(files[0].Content))

	assert.Equal(t, "broken", files[1].ID)
	assert.Error(t, files[1].Err)
}

func TestLegacyMockDirectory_MissingDirectory(t *testing.T) {
	source := NewLegacyMockDirectory(filepath.Join(t.TempDir(), "absent"), logger.NewLoggerWithOutput("error", "text", io.Discard))
	files, err := source.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestEnsureDocuments_CreatesMissingAndKeepsExisting(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	existing := []byte(`[{"id":"m1","name":"kept","data":{},"url":"/api/mock/m1","createdAt":"2024-01-01T00:00:00.000Z"}]`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, MocksDocument), existing, 0o644))

	require.NoError(t, EnsureDocuments(ctx, store))

	assert.FileExists(t, filepath.Join(dir, CatalogDocument))
	assert.FileExists(t, filepath.Join(dir, MetadataDocument))

	mocks, err := NewMockRepository(store).List(ctx)
	require.NoError(t, err)
	require.Len(t, mocks, 1)
	assert.Equal(t, "kept", mocks[0].Name)
}

func TestMockRepository_DataReadsBackCompact(t *testing.T) {
	store, _ := newTestStore(t)
	repo := NewMockRepository(store)
	ctx := context.Background()

	_, err := repo.Update(ctx, func(mocks *[]model.Mock) (bool, error) {
		*mocks = append(*mocks, model.Mock{ID: "abc", Data: json.RawMessage(`{"a":[1,2,3]}`)})
		return true, nil
	})
	require.NoError(t, err)

	mocks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, mocks, 1)
	assert.Equal(t, `{"a":[1,2,3]}`, string(mocks[0].Data))
}

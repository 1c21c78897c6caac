package docstore

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	apperrors "metadata-backoffice/internal/shared/errors"
	"metadata-backoffice/internal/shared/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestMongoStore connects to MONGODB_URI and skips the test when it is unset or unreachable.
func newTestMongoStore(t *testing.T) *MongoStore {
	t.Helper()
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set, skipping MongoDB tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := ConnectMongo(ctx, uri)
	if err != nil {
		t.Skip("MongoDB not available for testing:", err)
	}

	database := "backoffice_test_" + uuid.NewString()[:8]
	store := NewMongoStore(client, database, "documents", logger.NewLoggerWithOutput("error", "text", io.Discard))
	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cleanupCancel()
		_ = client.Database(database).Drop(cleanupCtx)
		_ = store.Close(cleanupCtx)
	})
	return store
}

func TestMongoStore_RoundTrip(t *testing.T) {
	store := newTestMongoStore(t)
	ctx := context.Background()

	require.NoError(t, store.EnsureExists(ctx, "mocks.json", []interface{}{}))
	require.NoError(t, store.Write(ctx, "mocks.json", []map[string]interface{}{{"id": "abc", "data": map[string]interface{}{"a": 1.0}}}))
	require.NoError(t, store.EnsureExists(ctx, "mocks.json", []interface{}{}))

	var got []map[string]interface{}
	require.NoError(t, store.Read(ctx, "mocks.json", &got))
	require.Len(t, got, 1)
	assert.Equal(t, "abc", got[0]["id"])
	assert.NoError(t, store.Ping(ctx))
}

func TestMongoStore_ReadMissing(t *testing.T) {
	store := newTestMongoStore(t)

	var got []string
	err := store.Read(context.Background(), "absent.json", &got)
	assert.ErrorIs(t, err, apperrors.ErrDocumentMissing)
}

func TestMongoStore_MutateThroughInterface(t *testing.T) {
	store := newTestMongoStore(t)
	ctx := context.Background()

	var ds DocumentStore = store
	_, err := Mutate(ctx, ds, "catalog.json", []string{"Chile"}, func(doc *[]string) (bool, error) {
		*doc = append(*doc, "Perú")
		return true, nil
	})
	require.NoError(t, err)

	got, err := Load(ctx, ds, "catalog.json", []string{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chile", "Perú"}, got)
}

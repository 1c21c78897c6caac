package usecase

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"metadata-backoffice/internal/backoffice/adapter/persistence"
	"metadata-backoffice/internal/backoffice/domain/model"
	"metadata-backoffice/internal/shared/docstore"
	"metadata-backoffice/internal/shared/eventbus"
	"metadata-backoffice/internal/shared/logger"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	dir      string
	store    *docstore.FileStore
	catalog  *persistence.CatalogRepository
	metadata *persistence.MetadataRepository
	mocks    *persistence.MockRepository
	bus      *eventbus.EventBus
	log      logger.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.NewLoggerWithOutput("error", "text", io.Discard)
	dir := t.TempDir()
	store, err := docstore.NewFileStore(dir, log)
	require.NoError(t, err)

	return &testEnv{
		dir:      dir,
		store:    store,
		catalog:  persistence.NewCatalogRepository(store),
		metadata: persistence.NewMetadataRepository(store),
		mocks:    persistence.NewMockRepository(store),
		bus:      eventbus.NewEventBus(log),
		log:      log,
	}
}

// seedMetadata writes entries straight to the metadata document.
func (e *testEnv) seedMetadata(t *testing.T, entries ...model.MetadataEntry) {
	t.Helper()
	_, err := e.metadata.Update(context.Background(), func(list *[]model.MetadataEntry) (bool, error) {
		*list = append(*list, entries...)
		return true, nil
	})
	require.NoError(t, err)
}

// eventRecorder collects every event published on a bus.
type eventRecorder struct {
	mu     sync.Mutex
	events []eventbus.Event
	seen   chan struct{}
}

func recordEvents(bus *eventbus.EventBus) *eventRecorder {
	r := &eventRecorder{seen: make(chan struct{}, 64)}
	bus.Subscribe(eventbus.WildcardEventType, func(ctx context.Context, event eventbus.Event) error {
		r.mu.Lock()
		r.events = append(r.events, event)
		r.mu.Unlock()
		r.seen <- struct{}{}
		return nil
	})
	return r
}

// waitFor blocks until n events arrived and returns them.
func (r *eventRecorder) waitFor(t *testing.T, n int) []eventbus.Event {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-r.seen:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d of %d", i+1, n)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]eventbus.Event(nil), r.events...)
}

func fixedClock(ts time.Time) func() model.Timestamp {
	return func() model.Timestamp { return model.NewTimestamp(ts) }
}

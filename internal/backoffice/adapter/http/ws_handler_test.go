package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"

	"metadata-backoffice/internal/backoffice/domain/model"
	"metadata-backoffice/internal/shared/eventbus"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	mu       sync.Mutex
	messages []WebSocketMessage
	fail     bool
}

func (w *recordingWriter) WriteJSON(v interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail {
		return errors.New("broken pipe")
	}
	w.messages = append(w.messages, v.(WebSocketMessage))
	return nil
}

func (w *recordingWriter) received() []WebSocketMessage {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]WebSocketMessage(nil), w.messages...)
}

func TestChangeFeed_BroadcastsBusEvents(t *testing.T) {
	feed := NewChangeFeed(quietLogger())
	bus := eventbus.NewEventBus(quietLogger())
	feed.Attach(bus)

	first := &recordingWriter{}
	second := &recordingWriter{}
	feed.Add("first", first)
	feed.Add("second", second)

	event := eventbus.NewBasicEventWithSource(eventbus.EventTypeCatalogCountryAdded,
		model.CatalogChange{Kind: model.CatalogCountries, Name: "PE"}, "catalog_usecase")
	require.NoError(t, bus.Publish(context.Background(), event))

	for _, w := range []*recordingWriter{first, second} {
		msgs := w.received()
		require.Len(t, msgs, 1)
		assert.Equal(t, "change", msgs[0].Type)

		change, ok := msgs[0].Data.(model.ChangeEvent)
		require.True(t, ok)
		assert.Equal(t, eventbus.EventTypeCatalogCountryAdded, change.Type)
		assert.Equal(t, "catalog_usecase", change.Source)

		var payload model.CatalogChange
		require.NoError(t, json.Unmarshal(change.Data, &payload))
		assert.Equal(t, "PE", payload.Name)
	}
}

func TestChangeFeed_DropsFailingSubscribers(t *testing.T) {
	feed := NewChangeFeed(quietLogger())
	healthy := &recordingWriter{}
	feed.Add("healthy", healthy)
	feed.Add("broken", &recordingWriter{fail: true})
	require.Equal(t, 2, feed.SubscriberCount())

	feed.Broadcast(model.ChangeEvent{Type: eventbus.EventTypeMockDeleted, Timestamp: fixedTime})

	assert.Equal(t, 1, feed.SubscriberCount())
	assert.Len(t, healthy.received(), 1)
}

func TestChangeFeed_Remove(t *testing.T) {
	feed := NewChangeFeed(quietLogger())
	feed.Add("a", &recordingWriter{})
	feed.Remove("a")
	feed.Remove("missing")

	assert.Equal(t, 0, feed.SubscriberCount())
}

func TestWebSocketHandler_RejectsPlainHTTP(t *testing.T) {
	app := fiber.New()
	NewWebSocketHandler(NewChangeFeed(quietLogger()), quietLogger()).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/ws/changes", nil), -1)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

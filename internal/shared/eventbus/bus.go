package eventbus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"metadata-backoffice/internal/shared/logger"
)

// WildcardEventType subscribes a handler to every published event
const WildcardEventType = "*"

// Event is a change notification published by a usecase.
type Event interface {
	Type() string
	Data() interface{}
	Timestamp() time.Time
	Source() string
}

// Handler reacts to a published event.
type Handler func(ctx context.Context, event Event) error

// EventBusInterface is the publishing side the usecases depend on.
type EventBusInterface interface {
	Subscribe(eventType string, handler Handler)
	Publish(ctx context.Context, event Event) error
	PublishAndForget(ctx context.Context, event Event)
	Unsubscribe(eventType string)
	GetSubscriberCount(eventType string) int
}

// EventBus fans events out to in-process handlers. Handlers run one after another
// on the publishing goroutine, type subscribers before wildcard subscribers.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   logger.Logger
}

// NewEventBus returns an empty bus. A nil log discards bus diagnostics.
func NewEventBus(log logger.Logger) *EventBus {
	if log == nil {
		log = logger.NewLoggerWithOutput("error", "text", io.Discard)
	}
	return &EventBus{
		handlers: make(map[string][]Handler),
		logger:   log,
	}
}

// Subscribe registers handler for eventType, or for everything with WildcardEventType.
func (eb *EventBus) Subscribe(eventType string, handler Handler) {
	eb.mu.Lock()
	eb.handlers[eventType] = append(eb.handlers[eventType], handler)
	eb.mu.Unlock()
	eb.logger.Debugf("Subscribed handler for event type: %s", eventType)
}

// Publish delivers event to every matching handler. A failing handler does not stop
// delivery to the rest; all failures are joined into the returned error.
func (eb *EventBus) Publish(ctx context.Context, event Event) error {
	targets := eb.targets(event.Type())
	if len(targets) == 0 {
		return nil
	}

	var errs []error
	for i, handle := range targets {
		if err := handle(ctx, event); err != nil {
			eb.logger.Errorf("Handler %d failed for event %s: %v", i, event.Type(), err)
			errs = append(errs, fmt.Errorf("%s handler %d: %w", event.Type(), i, err))
		}
	}
	return errors.Join(errs...)
}

// targets snapshots the handlers for eventType so Publish runs without holding the lock.
func (eb *EventBus) targets(eventType string) []Handler {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	direct := eb.handlers[eventType]
	wildcard := eb.handlers[WildcardEventType]
	if eventType == WildcardEventType {
		wildcard = nil
	}
	out := make([]Handler, 0, len(direct)+len(wildcard))
	out = append(out, direct...)
	return append(out, wildcard...)
}

// PublishAndForget publishes on a new goroutine and only logs failures.
func (eb *EventBus) PublishAndForget(ctx context.Context, event Event) {
	go func() {
		if err := eb.Publish(ctx, event); err != nil {
			eb.logger.Warnf("Event %s was not fully delivered: %v", event.Type(), err)
		}
	}()
}

// Unsubscribe drops every handler registered for eventType.
func (eb *EventBus) Unsubscribe(eventType string) {
	eb.mu.Lock()
	delete(eb.handlers, eventType)
	eb.mu.Unlock()
}

// Reset drops every handler.
func (eb *EventBus) Reset() {
	eb.mu.Lock()
	eb.handlers = make(map[string][]Handler)
	eb.mu.Unlock()
}

// GetSubscriberCount returns the number of handlers for eventType.
func (eb *EventBus) GetSubscriberCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.handlers[eventType])
}

// BasicEvent is the Event every usecase publishes.
type BasicEvent struct {
	eventType string
	data      interface{}
	timestamp time.Time
	source    string
}

// NewBasicEvent builds an event stamped with the current time and an unknown source.
func NewBasicEvent(eventType string, data interface{}) Event {
	return NewBasicEventWithSource(eventType, data, "unknown")
}

// NewBasicEventWithSource builds an event emitted by source.
func NewBasicEventWithSource(eventType string, data interface{}, source string) Event {
	return &BasicEvent{eventType: eventType, data: data, timestamp: time.Now(), source: source}
}

func (e *BasicEvent) Type() string         { return e.eventType }
func (e *BasicEvent) Data() interface{}    { return e.data }
func (e *BasicEvent) Timestamp() time.Time { return e.timestamp }
func (e *BasicEvent) Source() string       { return e.source }

// Change event types emitted by the backoffice usecases
const (
	EventTypeCatalogCountryAdded   = "catalog.country.added"
	EventTypeCatalogCountryRenamed = "catalog.country.renamed"
	EventTypeCatalogCountryDeleted = "catalog.country.deleted"
	EventTypeCatalogDeviceAdded    = "catalog.device.added"
	EventTypeCatalogDeviceRenamed  = "catalog.device.renamed"
	EventTypeCatalogDeviceDeleted  = "catalog.device.deleted"
	EventTypeMetadataCreated       = "metadata.created"
	EventTypeMetadataUpdated       = "metadata.updated"
	EventTypeMetadataDeleted       = "metadata.deleted"
	EventTypeMockCreated           = "mock.created"
	EventTypeMockDeleted           = "mock.deleted"
	EventTypeMocksMigrated         = "mock.migrated"
)

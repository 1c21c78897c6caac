package usecase

import (
	"context"

	"metadata-backoffice/internal/shared/eventbus"
)

// eventPublisher announces mutations on the event bus without blocking the caller.
type eventPublisher struct {
	bus    eventbus.EventBusInterface
	source string
}

func (p eventPublisher) publish(ctx context.Context, eventType string, data interface{}) {
	if p.bus == nil {
		return
	}
	p.bus.PublishAndForget(context.WithoutCancel(ctx), eventbus.NewBasicEventWithSource(eventType, data, p.source))
}

package pubsub

import (
	"context"

	"github.com/orris-inc/servicedesk/internal/shared/hubprotocol"
)

// EventPublisher encodes hub frames and hands them to a Broker. It is the
// realtime channel used by the notifier and the ticket use cases.
type EventPublisher struct {
	broker Broker
}

func NewEventPublisher(b Broker) *EventPublisher {
	return &EventPublisher{broker: b}
}

func (p *EventPublisher) PublishEvent(ctx context.Context, topic, event string, data any) error {
	frame, err := hubprotocol.Encode(event, data)
	if err != nil {
		return err
	}
	return p.broker.Publish(ctx, topic, frame)
}

// Package pubsub routes hub frames to topic subscribers inside one process
// and, optionally, across instances through redis.
package pubsub

import (
	"context"
	"sync"
)

// Handler receives a payload published to topic. Handlers run on the
// publisher's goroutine and must not block.
type Handler func(topic string, payload []byte)

type Broker interface {
	Subscribe(topic, subscriberID string, h Handler)
	Publish(ctx context.Context, topic string, payload []byte) error
	Unsubscribe(topic, subscriberID string)
	UnsubscribeAll(subscriberID string)
}

var _ Broker = (*MemoryBroker)(nil)

// MemoryBroker keeps no history: a publish reaches whoever is subscribed at
// that moment.
type MemoryBroker struct {
	mu     sync.RWMutex
	topics map[string]map[string]Handler
	// bySubscriber indexes topics per subscriber for UnsubscribeAll.
	bySubscriber map[string]map[string]struct{}
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		topics:       make(map[string]map[string]Handler),
		bySubscriber: make(map[string]map[string]struct{}),
	}
}

// Subscribe replaces any earlier handler of the same subscriber on topic.
func (b *MemoryBroker) Subscribe(topic, subscriberID string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.topics[topic]
	if !ok {
		subs = make(map[string]Handler)
		b.topics[topic] = subs
	}
	subs[subscriberID] = h

	owned, ok := b.bySubscriber[subscriberID]
	if !ok {
		owned = make(map[string]struct{})
		b.bySubscriber[subscriberID] = owned
	}
	owned[topic] = struct{}{}
}

func (b *MemoryBroker) Publish(_ context.Context, topic string, payload []byte) error {
	b.mu.RLock()
	subs := b.topics[topic]
	handlers := make([]Handler, 0, len(subs))
	for _, h := range subs {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(topic, payload)
	}
	return nil
}

func (b *MemoryBroker) Unsubscribe(topic, subscriberID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removeLocked(topic, subscriberID)
}

func (b *MemoryBroker) UnsubscribeAll(subscriberID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for topic := range b.bySubscriber[subscriberID] {
		b.removeLocked(topic, subscriberID)
	}
	delete(b.bySubscriber, subscriberID)
}

func (b *MemoryBroker) removeLocked(topic, subscriberID string) {
	if subs, ok := b.topics[topic]; ok {
		delete(subs, subscriberID)
		if len(subs) == 0 {
			delete(b.topics, topic)
		}
	}
	if owned, ok := b.bySubscriber[subscriberID]; ok {
		delete(owned, topic)
		if len(owned) == 0 {
			delete(b.bySubscriber, subscriberID)
		}
	}
}

// Subscribers lists the subscriber ids of topic.
func (b *MemoryBroker) Subscribers(topic string) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]string, 0, len(b.topics[topic]))
	for id := range b.topics[topic] {
		out = append(out, id)
	}
	return out
}

// Topics lists the topics a subscriber holds.
func (b *MemoryBroker) Topics(subscriberID string) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]string, 0, len(b.bySubscriber[subscriberID]))
	for t := range b.bySubscriber[subscriberID] {
		out = append(out, t)
	}
	return out
}

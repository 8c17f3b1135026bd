package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

const (
	minBackoff = time.Second
	maxBackoff = 30 * time.Second
)

// relayEnvelope is what travels on the redis channel.
type relayEnvelope struct {
	InstanceID string `json:"instance_id"`
	Topic      string `json:"topic"`
	Payload    []byte `json:"payload"`
}

var _ Broker = (*RedisRelay)(nil)

// RedisRelay delivers publishes locally and fans them out to other instances.
// Frames coming back from redis with this instance's id are dropped.
type RedisRelay struct {
	local      *MemoryBroker
	client     redis.UniversalClient
	channel    string
	instanceID string
	logger     logger.Interface

	readyOnce sync.Once
	ready     chan struct{}
}

func NewRedisRelay(local *MemoryBroker, client redis.UniversalClient, channel string, log logger.Interface) *RedisRelay {
	return &RedisRelay{
		local:      local,
		client:     client,
		channel:    channel,
		instanceID: uuid.NewString(),
		logger:     log.With("component", "pubsub.relay"),
		ready:      make(chan struct{}),
	}
}

func (r *RedisRelay) InstanceID() string { return r.instanceID }

// Ready is closed once the first redis subscription is confirmed.
func (r *RedisRelay) Ready() <-chan struct{} { return r.ready }

func (r *RedisRelay) Subscribe(topic, subscriberID string, h Handler) {
	r.local.Subscribe(topic, subscriberID, h)
}

func (r *RedisRelay) Unsubscribe(topic, subscriberID string) {
	r.local.Unsubscribe(topic, subscriberID)
}

func (r *RedisRelay) UnsubscribeAll(subscriberID string) {
	r.local.UnsubscribeAll(subscriberID)
}

// Publish never fails local delivery because of redis; the redis error is
// still returned to the caller for logging.
func (r *RedisRelay) Publish(ctx context.Context, topic string, payload []byte) error {
	_ = r.local.Publish(ctx, topic, payload)

	data, err := json.Marshal(relayEnvelope{InstanceID: r.instanceID, Topic: topic, Payload: payload})
	if err != nil {
		return fmt.Errorf("failed to marshal relay envelope: %w", err)
	}
	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		r.logger.Warnw("failed to relay frame", "topic", topic, "error", err)
		return fmt.Errorf("failed to relay frame: %w", err)
	}
	return nil
}

// Run consumes the relay channel until ctx is done, reconnecting with
// exponential backoff.
func (r *RedisRelay) Run(ctx context.Context) error {
	backoff := minBackoff
	for {
		connected, err := r.subscribe(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var wait time.Duration
		wait, backoff = reconnectDelay(backoff, connected)
		r.logger.Warnw("relay subscription disconnected, reconnecting",
			"channel", r.channel,
			"error", err,
			"backoff", wait,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func nextBackoff(d time.Duration) time.Duration {
	return min(d*2, maxBackoff)
}

// reconnectDelay returns how long to wait before the next attempt and the
// backoff to carry after it. A session that got subscribed starts over.
func reconnectDelay(current time.Duration, connected bool) (wait, next time.Duration) {
	if connected {
		current = minBackoff
	}
	return current, nextBackoff(current)
}

// subscribe reports whether the subscription was confirmed before it ended.
func (r *RedisRelay) subscribe(ctx context.Context) (bool, error) {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return false, fmt.Errorf("failed to subscribe to channel %s: %w", r.channel, err)
	}
	r.logger.Infow("subscribed to relay channel", "channel", r.channel, "instance_id", r.instanceID)
	r.readyOnce.Do(func() { close(r.ready) })

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return true, ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return true, fmt.Errorf("relay channel closed")
			}
			r.deliver(ctx, msg.Payload)
		}
	}
}

func (r *RedisRelay) deliver(ctx context.Context, raw string) {
	var env relayEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		r.logger.Warnw("failed to unmarshal relay envelope", "error", err)
		return
	}
	if env.InstanceID == r.instanceID || env.Topic == "" {
		return
	}
	_ = r.local.Publish(ctx, env.Topic, env.Payload)
}

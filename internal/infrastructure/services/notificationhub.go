package services

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/orris-inc/servicedesk/internal/infrastructure/pubsub"
	"github.com/orris-inc/servicedesk/internal/shared/authorization"
	"github.com/orris-inc/servicedesk/internal/shared/hubprotocol"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
)

const sendBufferSize = 64

// TicketViewer decides whether a connected user may follow a ticket.
type TicketViewer interface {
	CanView(ctx context.Context, actor authorization.Actor, ticketID uint) (bool, error)
}

// ConnectionObserver is told the number of open connections after each change.
type ConnectionObserver interface {
	SetConnections(n int)
}

// Client is one user's live connection. Frames are queued on Send and
// written by the transport.
type Client struct {
	ID     string
	UserID uint
	Send   chan []byte

	conn    io.Closer
	mu      sync.Mutex
	closed  bool
	tickets map[uint]struct{}
}

// TrySend queues a frame without blocking. A full buffer drops the frame.
func (c *Client) TrySend(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- frame:
		return true
	default:
		return false
	}
}

func (c *Client) deliver(_ string, payload []byte) {
	c.TrySend(payload)
}

func (c *Client) close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.Send)
	c.mu.Unlock()

	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// NotificationHub maps users to their connection and connections to the
// ticket topics they follow. Routing itself is done by the broker.
type NotificationHub struct {
	broker   pubsub.Broker
	viewer   TicketViewer
	observer ConnectionObserver
	logger   logger.Interface

	mu      sync.RWMutex
	clients map[uint]*Client
}

func NewNotificationHub(broker pubsub.Broker, viewer TicketViewer, observer ConnectionObserver, log logger.Interface) *NotificationHub {
	return &NotificationHub{
		broker:   broker,
		viewer:   viewer,
		observer: observer,
		logger:   log.With("component", "notification.hub"),
		clients:  make(map[uint]*Client),
	}
}

// Register makes conn the user's connection. An older connection of the
// same user is closed and loses its subscriptions.
func (h *NotificationHub) Register(userID uint, conn io.Closer) *Client {
	c := &Client{
		ID:      uuid.NewString(),
		UserID:  userID,
		Send:    make(chan []byte, sendBufferSize),
		conn:    conn,
		tickets: make(map[uint]struct{}),
	}

	h.mu.Lock()
	previous := h.clients[userID]
	h.clients[userID] = c
	count := len(h.clients)
	h.mu.Unlock()

	if previous != nil {
		h.broker.UnsubscribeAll(previous.ID)
		previous.close()
		h.logger.Infow("replaced existing connection", "user_id", userID, "connection_id", previous.ID)
	}

	h.broker.Subscribe(hubprotocol.UserTopic(userID), c.ID, c.deliver)
	h.observe(count)

	if frame, err := hubprotocol.Encode(hubprotocol.EventConnected, hubprotocol.ConnectedData{UserID: userID, ConnectionID: c.ID}); err == nil {
		c.TrySend(frame)
	}

	h.logger.Infow("websocket client connected", "user_id", userID, "connection_id", c.ID)
	return c
}

// Unregister drops every subscription of c. It is a no-op for a connection
// that was already replaced.
func (h *NotificationHub) Unregister(c *Client) {
	h.broker.UnsubscribeAll(c.ID)

	h.mu.Lock()
	if current, ok := h.clients[c.UserID]; ok && current == c {
		delete(h.clients, c.UserID)
	}
	count := len(h.clients)
	h.mu.Unlock()

	c.close()
	h.observe(count)
	h.logger.Infow("websocket client disconnected", "user_id", c.UserID, "connection_id", c.ID)
}

func (h *NotificationHub) observe(n int) {
	if h.observer != nil {
		h.observer.SetConnections(n)
	}
}

// HandleFrame answers one inbound frame from c.
func (h *NotificationHub) HandleFrame(ctx context.Context, c *Client, actor authorization.Actor, raw []byte) {
	frame, err := hubprotocol.Decode(raw)
	if err != nil {
		h.sendError(c, "invalid frame")
		return
	}

	switch frame.Event {
	case hubprotocol.EventPing:
		h.send(c, hubprotocol.EventPong, nil)
	case hubprotocol.EventSubscribeTicket:
		ref, ok := h.ticketRef(c, frame.Data)
		if !ok {
			return
		}
		h.subscribeTicket(ctx, c, actor, ref.TicketID)
	case hubprotocol.EventUnsubscribeTicket:
		ref, ok := h.ticketRef(c, frame.Data)
		if !ok {
			return
		}
		h.unsubscribeTicket(c, ref.TicketID)
	default:
		h.sendError(c, "unknown event: "+frame.Event)
	}
}

func (h *NotificationHub) ticketRef(c *Client, data json.RawMessage) (hubprotocol.TicketRef, bool) {
	var ref hubprotocol.TicketRef
	if err := json.Unmarshal(data, &ref); err != nil || ref.TicketID == 0 {
		h.sendError(c, "ticketId is required")
		return ref, false
	}
	return ref, true
}

func (h *NotificationHub) subscribeTicket(ctx context.Context, c *Client, actor authorization.Actor, ticketID uint) {
	allowed, err := h.viewer.CanView(ctx, actor, ticketID)
	if err != nil {
		h.logger.Errorw("failed to check ticket access", "ticket_id", ticketID, "user_id", c.UserID, "error", err)
		h.sendError(c, "failed to subscribe")
		return
	}
	if !allowed {
		h.sendError(c, "ticket not found")
		return
	}

	h.broker.Subscribe(hubprotocol.TicketTopic(ticketID), c.ID, c.deliver)
	c.mu.Lock()
	c.tickets[ticketID] = struct{}{}
	c.mu.Unlock()

	h.send(c, hubprotocol.EventSubscribed, hubprotocol.TicketRef{TicketID: ticketID})
}

func (h *NotificationHub) unsubscribeTicket(c *Client, ticketID uint) {
	h.broker.Unsubscribe(hubprotocol.TicketTopic(ticketID), c.ID)
	c.mu.Lock()
	delete(c.tickets, ticketID)
	c.mu.Unlock()

	h.send(c, hubprotocol.EventUnsubscribed, hubprotocol.TicketRef{TicketID: ticketID})
}

func (h *NotificationHub) send(c *Client, event string, data any) {
	frame, err := hubprotocol.Encode(event, data)
	if err != nil {
		h.logger.Errorw("failed to encode frame", "event", event, "error", err)
		return
	}
	if !c.TrySend(frame) {
		h.logger.Debugw("dropped frame for slow client", "user_id", c.UserID, "event", event)
	}
}

func (h *NotificationHub) sendError(c *Client, message string) {
	h.send(c, hubprotocol.EventError, hubprotocol.ErrorData{Message: message})
}

// IsConnected reports whether userID has a live connection.
func (h *NotificationHub) IsConnected(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

func (h *NotificationHub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// TicketSubscribers lists the users following ticketID on this instance.
func (h *NotificationHub) TicketSubscribers(ticketID uint) []uint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var out []uint
	for userID, c := range h.clients {
		c.mu.Lock()
		_, ok := c.tickets[ticketID]
		c.mu.Unlock()
		if ok {
			out = append(out, userID)
		}
	}
	return out
}

// CloseAll disconnects every client, used on shutdown.
func (h *NotificationHub) CloseAll() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[uint]*Client)
	h.mu.Unlock()

	for _, c := range clients {
		h.broker.UnsubscribeAll(c.ID)
		c.close()
	}
	h.observe(0)
}

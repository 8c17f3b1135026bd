// Package hubprotocol defines the WebSocket frame envelope, event names and
// pub/sub topics shared by the notification hub and the application layer.
package hubprotocol

import (
	"encoding/json"
	"fmt"
)

// Client -> server events.
const (
	EventSubscribeTicket   = "subscribe:ticket"
	EventUnsubscribeTicket = "unsubscribe:ticket"
	EventPing              = "ping"
)

// Server -> client events.
const (
	EventConnected     = "connected"
	EventPong          = "pong"
	EventSubscribed    = "subscribed"
	EventUnsubscribed  = "unsubscribed"
	EventNotification  = "notification"
	EventTicketUpdated = "ticket:updated"
	EventTicketComment = "ticket:comment"
	EventError         = "error"
)

// Frame is the envelope of every message in both directions.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// TicketRef is the payload of subscribe/unsubscribe frames.
type TicketRef struct {
	TicketID uint `json:"ticketId"`
}

type ConnectedData struct {
	UserID       uint   `json:"userId"`
	ConnectionID string `json:"connectionId"`
}

type ErrorData struct {
	Message string `json:"message"`
}

// Encode serializes an outbound frame.
func Encode(event string, data any) ([]byte, error) {
	f := Frame{Event: event}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", event, err)
		}
		f.Data = raw
	}
	return json.Marshal(f)
}

// Decode parses an inbound frame.
func Decode(b []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("invalid frame: %w", err)
	}
	if f.Event == "" {
		return nil, fmt.Errorf("invalid frame: event is required")
	}
	return &f, nil
}

func UserTopic(userID uint) string { return fmt.Sprintf("user:%d", userID) }

func TicketTopic(ticketID uint) string { return fmt.Sprintf("ticket:%d", ticketID) }

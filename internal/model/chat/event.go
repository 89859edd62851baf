package chat

import "time"

// EventType names the notifications pushed to connected clients.
type EventType string

const (
	EventTyping         EventType = "typing"
	EventMessage        EventType = "message"
	EventReplyCancelled EventType = "reply_cancelled"
	EventArchived       EventType = "archived"
)

// Event is a single notification fanned out over SSE and websocket.
type Event struct {
	Type      EventType `json:"type"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// TypingState is the payload of EventTyping.
type TypingState struct {
	Active bool   `json:"active"`
	BotID  string `json:"botId,omitempty"`
}

// NewEvent stamps an event with the current time.
func NewEvent(typ EventType, data any) Event {
	return Event{Type: typ, Data: data, Timestamp: time.Now().UTC()}
}

package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

const (
	StoreChanged = "events:store:changed"
	ChatStatus   = "events:chat:status"
)

// StoreEvent tells the frontend that a store mutation happened and it should
// re-read the snapshot.
type StoreEvent struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatEvent reports progress of a chat send.
type ChatEvent struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Message    string    `json:"message"`
	Processing bool      `json:"processing"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewStoreEvent(action string) StoreEvent {
	return StoreEvent{
		ID:        uuid.NewString(),
		Action:    action,
		Timestamp: time.Now(),
	}
}

func CreateChatEvent(eventType EventType, message string, processing bool) ChatEvent {
	return ChatEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Message:    message,
		Processing: processing,
		Timestamp:  time.Now(),
	}
}

// NewInfo creates an info ChatEvent.
func NewInfo(message string, processing bool) ChatEvent {
	return CreateChatEvent(EventInfo, message, processing)
}

// NewWarn creates a warn ChatEvent.
func NewWarn(message string, processing bool) ChatEvent {
	return CreateChatEvent(EventWarn, message, processing)
}

// NewError creates an error ChatEvent.
func NewError(message string) ChatEvent {
	return CreateChatEvent(EventError, message, false)
}

// NewSuccess creates a success ChatEvent.
func NewSuccess(message string) ChatEvent {
	return CreateChatEvent(EventSuccess, message, false)
}

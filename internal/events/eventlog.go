// Package events provides the append-only feed of game happenings. The UI
// and audio collaborators consume it as notifications; the engine only ever
// writes to it, never reads it back.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType defines the category of a game event.
type EventType string

const (
	EventTypeGameStarted     EventType = "GAME_STARTED"
	EventTypeGameOver        EventType = "GAME_OVER"
	EventTypePauseToggled    EventType = "PAUSE_TOGGLED"
	EventTypePurchase        EventType = "PURCHASE"
	EventTypeDeliveryArrived EventType = "DELIVERY_ARRIVED"
	EventTypeDeliveryDumped  EventType = "DELIVERY_DUMPED" // arrived on full storage
	EventTypeIngredientSold  EventType = "INGREDIENT_SOLD"
	EventTypeCookStarted     EventType = "COOK_STARTED"
	EventTypeCookCancelled   EventType = "COOK_CANCELLED"
	EventTypeCookComplete    EventType = "COOK_COMPLETE"
	EventTypeDishDiscarded   EventType = "DISH_DISCARDED"
	EventTypeOrderSpawned    EventType = "ORDER_SPAWNED"
	EventTypeOrderServed     EventType = "ORDER_SERVED"
	EventTypeOrderExpired    EventType = "ORDER_EXPIRED"
	EventTypeOrderTrimmed    EventType = "ORDER_TRIMMED" // capacity drop, customer turned away
	EventTypeInstallStarted  EventType = "INSTALL_STARTED"
	EventTypeStoveInstalled  EventType = "STOVE_INSTALLED"
)

// Severity classifies an event for presentation.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// GameEvent is an immutable record of one happening, with a short
// presentation message for the notification surface.
type GameEvent struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Type      EventType   `json:"type"`
	Severity  Severity    `json:"severity"`
	Message   string      `json:"message"`
	Payload   interface{} `json:"payload,omitempty"`
}

// EventPersister defines how an event is durably stored.
type EventPersister interface {
	Append(event GameEvent) error
}

// EventLog is the in-memory append-only log of game events, with an
// optional write-through persister.
type EventLog struct {
	mu        sync.RWMutex
	events    []GameEvent
	persister EventPersister
}

// NewEventLog creates a new event log. persister may be nil.
func NewEventLog(persister EventPersister) *EventLog {
	return &EventLog{
		events:    make([]GameEvent, 0),
		persister: persister,
	}
}

// Append adds a new event to the log. Events are immutable once appended.
// The id and timestamp are filled in if the caller left them zero.
func (el *EventLog) Append(event GameEvent) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	el.mu.Lock()
	el.events = append(el.events, event)
	el.mu.Unlock()

	if el.persister != nil {
		// Write through off the hot path; a failed write loses only the
		// persisted trail, never the in-memory feed.
		go func(e GameEvent) {
			_ = el.persister.Append(e)
		}(event)
	}
}

// Len returns the number of appended events.
func (el *EventLog) Len() int {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return len(el.events)
}

// Since returns a copy of all events appended at or after index n. Pollers
// track their own high-water mark and pass it here.
func (el *EventLog) Since(n int) []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()
	if n < 0 {
		n = 0
	}
	if n >= len(el.events) {
		return nil
	}
	return append([]GameEvent(nil), el.events[n:]...)
}

// Replay returns a copy of the full event history.
func (el *EventLog) Replay() []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return append([]GameEvent(nil), el.events...)
}

package game

import (
	"fmt"
	"time"

	"github.com/lox/videopoker/poker"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for session events
const (
	EventTypeRoundStarted  EventType = "round_started"
	EventTypeDrawCompleted EventType = "draw_completed"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a session
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartedEvent is published after the first deal of a round
type RoundStartedEvent struct {
	Round    int
	Cards    [poker.HandSize]poker.Card
	Category poker.HandCategory
	at       time.Time
}

func (e RoundStartedEvent) EventType() EventType { return EventTypeRoundStarted }
func (e RoundStartedEvent) Timestamp() time.Time { return e.at }

// NewRoundStartedEvent creates a new round started event
func NewRoundStartedEvent(round int, cards [poker.HandSize]poker.Card, category poker.HandCategory, at time.Time) RoundStartedEvent {
	return RoundStartedEvent{
		Round:    round,
		Cards:    cards,
		Category: category,
		at:       at,
	}
}

// DrawCompletedEvent is published when the replacement draw ends a round
type DrawCompletedEvent struct {
	Round    int
	Cards    [poker.HandSize]poker.Card
	Holds    [poker.HandSize]bool
	Replaced int
	Category poker.HandCategory
	at       time.Time
}

func (e DrawCompletedEvent) EventType() EventType { return EventTypeDrawCompleted }
func (e DrawCompletedEvent) Timestamp() time.Time { return e.at }

// NewDrawCompletedEvent creates a new draw completed event
func NewDrawCompletedEvent(round int, cards [poker.HandSize]poker.Card, holds [poker.HandSize]bool, category poker.HandCategory, at time.Time) DrawCompletedEvent {
	replaced := 0
	for _, held := range holds {
		if !held {
			replaced++
		}
	}
	return DrawCompletedEvent{
		Round:    round,
		Cards:    cards,
		Holds:    holds,
		Replaced: replaced,
		Category: category,
		at:       at,
	}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation.
// Delivery is synchronous on the publishing goroutine.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// FormatEvent renders an event as a single log line.
func FormatEvent(event GameEvent) string {
	switch e := event.(type) {
	case RoundStartedEvent:
		return fmt.Sprintf("Round %d dealt: %s (%s)", e.Round, poker.FormatCards(e.Cards[:]), e.Category)
	case DrawCompletedEvent:
		return fmt.Sprintf("Round %d drew %d: %s (%s)", e.Round, e.Replaced, poker.FormatCards(e.Cards[:]), e.Category)
	default:
		return event.EventType().String()
	}
}

package network

import "time"

type EventType string

const (
	EventHello   EventType = "hello"
	EventLaunch  EventType = "launch"
	EventAbility EventType = "ability"
	EventDestroy EventType = "destroy"
	EventCleared EventType = "cleared"
)

// Event is one gameplay notification sent to spectators.
// Fields that do not apply to a type are left zero and omitted on the wire.
type Event struct {
	Type    EventType `json:"type"`
	Session string    `json:"session"`
	Time    time.Time `json:"time"`
	Kind    string    `json:"kind,omitempty"` // bird kind or target kind
	X       float64   `json:"x,omitempty"`
	Y       float64   `json:"y,omitempty"`
	Angle   float64   `json:"angle,omitempty"`
	Impulse float64   `json:"impulse,omitempty"`
	Score   int       `json:"score,omitempty"`
}

// EventSink receives gameplay events. Publish is called from the game loop
// and must not block.
type EventSink interface {
	Publish(Event)
}

// Discard drops every event.
var Discard EventSink = discard{}

type discard struct{}

func (discard) Publish(Event) {}

package events

import "time"

// Kind identifies an event variant on the session pipeline.
type Kind string

// Event is a single typed occurrence flowing through the session pipeline.
type Event interface {
	Kind() Kind
	Timestamp() time.Time
}

// Base carries the fields shared by every pipeline event.
type Base struct {
	kind      Kind
	timestamp time.Time
}

func NewBase(kind Kind) Base {
	return Base{kind: kind, timestamp: time.Now()}
}

func (b Base) Kind() Kind {
	return b.kind
}

func (b Base) Timestamp() time.Time {
	return b.timestamp
}

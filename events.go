package strut

import "github.com/akmonengine/strut/suspension"

const (
	// BOTTOM_OUT fires when a wheel starts exceeding its travel limit
	BOTTOM_OUT EventType = iota
	// AIRBORNE fires when a wheel reaches full extension under rebound
	AIRBORNE
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// BottomOutEvent reports a wheel hitting the mechanical stop.
type BottomOutEvent struct {
	Suspension *suspension.Suspension
	Overtravel float64
}

func (e BottomOutEvent) Type() EventType { return BOTTOM_OUT }

// AirborneEvent reports a wheel fully extending, typically on loss of
// ground contact.
type AirborneEvent struct {
	Suspension *suspension.Suspension
}

func (e AirborneEvent) Type() EventType { return AIRBORNE }

// EventListener - callback for events
type EventListener func(event Event)

// Events tracks per-wheel state edges across ticks and dispatches the
// resulting events to subscribed listeners at flush time.
type Events struct {
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	bottomed map[*suspension.Suspension]bool
	extended map[*suspension.Suspension]bool
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 16),
		bottomed:  make(map[*suspension.Suspension]bool),
		extended:  make(map[*suspension.Suspension]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordWheel buffers the edge events of one wheel after its tick. The
// first observation of a wheel seeds its tracked state without emitting.
func (e *Events) recordWheel(s *suspension.Suspension) {
	bottomed := s.Overtravel() > 0
	extended := s.Displacement() <= 0

	trackedBottomed, known := e.bottomed[s]
	if known && !trackedBottomed && bottomed {
		e.buffer = append(e.buffer, BottomOutEvent{Suspension: s, Overtravel: s.Overtravel()})
	}
	e.bottomed[s] = bottomed

	trackedExtended, known := e.extended[s]
	if known && !trackedExtended && extended {
		e.buffer = append(e.buffer, AirborneEvent{Suspension: s})
	}
	e.extended[s] = extended
}

// forget drops the tracked state of a removed wheel.
func (e *Events) forget(s *suspension.Suspension) {
	delete(e.bottomed, s)
	delete(e.extended, s)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}

package nbody

import (
	"reflect"
	"time"
)

// MaxEventTypes defines the maximum number of unique event types that can be
// registered in the EventBus.
const MaxEventTypes = 256

// StageCompleted is published after a stage has finished for every entity.
type StageCompleted struct {
	Stage   string
	Step    uint64
	Elapsed time.Duration
}

// StepCompleted is published after both stages of a step have finished.
type StepCompleted struct {
	Step     uint64
	Entities int
	Elapsed  time.Duration
}

// EventBus provides a small, type-safe event bus. Harnesses subscribe to step
// events to time or observe the simulation without the scheduler knowing
// about them.
//
// Handlers are called synchronously on the goroutine that publishes, in the
// order they were subscribed. Subscribing is not safe concurrently with
// publishing.
type EventBus struct {
	eventTypeMap    map[reflect.Type]uint8
	handlers        [MaxEventTypes][]any
	nextEventTypeID int
}

// Subscribe registers a handler function to be called when an event of type T
// is published.
func Subscribe[T any](bus *EventBus, handler func(T)) {
	id := bus.getEventTypeID(reflect.TypeFor[T]())
	if cap(bus.handlers[id]) == 0 {
		bus.handlers[id] = make([]any, 0, 4)
	}
	bus.handlers[id] = append(bus.handlers[id], handler)
}

// Publish broadcasts an event of type T to all registered handlers for that
// type. Publishing on a nil bus is a no-op.
func Publish[T any](bus *EventBus, event T) {
	if bus == nil {
		return
	}
	if id, ok := bus.eventTypeMap[reflect.TypeFor[T]()]; ok {
		for _, h := range bus.handlers[id] {
			h.(func(T))(event)
		}
	}
}

// getEventTypeID retrieves or assigns an ID for the event type.
func (bus *EventBus) getEventTypeID(t reflect.Type) uint8 {
	if bus.eventTypeMap == nil {
		bus.eventTypeMap = make(map[reflect.Type]uint8)
	}
	if id, ok := bus.eventTypeMap[t]; ok {
		return id
	}
	if bus.nextEventTypeID >= MaxEventTypes {
		panic("nbody: too many event types")
	}
	id := uint8(bus.nextEventTypeID)
	bus.nextEventTypeID++
	bus.eventTypeMap[t] = id
	return id
}

package rules

import (
	"sync"
	"time"
)

// EventType indicates the category of a game event.
type EventType string

const (
	// Lifecycle events
	EventPhaseChanged     EventType = "PHASE_CHANGED"
	EventSelectionChanged EventType = "SELECTION_CHANGED"
	EventDeployed         EventType = "DEPLOYED"
	EventReset            EventType = "RESET"

	// Simulation events
	EventTick          EventType = "TICK"
	EventLog           EventType = "LOG"
	EventStageChanged  EventType = "STAGE_CHANGED"
	EventFilterChecked EventType = "FILTER_CHECKED"
	EventFlash         EventType = "FLASH"
	EventOutcome       EventType = "OUTCOME"
	EventReportReady   EventType = "REPORT_READY"
)

// Event is a single notification emitted by a game.
type Event struct {
	Type      EventType         `json:"type"`
	GameID    string            `json:"game_id"`
	Tick      int               `json:"tick,omitempty"`
	Stage     string            `json:"stage,omitempty"`
	Message   string            `json:"message,omitempty"`
	Severity  Severity          `json:"severity"`
	Amount    int               `json:"amount,omitempty"` // resilience, card ID, etc.
	Flag      bool              `json:"flag,omitempty"`   // success of a check or outcome
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type filtering.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener              // All listeners
	typedListeners map[EventType][]TypedListener // Listeners filtered by event type
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle,
// whether it was registered for all events or a single type.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	bus.removeTypedLocked(handle)
}

// UnsubscribeTyped removes a typed listener by handle.
func (bus *EventBus) UnsubscribeTyped(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.removeTypedLocked(handle)
}

func (bus *EventBus) removeTypedLocked(handle int) {
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
// Listeners must not subscribe or unsubscribe from inside the callback.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, listener := range bus.listeners {
		listener(event)
	}
	for _, listener := range bus.typedListeners[event.Type] {
		listener.Callback(event)
	}
}

// PublishBatch publishes events in order.
func (bus *EventBus) PublishBatch(events []Event) {
	for _, event := range events {
		bus.Publish(event)
	}
}

// ListenerCount returns the number of registered listeners of both kinds.
func (bus *EventBus) ListenerCount() int {
	bus.mu.RLock()
	defer bus.mu.RUnlock()
	n := len(bus.listeners)
	for _, l := range bus.typedListeners {
		n += len(l)
	}
	return n
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, gameID string) Event {
	return Event{
		Type:      eventType,
		GameID:    gameID,
		Timestamp: time.Now(),
		Metadata:  make(map[string]string),
	}
}

// NewLogEvent creates a log line event.
func NewLogEvent(gameID, message string, severity Severity) Event {
	evt := NewEvent(EventLog, gameID)
	evt.Message = message
	evt.Severity = severity
	return evt
}

// NewEventWithAmount creates a new event with an amount value.
func NewEventWithAmount(eventType EventType, gameID string, amount int) Event {
	evt := NewEvent(eventType, gameID)
	evt.Amount = amount
	return evt
}

// NewEventWithFlag creates a new event with a flag value.
func NewEventWithFlag(eventType EventType, gameID string, flag bool) Event {
	evt := NewEvent(eventType, gameID)
	evt.Flag = flag
	return evt
}

package rules

import (
	"testing"
	"time"
)

func TestEventBusSubscribeTyped(t *testing.T) {
	bus := NewEventBus()

	tickCount := 0
	logCount := 0

	handle1 := bus.SubscribeTyped(EventTick, func(e Event) {
		tickCount++
	})
	handle2 := bus.SubscribeTyped(EventLog, func(e Event) {
		logCount++
	})

	bus.Publish(NewEvent(EventTick, "game1"))
	if tickCount != 1 {
		t.Fatalf("expected tick count 1, got %d", tickCount)
	}
	if logCount != 0 {
		t.Fatalf("expected log count 0, got %d", logCount)
	}

	bus.Publish(NewLogEvent("game1", "Hydrothermal vents active", SeverityInfo))
	if tickCount != 1 {
		t.Fatalf("expected tick count still 1, got %d", tickCount)
	}
	if logCount != 1 {
		t.Fatalf("expected log count 1, got %d", logCount)
	}

	bus.UnsubscribeTyped(handle1)
	bus.Publish(NewEvent(EventTick, "game1"))
	if tickCount != 1 {
		t.Fatalf("expected tick count still 1 after unsubscribe, got %d", tickCount)
	}

	bus.Unsubscribe(handle2)
	bus.Publish(NewLogEvent("game1", "", SeverityInfo))
	if logCount != 1 {
		t.Fatalf("expected log count still 1 after unsubscribe, got %d", logCount)
	}
	if n := bus.ListenerCount(); n != 0 {
		t.Fatalf("expected no listeners, got %d", n)
	}
}

func TestEventBusSubscribeAll(t *testing.T) {
	bus := NewEventBus()

	allEventCount := 0
	handle := bus.Subscribe(func(e Event) {
		allEventCount++
	})

	bus.Publish(NewEvent(EventTick, "game1"))
	bus.Publish(NewEventWithAmount(EventStageChanged, "game1", int(StageWater)))
	bus.Publish(NewEventWithFlag(EventOutcome, "game1", true))

	if allEventCount != 3 {
		t.Fatalf("expected all event count 3, got %d", allEventCount)
	}

	bus.Unsubscribe(handle)
	bus.Publish(NewEvent(EventTick, "game1"))
	if allEventCount != 3 {
		t.Fatalf("expected all event count still 3 after unsubscribe, got %d", allEventCount)
	}
}

func TestEventBusRejectsNilListeners(t *testing.T) {
	bus := NewEventBus()
	if h := bus.Subscribe(nil); h != -1 {
		t.Fatalf("expected -1 for nil listener, got %d", h)
	}
	if h := bus.SubscribeTyped(EventTick, nil); h != -1 {
		t.Fatalf("expected -1 for nil typed listener, got %d", h)
	}
}

func TestEventBusPublishBatchKeepsOrder(t *testing.T) {
	bus := NewEventBus()

	var got []string
	bus.Subscribe(func(e Event) {
		got = append(got, e.Message)
	})

	bus.PublishBatch([]Event{
		NewLogEvent("game1", "Deploying filter array...", SeverityWarning),
		NewLogEvent("game1", "✓ Rare Earth", SeveritySuccess),
		NewLogEvent("game1", "Beginning observation...", SeverityInfo),
	})

	if len(got) != 3 {
		t.Fatalf("expected 3 events after batch publish, got %d", len(got))
	}
	if got[0] != "Deploying filter array..." || got[2] != "Beginning observation..." {
		t.Fatalf("events delivered out of order: %v", got)
	}
}

func TestEventFields(t *testing.T) {
	evt := NewEventWithAmount(EventFilterChecked, "game1", 65)
	evt.Flag = false
	evt.Stage = StageCities.String()
	evt.Metadata["reason"] = "Truth Condition A (Silence) insufficient: 0/15"

	if evt.Type != EventFilterChecked {
		t.Fatalf("expected type EventFilterChecked, got %s", evt.Type)
	}
	if evt.Amount != 65 {
		t.Fatalf("expected amount 65, got %d", evt.Amount)
	}
	if evt.Stage != "CITIES" {
		t.Fatalf("expected stage CITIES, got %s", evt.Stage)
	}
	if len(evt.Metadata) != 1 {
		t.Fatalf("expected 1 metadata entry, got %d", len(evt.Metadata))
	}
}

func TestEventTimestamp(t *testing.T) {
	before := time.Now()
	evt := NewEvent(EventTick, "game1")
	after := time.Now()

	if evt.Timestamp.Before(before) || evt.Timestamp.After(after) {
		t.Fatal("event timestamp should be between before and after")
	}
}

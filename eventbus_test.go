package nbody

import (
	"testing"
	"time"
)

func TestEventBusSubscribeAndPublish(t *testing.T) {
	bus := &EventBus{}
	var received uint64
	Subscribe(bus, func(e StepCompleted) {
		received += e.Step
	})
	Subscribe(bus, func(e StepCompleted) {
		received += e.Step * 2
	})
	Publish(bus, StepCompleted{Step: 1})
	if received != 3 {
		t.Errorf("expected received 3, got %d", received)
	}
	Publish(bus, StepCompleted{Step: 2})
	if received != 3+6 {
		t.Errorf("expected received 9, got %d", received)
	}
}

func TestEventBusMultipleTypes(t *testing.T) {
	bus := &EventBus{}
	var stages []string
	var elapsed time.Duration
	Subscribe(bus, func(e StageCompleted) {
		stages = append(stages, e.Stage)
	})
	Subscribe(bus, func(e StepCompleted) {
		elapsed += e.Elapsed
	})
	Publish(bus, StageCompleted{Stage: StageUpdateVelocity})
	Publish(bus, StepCompleted{Elapsed: time.Millisecond})
	if len(stages) != 1 || stages[0] != StageUpdateVelocity {
		t.Errorf("expected [%s], got %v", StageUpdateVelocity, stages)
	}
	if elapsed != time.Millisecond {
		t.Errorf("expected 1ms, got %v", elapsed)
	}
}

func TestEventBusNoHandlers(t *testing.T) {
	bus := &EventBus{}
	// No panic expected
	Publish(bus, StepCompleted{Step: 42})
	var nilBus *EventBus
	Publish(nilBus, StepCompleted{Step: 42})
}

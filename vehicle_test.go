package strut

import "testing"

// =============================================================================
// Vehicle Tests
// =============================================================================

func TestVehicle_Step(t *testing.T) {
	front := newTestAxle(t)
	rear := newTestAxle(t)
	vehicle := NewVehicle(front, rear)

	deltas := []AxleDeltas{
		{Left: 0.01, Right: 0.02},
		{Left: 0.03, Right: 0.04},
	}
	vehicle.Step(deltas, 0.016)

	wants := []struct {
		name string
		got  float64
		want float64
	}{
		{"front left", front.Left.Displacement(), 0.01},
		{"front right", front.Right.Displacement(), 0.02},
		{"rear left", rear.Left.Displacement(), 0.03},
		{"rear right", rear.Right.Displacement(), 0.04},
	}
	for _, w := range wants {
		if !almostEqual(w.got, w.want, 1e-12) {
			t.Errorf("%s displacement = %v, want %v", w.name, w.got, w.want)
		}
	}
}

func TestVehicle_Step_ShortDeltas(t *testing.T) {
	front := newTestAxle(t)
	rear := newTestAxle(t)
	vehicle := NewVehicle(front, rear)

	vehicle.Step([]AxleDeltas{{Left: 0.01, Right: 0.01}}, 0.016)

	if rear.Left.Displacement() != 0 || rear.Right.Displacement() != 0 {
		t.Errorf("rear axle moved without deltas: left %v, right %v",
			rear.Left.Displacement(), rear.Right.Displacement())
	}
}

func TestVehicle_Step_MultipleWorkers(t *testing.T) {
	axles := make([]*Axle, 8)
	deltas := make([]AxleDeltas, 8)
	for i := range axles {
		axles[i] = newTestAxle(t)
		deltas[i] = AxleDeltas{Left: 0.01, Right: 0.01}
	}

	vehicle := NewVehicle(axles...)
	vehicle.Workers = 4

	vehicle.Step(deltas, 0.016)

	for i, axle := range axles {
		if !almostEqual(axle.Left.Displacement(), 0.01, 1e-12) {
			t.Errorf("axle %d left displacement = %v, want 0.01", i, axle.Left.Displacement())
		}
	}
}

func TestVehicle_Step_ZeroWorkersDefaults(t *testing.T) {
	vehicle := NewVehicle(newTestAxle(t))
	vehicle.Workers = 0

	vehicle.Step([]AxleDeltas{{Left: 0.01}}, 0.016)

	if vehicle.Workers != DEFAULT_WORKERS {
		t.Errorf("Workers = %v, want %v", vehicle.Workers, DEFAULT_WORKERS)
	}
}

func TestVehicle_AddRemoveAxle(t *testing.T) {
	front := newTestAxle(t)
	rear := newTestAxle(t)

	vehicle := NewVehicle(front)
	vehicle.AddAxle(rear)
	if len(vehicle.Axles) != 2 {
		t.Fatalf("len(Axles) = %d, want 2", len(vehicle.Axles))
	}

	vehicle.RemoveAxle(front)
	if len(vehicle.Axles) != 1 || vehicle.Axles[0] != rear {
		t.Errorf("Axles = %v, want only the rear axle", vehicle.Axles)
	}
}

// =============================================================================
// Event Tests
// =============================================================================

type eventCapture struct {
	events []Event
}

func (ec *eventCapture) capture(event Event) {
	ec.events = append(ec.events, event)
}

func (ec *eventCapture) countType(eventType EventType) int {
	n := 0
	for _, e := range ec.events {
		if e.Type() == eventType {
			n++
		}
	}
	return n
}

func TestVehicle_BottomOutEvent(t *testing.T) {
	axle := newTestAxle(t)
	vehicle := NewVehicle(axle)

	var captured eventCapture
	vehicle.Events.Subscribe(BOTTOM_OUT, captured.capture)

	// Seed the tracked state, then slam the left wheel past its travel
	vehicle.Step([]AxleDeltas{{}}, 0.016)
	vehicle.Step([]AxleDeltas{{Left: 0.5}}, 0.016)

	if got := captured.countType(BOTTOM_OUT); got != 1 {
		t.Fatalf("bottom out events = %d, want 1", got)
	}

	event := captured.events[0].(BottomOutEvent)
	if event.Suspension != axle.Left {
		t.Error("event reports the wrong wheel")
	}
	if event.Overtravel <= 0 {
		t.Errorf("event overtravel = %v, want positive", event.Overtravel)
	}

	// Still bottomed: no repeated event while the state holds
	vehicle.Step([]AxleDeltas{{Left: 0.5}}, 0.016)
	if got := captured.countType(BOTTOM_OUT); got != 1 {
		t.Errorf("bottom out events after holding = %d, want 1", got)
	}

	// Releasing and slamming again fires a new edge
	vehicle.Step([]AxleDeltas{{Left: -0.001}}, 0.016)
	vehicle.Step([]AxleDeltas{{Left: 0.5}}, 0.016)
	if got := captured.countType(BOTTOM_OUT); got != 2 {
		t.Errorf("bottom out events after re-slamming = %d, want 2", got)
	}
}

func TestVehicle_AirborneEvent(t *testing.T) {
	axle := newTestAxle(t)
	vehicle := NewVehicle(axle)

	var captured eventCapture
	vehicle.Events.Subscribe(AIRBORNE, captured.capture)

	// Compress first so the wheel is tracked as grounded, then extend
	// fully with a dt large enough for the rebound limit to reach zero
	vehicle.Step([]AxleDeltas{{Left: 0.01, Right: 0.01}}, 0.016)
	vehicle.Step([]AxleDeltas{{Left: -1, Right: 0}}, 0.2)

	if got := captured.countType(AIRBORNE); got != 1 {
		t.Fatalf("airborne events = %d, want 1", got)
	}
	if captured.events[0].(AirborneEvent).Suspension != axle.Left {
		t.Error("event reports the wrong wheel")
	}
}

func TestVehicle_NoEventsWithoutListeners(t *testing.T) {
	// Stepping with no subscriptions must not panic or leak buffered events
	vehicle := NewVehicle(newTestAxle(t))
	vehicle.Step([]AxleDeltas{{Left: 0.5}}, 0.016)
	vehicle.Step([]AxleDeltas{{Left: 0.5}}, 0.016)
}

func TestVehicle_RemoveAxleForgetsEventState(t *testing.T) {
	axle := newTestAxle(t)
	vehicle := NewVehicle(axle)

	var captured eventCapture
	vehicle.Events.Subscribe(BOTTOM_OUT, captured.capture)

	vehicle.Step([]AxleDeltas{{}}, 0.016)
	vehicle.Step([]AxleDeltas{{Left: 0.5}}, 0.016)
	if got := captured.countType(BOTTOM_OUT); got != 1 {
		t.Fatalf("bottom out events = %d, want 1", got)
	}

	vehicle.RemoveAxle(axle)
	vehicle.AddAxle(axle)

	// Re-added wheels are seeded fresh: the first observation never emits
	vehicle.Step([]AxleDeltas{{Left: 0.5}}, 0.016)
	if got := captured.countType(BOTTOM_OUT); got != 1 {
		t.Errorf("bottom out events after re-adding = %d, want 1", got)
	}
}

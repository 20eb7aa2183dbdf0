// Package strut simulates per-wheel car suspension: displacement
// integration with travel and rebound limits, spring/damper/anti-roll force
// computation, and the axle coupling feeding each wheel its roll delta.
//
// The package is driven by an external rigid-body vehicle solver: the
// solver supplies per-tick displacement deltas from ground contact and
// consumes the computed body and wheel contact forces.
package strut


const DEFAULT_WORKERS = 1

// Vehicle owns the axles of one vehicle and steps them once per simulation
// tick. No suspension instance is shared across vehicles.
type Vehicle struct {
	Axles   []*Axle
	Workers int

	Events Events
}

// AxleDeltas holds one axle's per-tick displacement deltas, driven by
// ground contact penetration.
type AxleDeltas struct {
	Left  float64
	Right float64
}

func NewVehicle(axles ...*Axle) *Vehicle {
	return &Vehicle{
		Axles:   axles,
		Workers: DEFAULT_WORKERS,
		Events:  NewEvents(),
	}
}

// AddAxle appends an axle to the vehicle
func (v *Vehicle) AddAxle(axle *Axle) {
	v.Axles = append(v.Axles, axle)
}

// RemoveAxle removes an axle from the vehicle
func (v *Vehicle) RemoveAxle(axle *Axle) {
	k := -1
	for i, a := range v.Axles {
		if a == axle {
			k = i
			break
		}
	}

	if k != -1 {
		v.Axles = append(v.Axles[:k], v.Axles[k+1:]...)
	}

	v.Events.forget(axle.Left)
	v.Events.forget(axle.Right)
}

type axleStep struct {
	axle   *Axle
	deltas AxleDeltas
}

// Step runs one simulation tick over all axles. Axles without a matching
// deltas entry keep their displacement and only recompute forces through
// their own Update on the next tick; extra deltas are ignored. Wheel events
// are recorded after the axle updates and flushed once per step.
func (v *Vehicle) Step(deltas []AxleDeltas, dt float64) {
	v.Workers = max(DEFAULT_WORKERS, v.Workers)

	n := min(len(v.Axles), len(deltas))
	steps := make([]axleStep, n)
	for i := 0; i < n; i++ {
		steps[i] = axleStep{axle: v.Axles[i], deltas: deltas[i]}
	}

	chunked(v.Workers, steps, func(step axleStep) {
		step.axle.Update(step.deltas.Left, step.deltas.Right, dt)
	})

	// Event bookkeeping stays single-threaded
	for i := 0; i < n; i++ {
		v.Events.recordWheel(v.Axles[i].Left)
		v.Events.recordWheel(v.Axles[i].Right)
	}
	v.Events.flush()
}

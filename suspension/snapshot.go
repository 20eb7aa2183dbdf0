package suspension

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/akmonengine/strut/geometry"
)

// Snapshot is the persisted per-wheel state, used for save/resume and
// network synchronization. The steering angle is in degrees, displacements
// in the configured distance unit; the field order is fixed.
type Snapshot struct {
	SteeringAngle    float64 `json:"steering_angle"`
	Displacement     float64 `json:"displacement"`
	LastDisplacement float64 `json:"last_displacement"`
	Force            float64 `json:"force"`
}

// Snapshot captures the current state.
func (s *Suspension) Snapshot() Snapshot {
	return Snapshot{
		SteeringAngle:    geometry.Rad2Deg(s.steeringAngle),
		Displacement:     s.displacement,
		LastDisplacement: s.lastDisplacement,
		Force:            s.force,
	}
}

// Restore applies a snapshot. Displacements are clamped into [0, Travel],
// matching the per-tick clamping rules; the wheel pose is recomputed.
func (s *Suspension) Restore(snap Snapshot) {
	s.steeringAngle = geometry.Deg2Rad(snap.SteeringAngle)
	s.displacement = clamp(snap.Displacement, 0, s.info.Travel)
	s.lastDisplacement = clamp(snap.LastDisplacement, 0, s.info.Travel)
	s.force = snap.Force
	s.updateWheel()
}

// Encode writes the snapshot as a single JSON document.
func (snap Snapshot) Encode(w io.Writer) error {
	return json.NewEncoder(w).Encode(snap)
}

// DecodeSnapshot reads a snapshot previously written by Encode.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("suspension: decode snapshot: %w", err)
	}
	return snap, nil
}

// DebugPrint writes a human-readable dump of the current state, including
// the spring/damping force breakdown.
func (s *Suspension) DebugPrint(w io.Writer) {
	fmt.Fprintf(w, "---Suspension---\n")
	fmt.Fprintf(w, "Displacement: %v\n", s.displacement)
	fmt.Fprintf(w, "Spring Force: %v\n", s.springForce)
	fmt.Fprintf(w, "Damping Force: %v\n", s.dampForce)
	fmt.Fprintf(w, "Steering angle: %v\n", geometry.Rad2Deg(s.steeringAngle))
}

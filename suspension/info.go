package suspension

import (
	"fmt"

	"github.com/akmonengine/strut/interp"
	"github.com/go-gl/mathgl/mgl64"
)

// Info holds the immutable physical constants of one wheel's suspension.
// It is built once at vehicle load time and may be shared read-only between
// the wheels of a symmetric setup; it is never mutated afterwards.
type Info struct {
	// Coilover
	SpringConstant float64 // spring rate (N/m)
	AntiRoll       float64 // anti-roll bar rate (N/m)
	Bounce         float64 // compression damping (N·s/m)
	Rebound        float64 // extension damping (N·s/m)
	Travel         float64 // maximum displacement before the mechanical stop (m)
	DamperFactors  interp.LinearInterp
	SpringFactors  interp.LinearInterp

	// Geometry
	Position      mgl64.Vec3 // wheel hub position at full extension (zero g)
	SteeringAngle float64    // maximum steering angle (degrees)
	Ackermann     float64    // ackermann correction angle (degrees)
	Camber        float64    // degrees, sign convention depends on the side
	Caster        float64    // degrees, sign convention depends on the side
	Toe           float64    // degrees, sign convention depends on the side

	InvMass float64 // 1 / unsprung mass (1/kg)
}

// DefaultInfo returns an S2000-like front suspension setup with flat factor
// curves.
func DefaultInfo() Info {
	return Info{
		SpringConstant: 50000,
		AntiRoll:       8000,
		Bounce:         2500,
		Rebound:        4000,
		Travel:         0.19,
		DamperFactors:  interp.Flat(1),
		SpringFactors:  interp.Flat(1),
		Position:       mgl64.Vec3{-0.75, 1.45, -0.2},
		SteeringAngle:  30,
		Ackermann:      8.5,
		Camber:         -0.5,
		Caster:         6.0,
		Toe:            0.25,
		InvMass:        1.0 / 20,
	}
}

// Validate reports the first configuration error, if any. Per-tick code
// assumes a validated Info and never re-checks these bounds.
func (info Info) Validate() error {
	switch {
	case !(info.Travel > 0):
		return fmt.Errorf("suspension: travel must be positive, got %v", info.Travel)
	case !(info.SpringConstant > 0):
		return fmt.Errorf("suspension: spring constant must be positive, got %v", info.SpringConstant)
	case !(info.Bounce > 0):
		return fmt.Errorf("suspension: bounce damping must be positive, got %v", info.Bounce)
	case !(info.Rebound > 0):
		return fmt.Errorf("suspension: rebound damping must be positive, got %v", info.Rebound)
	case info.AntiRoll < 0:
		return fmt.Errorf("suspension: anti-roll rate must not be negative, got %v", info.AntiRoll)
	case !(info.InvMass > 0):
		return fmt.Errorf("suspension: inverse unsprung mass must be positive, got %v", info.InvMass)
	case info.SpringFactors.Empty():
		return fmt.Errorf("suspension: spring factor curve must have at least one point")
	case info.DamperFactors.Empty():
		return fmt.Errorf("suspension: damper factor curve must have at least one point")
	}
	return nil
}

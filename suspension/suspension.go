// Package suspension implements the per-wheel suspension state machine: it
// integrates contact-driven displacement changes under travel and rebound
// limits, computes the spring, damper and anti-roll forces transmitted to the
// car body, and derives the wheel contact force.
//
// One Suspension instance exists per wheel. The owning vehicle solver drives
// it once per simulation tick, strictly ordered:
//
//	s.UpdateDisplacement(delta, dt)
//	s.UpdateForces(rollDelta, dt)
//	// read s.WheelPosition(), s.Force(), s.WheelForce(), ...
//
// Per-tick inputs are defensively clamped, never rejected; a tick can not
// fail. All configuration errors are confined to the load path.
package suspension

import (
	"math"

	"github.com/akmonengine/strut/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// SolveDisplacement stops once the spring force residual drops below
	// solveTolerance * SpringConstant * Travel.
	solveTolerance = 1e-4
	// Hard cap on bisection steps, keeps per-tick work bounded and constant.
	solveMaxIterations = 32
)

// Suspension is the mutable per-wheel state. Displacement counts from the
// fully extended zero-g pose (0) toward full compression (Travel).
type Suspension struct {
	info Info
	geom geometry.Geometry

	// Static pose derived from camber/caster/toe at init
	orientationExt mgl64.Quat
	steeringAxis   mgl64.Vec3

	steeringAngle float64 // radians
	orientation   mgl64.Quat
	position      mgl64.Vec3

	springForce float64
	dampForce   float64
	force       float64

	overtravel       float64
	displacement     float64
	lastDisplacement float64
	wheelForce       float64
}

// New validates info and returns a suspension reset to the fully extended,
// zero force state. A nil geom defaults to vertical travel from
// info.Position.
func New(info Info, geom geometry.Geometry) (*Suspension, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	if geom == nil {
		geom = geometry.Linear{Extended: info.Position}
	}

	s := &Suspension{info: info, geom: geom}
	s.init()

	return s, nil
}

func (s *Suspension) init() {
	toe := mgl64.QuatRotate(geometry.Deg2Rad(s.info.Toe), geometry.Up)
	camber := mgl64.QuatRotate(-geometry.Deg2Rad(s.info.Camber), geometry.Forward)
	s.orientationExt = toe.Mul(camber)

	caster := geometry.Deg2Rad(s.info.Caster)
	s.steeringAxis = geometry.Up.Mul(math.Cos(caster)).Add(geometry.Forward.Mul(math.Sin(caster)))

	s.steeringAngle = 0
	s.springForce = 0
	s.dampForce = 0
	s.force = 0
	s.wheelForce = 0
	s.overtravel = 0
	s.displacement = 0
	s.lastDisplacement = 0
	s.updateWheel()
}

// updateWheel recomposes the wheel pose from the current displacement and
// steering angle.
func (s *Suspension) updateWheel() {
	position, rotation := s.geom.Evaluate(s.displacement)
	steer := mgl64.QuatRotate(s.steeringAngle, s.steeringAxis)

	s.position = position
	s.orientation = steer.Mul(rotation).Mul(s.orientationExt)
}

// SetDisplacement overrides the current displacement, clamped into
// [0, Travel]. It bypasses the rebound limiter and resets the last
// displacement to the same value, so the next UpdateForces sees zero
// velocity instead of a spurious spike.
func (s *Suspension) SetDisplacement(value float64) {
	s.displacement = clamp(value, 0, s.info.Travel)
	s.lastDisplacement = s.displacement
	s.updateWheel()
}

// UpdateDisplacement integrates a contact-driven displacement change.
//
// Compression is applied directly and clamped to the travel limit; the
// excess is recorded as overtravel for the wheel force penalty. Extension is
// capped at the terminal velocity where the rebound damper balances the
// spring at the previous displacement, which prevents nonphysical
// instantaneous extension when contact is lost.
func (s *Suspension) UpdateDisplacement(delta, dt float64) {
	previous := s.displacement
	next := previous + delta
	s.overtravel = 0

	if delta < 0 {
		// With dt = 0 the floor degenerates to the previous displacement:
		// no elapsed time, no extension
		maxVelocity := s.info.SpringConstant * previous / s.info.Rebound
		if floor := previous - maxVelocity*dt; next < floor {
			next = floor
		}
	}
	if next < 0 {
		next = 0
	}
	if next > s.info.Travel {
		s.overtravel = next - s.info.Travel
		next = s.info.Travel
	}

	s.lastDisplacement = previous
	s.displacement = next
	s.updateWheel()
}

// UpdateForces computes the suspension force acting on the car body and the
// wheel contact force, from the current displacement state and the
// externally supplied roll delta (see Axle).
//
// With dt = 0 the damping force is held at its previous value instead of
// being recomputed, so a degenerate timestep can not divide by zero. The
// call is a pure function of state and inputs: repeating it with identical
// inputs yields identical forces.
func (s *Suspension) UpdateForces(rollDelta, dt float64) {
	fraction := s.displacement / s.info.Travel
	s.springForce = s.info.SpringConstant * s.displacement * s.info.SpringFactors.Interpolate(fraction)
	antiRollForce := s.info.AntiRoll * rollDelta

	if dt > 0 {
		velocity := (s.displacement - s.lastDisplacement) / dt
		damping := s.info.Bounce
		if velocity < 0 {
			damping = s.info.Rebound
		}
		s.dampForce = damping * velocity * s.info.DamperFactors.Interpolate(fraction)
	}

	s.force = s.springForce + s.dampForce + antiRollForce

	// The contact patch can push but never pull, and overtravel attenuates
	// the available force to discourage solver penetration.
	s.wheelForce = math.Max(0, s.force) * s.info.Travel / (s.info.Travel + s.overtravel)
}

// SolveDisplacement returns the displacement that would produce the given
// net force under the current spring curve, holding the damping force at its
// last computed value. The spring term is inverted by bisection over
// [0, Travel]; the result is the best approximation found within the
// iteration cap, never an unbounded loop.
func (s *Suspension) SolveDisplacement(force float64) float64 {
	target := force - s.dampForce
	low, high := 0.0, s.info.Travel
	if target <= s.springForceAt(low) {
		return low
	}
	if target >= s.springForceAt(high) {
		return high
	}

	tolerance := solveTolerance * s.info.SpringConstant * s.info.Travel
	mid := 0.5 * (low + high)
	for i := 0; i < solveMaxIterations; i++ {
		mid = 0.5 * (low + high)
		residual := s.springForceAt(mid) - target
		if math.Abs(residual) < tolerance {
			break
		}
		if residual < 0 {
			low = mid
		} else {
			high = mid
		}
	}

	return mid
}

func (s *Suspension) springForceAt(displacement float64) float64 {
	return s.info.SpringConstant * displacement * s.info.SpringFactors.Interpolate(displacement/s.info.Travel)
}

// SetSteering maps a normalized steering input to the physical steering
// angle and recomposes the wheel orientation. -1.0 is maximum right lock,
// 1.0 maximum left lock; out-of-range values clamp. A non-zero ackermann
// angle applies the ideal ackermann correction.
func (s *Suspension) SetSteering(value float64) {
	value = clamp(value, -1, 1)
	alpha := value * geometry.Deg2Rad(s.info.SteeringAngle)

	angle := 0.0
	if alpha != 0 {
		angle = alpha
		if s.info.Ackermann != 0 {
			angle = math.Atan(1 / (1/math.Tan(alpha) - math.Tan(geometry.Deg2Rad(s.info.Ackermann))))
		}
	}

	s.steeringAngle = angle
	s.updateWheel()
}

// Info returns the immutable parameters.
func (s *Suspension) Info() Info {
	return s.info
}

// AntiRoll returns the anti-roll bar rate.
func (s *Suspension) AntiRoll() float64 {
	return s.info.AntiRoll
}

// MaxSteeringAngle returns the maximum steering angle in degrees.
func (s *Suspension) MaxSteeringAngle() float64 {
	return s.info.SteeringAngle
}

// SteeringAngle returns the current steering angle in degrees.
func (s *Suspension) SteeringAngle() float64 {
	return geometry.Rad2Deg(s.steeringAngle)
}

// WheelOrientation returns the wheel orientation relative to the car,
// combining steering, camber gain and the static camber/caster/toe pose.
func (s *Suspension) WheelOrientation() mgl64.Quat {
	return s.orientation
}

// WheelPosition returns the wheel hub position relative to the car.
func (s *Suspension) WheelPosition() mgl64.Vec3 {
	return s.position
}

// Force returns the net suspension force acting on the car body.
func (s *Suspension) Force() float64 {
	return s.force
}

// SpringForce returns the spring term of the last force computation.
func (s *Suspension) SpringForce() float64 {
	return s.springForce
}

// DampForce returns the damping term of the last force computation.
func (s *Suspension) DampForce() float64 {
	return s.dampForce
}

// WheelForce returns the contact force available at the tire patch.
func (s *Suspension) WheelForce() float64 {
	return s.wheelForce
}

// Overtravel returns how far the last displacement request exceeded the
// travel limit.
func (s *Suspension) Overtravel() float64 {
	return s.overtravel
}

// Displacement returns the current wheel displacement.
func (s *Suspension) Displacement() float64 {
	return s.displacement
}

// DisplacementFraction returns 0.0 fully extended, 1.0 fully compressed.
func (s *Suspension) DisplacementFraction() float64 {
	return s.displacement / s.info.Travel
}

func clamp(value, low, high float64) float64 {
	return math.Min(math.Max(value, low), high)
}

// Package geometry maps a scalar suspension displacement to the wheel hub
// pose relative to the car body.
//
// The variant set is closed: Linear for strut-style vertical travel, Hinge
// for trailing/swing arms following a circular arc about a pivot. Callers
// clamp displacement to [0, travel] before evaluation; the geometries do not
// re-validate it.
package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Car body frame axes.
var (
	Right   = mgl64.Vec3{1, 0, 0}
	Forward = mgl64.Vec3{0, 1, 0}
	Up      = mgl64.Vec3{0, 0, 1}
)

// Geometry evaluates the wheel hub position and the displacement-induced
// orientation (camber gain) for a given displacement. Displacement 0 is the
// fully extended, zero-g pose.
type Geometry interface {
	Evaluate(displacement float64) (mgl64.Vec3, mgl64.Quat)
}

// Linear moves the wheel along the body up axis from the fully extended
// position. Orientation is invariant to displacement.
type Linear struct {
	// Wheel hub position at full extension
	Extended mgl64.Vec3
}

func (l Linear) Evaluate(displacement float64) (mgl64.Vec3, mgl64.Quat) {
	return l.Extended.Add(Up.Mul(displacement)), mgl64.QuatIdent()
}

// Hinge swings the wheel on a circular arc about a fixed pivot. The arc is
// parameterized by arc length, so displacement matches vertical travel for
// small angles. The arm rotation is returned as the orientation, which gives
// the wheel its camber gain.
type Hinge struct {
	pivot  mgl64.Vec3
	arm    mgl64.Vec3
	axis   mgl64.Vec3
	radius float64
}

// NewHinge builds a hinge geometry from the pivot point and the wheel hub
// position at full extension. The two points must not coincide, and the arm
// must not be parallel to the up axis.
func NewHinge(pivot, extended mgl64.Vec3) (Hinge, error) {
	arm := extended.Sub(pivot)
	radius := arm.Len()
	if radius < 1e-9 {
		return Hinge{}, fmt.Errorf("geometry: hinge pivot coincides with the wheel position %v", extended)
	}

	axis := arm.Cross(Up)
	if axis.Len() < 1e-9*radius {
		return Hinge{}, fmt.Errorf("geometry: hinge arm %v is parallel to the up axis", arm)
	}

	return Hinge{
		pivot:  pivot,
		arm:    arm,
		axis:   axis.Normalize(),
		radius: radius,
	}, nil
}

// Pivot returns the hinge pivot point.
func (h Hinge) Pivot() mgl64.Vec3 {
	return h.pivot
}

// Radius returns the arm length.
func (h Hinge) Radius() float64 {
	return h.radius
}

func (h Hinge) Evaluate(displacement float64) (mgl64.Vec3, mgl64.Quat) {
	angle := displacement / h.radius
	rotation := mgl64.QuatRotate(angle, h.axis)

	return h.pivot.Add(rotation.Rotate(h.arm)), rotation
}

// Deg2Rad converts degrees, the unit of all configured angles, to radians.
func Deg2Rad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Rad2Deg converts radians back to degrees for reporting and serialization.
func Rad2Deg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Package interp implements piecewise-linear interpolation curves.
//
// Curves are immutable once built and evaluate in O(log n). Queries outside
// the control-point domain clamp to the nearest endpoint value instead of
// extrapolating, so a curve can never amplify an out-of-range input.
package interp

import (
	"fmt"
	"sort"
)

// Point is a single (X, Y) control point.
type Point struct {
	X float64
	Y float64
}

// LinearInterp is an immutable piecewise-linear curve over an ordered set of
// control points.
type LinearInterp struct {
	points []Point
}

// Flat returns a curve that evaluates to value for every input.
func Flat(value float64) LinearInterp {
	return LinearInterp{points: []Point{{X: 0, Y: value}}}
}

// New builds a curve from control points. The X values must be strictly
// increasing; duplicate or unsorted points are a configuration error.
func New(points []Point) (LinearInterp, error) {
	if len(points) == 0 {
		return LinearInterp{}, fmt.Errorf("interp: at least one control point required")
	}
	for i := 1; i < len(points); i++ {
		if points[i].X <= points[i-1].X {
			return LinearInterp{}, fmt.Errorf("interp: control point %d out of order (x=%v after x=%v)",
				i, points[i].X, points[i-1].X)
		}
	}

	curve := LinearInterp{points: make([]Point, len(points))}
	copy(curve.points, points)

	return curve, nil
}

// Empty reports whether the curve has no control points. The zero value of
// LinearInterp is empty and evaluates to 0 everywhere.
func (li LinearInterp) Empty() bool {
	return len(li.points) == 0
}

// Interpolate returns the linearly interpolated Y value at x, clamped to the
// endpoint values outside the control-point domain. The zero curve evaluates
// to 0 everywhere.
func (li LinearInterp) Interpolate(x float64) float64 {
	n := len(li.points)
	if n == 0 {
		return 0
	}
	if x <= li.points[0].X {
		return li.points[0].Y
	}
	if x >= li.points[n-1].X {
		return li.points[n-1].Y
	}

	i := sort.Search(n, func(i int) bool { return li.points[i].X >= x })
	p0, p1 := li.points[i-1], li.points[i]
	t := (x - p0.X) / (p1.X - p0.X)

	return p0.Y + t*(p1.Y-p0.Y)
}

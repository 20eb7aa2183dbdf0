package strut

import "github.com/akmonengine/strut/suspension"

// Axle pairs the left and right suspensions of one axle and couples them
// through the anti-roll bar: each side receives the displacement difference
// across the axle as its roll delta.
type Axle struct {
	Left  *suspension.Suspension
	Right *suspension.Suspension
}

// Update runs one simulation tick for both wheels, strictly ordered:
// displacement integration first, then force computation with the roll
// delta of each side. The roll deltas are antisymmetric across the axle.
func (a *Axle) Update(leftDelta, rightDelta, dt float64) {
	a.Left.UpdateDisplacement(leftDelta, dt)
	a.Right.UpdateDisplacement(rightDelta, dt)

	rollDelta := a.Left.Displacement() - a.Right.Displacement()
	a.Left.UpdateForces(rollDelta, dt)
	a.Right.UpdateForces(-rollDelta, dt)
}

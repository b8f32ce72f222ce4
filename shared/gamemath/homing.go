package gamemath

import "math"

// CalculateHomingStep moves from current toward target by exactly step units.
// The caller is responsible for deciding when the remaining distance is too
// short for a full step; when current and target coincide current is returned.
func CalculateHomingStep(current, target Vec3, step float64) Vec3 {
	dir := target.Sub(current)
	dist := dir.Length()
	if dist == 0 {
		return current
	}
	return current.Add(dir.Scale(step / dist))
}

// StepDistance is the distance covered in one tick at the given speed
// (units per second) and tick period (seconds).
func StepDistance(speed, period float64) float64 {
	return speed * period
}

// arrivalEpsilon absorbs rounding drift left by repeated homing steps.
const arrivalEpsilon = 1e-9

// Arrives reports whether a projectile dist away reaches its target within
// one step.
func Arrives(dist, step float64) bool {
	return dist <= step+arrivalEpsilon
}

// TicksToArrive returns how many ticks a constant-speed homing step needs to
// cover dist: ceil(dist/step), and at least one since arrival happens inside
// a tick. It returns -1 when the step is not positive and arrival can never
// happen.
func TicksToArrive(dist, step float64) int {
	if step <= 0 {
		return -1
	}
	n := int(math.Ceil(dist/step - arrivalEpsilon))
	if n < 1 {
		return 1
	}
	return n
}

package gamemath

import (
	"math"

	dmath "github.com/yohamta/donburi/features/math"
)

// Vec3 is a world position. X/Y span the ground plane, Z is height above it.
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 returns a Vec3 from its components.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Length returns the euclidean length of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// DistanceTo returns the straight-line distance between v and o.
func (v Vec3) DistanceTo(o Vec3) float64 {
	return o.Sub(v).Length()
}

// XY drops the height component.
func (v Vec3) XY() dmath.Vec2 {
	return dmath.Vec2{X: v.X, Y: v.Y}
}

// Yaw returns the horizontal heading from one point to another in radians.
func Yaw(from, to Vec3) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}

// Pitch returns the vertical heading from one point to another in radians.
// Positive values point upward.
func Pitch(from, to Vec3) float64 {
	dx := to.X - from.X
	dy := to.Y - from.Y
	return math.Atan2(to.Z-from.Z, math.Sqrt(dx*dx+dy*dy))
}

// Distance2D returns the ground-plane distance between two horizontal points.
func Distance2D(a, b dmath.Vec2) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

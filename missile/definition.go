package missile

import (
	"github.com/automoto/volley/components"
	"github.com/automoto/volley/shared/gamemath"
	"github.com/yohamta/donburi"
)

// Callbacks invoked by a missile. A nil callback is a no-op.
type (
	HitPosFunc    func(pos gamemath.Vec3)
	HitUnitFunc   func(target donburi.Entity)
	CollisionFunc func(unit donburi.Entity)
)

// Definition is the template a missile is created from. It is a plain value:
// copying it (or calling Inherit) yields an independent template, and every
// live Missile takes its own copy at launch, so later edits to a Definition
// never reach missiles already in flight.
type Definition struct {
	Art   string
	Owner components.Player

	Scale  float64
	Height float64 // constant vertical offset added to the target point
	Speed  float64 // units per second

	Trail       string       // optional; spawned every tick and discarded after one frame
	TrailAttach gamemath.Vec3 // offset from the missile position for the trail

	// CollisionSize is the radius checked for hostile units every tick.
	// Zero disables collision detection.
	CollisionSize float64

	OnHitPos    HitPosFunc
	OnHitUnit   HitUnitFunc
	OnCollision CollisionFunc
}

// NewDefinition returns a template with unit scale and the given visuals.
func NewDefinition(art string, owner components.Player, speed float64) Definition {
	return Definition{
		Art:   art,
		Owner: owner,
		Scale: 1,
		Speed: speed,
	}
}

// Inherit returns a copy of d. Callback slots are carried over, so a copy
// behaves exactly like its parent until one of its slots is replaced.
func (d Definition) Inherit() Definition {
	return d
}

// WithOnHitPos returns a copy of d with only the hit-position callback
// replaced.
func (d Definition) WithOnHitPos(fn HitPosFunc) Definition {
	d.OnHitPos = fn
	return d
}

// WithOnHitUnit returns a copy of d with only the hit-unit callback replaced.
func (d Definition) WithOnHitUnit(fn HitUnitFunc) Definition {
	d.OnHitUnit = fn
	return d
}

// WithOnCollision returns a copy of d with only the collision callback
// replaced.
func (d Definition) WithOnCollision(fn CollisionFunc) Definition {
	d.OnCollision = fn
	return d
}

// WithTrail returns a copy of d that spawns art at the given offset every tick.
func (d Definition) WithTrail(art string, attach gamemath.Vec3) Definition {
	d.Trail = art
	d.TrailAttach = attach
	return d
}

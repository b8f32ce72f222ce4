// Package missile animates homing projectiles. A Missile flies in a straight
// line at constant speed toward a point or a (possibly moving) unit, reports
// hostile units it passes through, and fires its hit callbacks on arrival.
package missile

import (
	"github.com/automoto/volley/components"
	"github.com/automoto/volley/shared/gamemath"
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

// Host is the slice of the game engine a missile needs.
type Host interface {
	AddEffect(art string, pos gamemath.Vec3) donburi.Entity
	RemoveEffect(e donburi.Entity)
	EffectPos(e donburi.Entity) (gamemath.Vec3, bool)
	SetEffect(e donburi.Entity, pos gamemath.Vec3, scale, yaw, pitch float64)
	FlashEffect(art string, pos gamemath.Vec3, scale, yaw, pitch float64) donburi.Entity

	UnitExists(u donburi.Entity) bool
	UnitAlive(u donburi.Entity) bool
	UnitPos(u donburi.Entity) (gamemath.Vec3, bool)
	IsEnemy(u donburi.Entity, p components.Player) bool
	UnitsInRange(center dmath.Vec2, radius float64) []donburi.Entity
}

// Missile is a live projectile. Exactly one of TargetPos and TargetUnit drives
// it: TargetUnit when it is not donburi.Null, TargetPos otherwise. For unit
// targets TargetPos holds the unit's last known position.
type Missile struct {
	Definition

	TargetPos  gamemath.Vec3
	TargetUnit donburi.Entity

	host        Host
	period      float64
	eff         donburi.Entity
	hasCollided map[donburi.Entity]struct{}
	ticks       int
	done        bool
}

func newMissile(h Host, period float64, source gamemath.Vec3, def Definition) *Missile {
	m := &Missile{
		Definition:  def,
		TargetUnit:  donburi.Null,
		host:        h,
		period:      period,
		hasCollided: make(map[donburi.Entity]struct{}),
	}
	m.eff = h.AddEffect(def.Art, source)
	h.SetEffect(m.eff, source, def.Scale, 0, 0)
	return m
}

// Effect returns the visual-effect handle. It is invalid once Done is true.
func (m *Missile) Effect() donburi.Entity {
	return m.eff
}

// Done reports whether the missile has been destroyed.
func (m *Missile) Done() bool {
	return m.done
}

// Ticks returns how many ticks the missile has run, including the one it
// arrived on.
func (m *Missile) Ticks() int {
	return m.ticks
}

func (m *Missile) tick() {
	m.ticks++

	src, ok := m.host.EffectPos(m.eff)
	if !ok {
		// handle removed behind our back
		m.destroy()
		return
	}
	if m.TargetUnit != donburi.Null {
		if pos, ok := m.host.UnitPos(m.TargetUnit); ok {
			m.TargetPos = pos
		}
	}
	tgt := m.TargetPos.Add(gamemath.NewVec3(0, 0, m.Height))

	yaw := gamemath.Yaw(src, tgt)
	pitch := gamemath.Pitch(src, tgt)

	if m.Trail != "" {
		m.host.FlashEffect(m.Trail, src.Add(m.TrailAttach), m.Scale, yaw, pitch)
	}

	if m.CollisionSize > 0 {
		m.checkCollisions(src)
		if m.done {
			return
		}
	}

	step := gamemath.StepDistance(m.Speed, m.period)
	if !gamemath.Arrives(src.DistanceTo(tgt), step) {
		next := gamemath.CalculateHomingStep(src, tgt, step)
		m.host.SetEffect(m.eff, next, m.Scale, yaw, pitch)
		return
	}

	m.destroy()
}

func (m *Missile) checkCollisions(src gamemath.Vec3) {
	for _, u := range m.host.UnitsInRange(src.XY(), m.CollisionSize) {
		if m.done {
			return
		}
		if _, already := m.hasCollided[u]; already {
			continue
		}
		if !m.host.UnitAlive(u) || !m.host.IsEnemy(u, m.Owner) {
			continue
		}
		m.hasCollided[u] = struct{}{}
		if m.OnCollision != nil {
			m.OnCollision(u)
		}
	}
}

// destroy runs at most once. The effect handle is already gone when the hit
// callbacks run.
func (m *Missile) destroy() {
	if m.done {
		return
	}
	m.done = true
	m.host.RemoveEffect(m.eff)

	onHitPos, onHitUnit := m.OnHitPos, m.OnHitUnit
	m.release()

	if onHitPos != nil {
		onHitPos(m.TargetPos)
	}
	if m.TargetUnit != donburi.Null && onHitUnit != nil {
		onHitUnit(m.TargetUnit)
	}
}

func (m *Missile) release() {
	m.OnHitPos = nil
	m.OnHitUnit = nil
	m.OnCollision = nil
	m.hasCollided = nil
}

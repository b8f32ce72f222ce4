package sim

import (
	"github.com/automoto/volley/components"
	"github.com/automoto/volley/config"
	"github.com/automoto/volley/damage"
	"github.com/automoto/volley/shared/gamemath"
	"github.com/automoto/volley/systems/factory"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	dmath "github.com/yohamta/donburi/features/math"
)

// updateEffects disposes one-frame effects that have been rendered.
func (s *Simulation) updateEffects() {
	var expired []donburi.Entity
	components.AutoDestroy.Each(s.World, func(e *donburi.Entry) {
		ad := components.AutoDestroy.Get(e)
		ad.FramesRemaining--
		if ad.FramesRemaining <= 0 {
			expired = append(expired, e.Entity())
		}
	})
	for _, e := range expired {
		s.World.Remove(e)
	}
}

func (s *Simulation) updatePatrols() {
	dt := float32(s.period)
	var moves []donburi.Entity
	var xs []float64
	components.Patrol.Each(s.World, func(e *donburi.Entry) {
		if !s.Host.UnitAlive(e.Entity()) {
			return
		}
		p := components.Patrol.Get(e)
		x, _, done := p.Sequence.Update(dt)
		if done {
			p.Sequence.Reset()
		}
		moves = append(moves, e.Entity())
		xs = append(xs, float64(x))
	})

	for i, u := range moves {
		obj := components.Object.Get(s.World.Entry(u))
		s.Host.MoveUnit(u, dmath.Vec2{X: xs[i] + obj.W/2, Y: obj.Y + obj.H/2})
	}
}

// updateAutoAttacks fires each unit's native attack at the nearest living
// enemy once its cooldown has run out. The attack goes through the damage
// pipeline so registered attacks can take it over.
func (s *Simulation) updateAutoAttacks() {
	var ready []donburi.Entity
	components.AutoAttack.Each(s.World, func(e *donburi.Entry) {
		if !s.Host.UnitAlive(e.Entity()) {
			return
		}
		aa := components.AutoAttack.Get(e)
		if aa.Remaining > 0 {
			aa.Remaining--
			return
		}
		ready = append(ready, e.Entity())
	})

	for _, u := range ready {
		// An earlier attack this tick may already have killed the attacker.
		if !s.Host.UnitAlive(u) {
			continue
		}
		target := s.nearestEnemy(u)
		if target == donburi.Null {
			continue
		}
		aa := components.AutoAttack.Get(s.World.Entry(u))
		s.Pipeline.Deal(damage.Event{
			Source: u,
			Target: target,
			Amount: aa.Damage,
			Attack: true,
			Ranged: aa.Ranged,
		})
		aa.Remaining = aa.Cooldown
	}
}

func (s *Simulation) nearestEnemy(u donburi.Entity) donburi.Entity {
	pos, ok := s.Host.UnitPos(u)
	if !ok {
		return donburi.Null
	}
	aa := components.AutoAttack.Get(s.World.Entry(u))
	owner := s.Host.Owner(u)

	best := donburi.Null
	bestDist := 0.0
	for _, c := range s.Host.UnitsInRange(pos.XY(), aa.Range) {
		if c == u || !s.Host.UnitAlive(c) || !s.Host.IsEnemy(c, owner) {
			continue
		}
		cp, _ := s.Host.UnitPos(c)
		d := gamemath.Distance2D(pos.XY(), cp.XY())
		if best == donburi.Null || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// updateCombat folds accumulated damage into health, starts death timers and
// removes units whose timer has run out.
func (s *Simulation) updateCombat() {
	var hurt []*donburi.Entry
	components.DamageEvent.Each(s.World, func(e *donburi.Entry) {
		hurt = append(hurt, e)
	})
	for _, e := range hurt {
		dmg := components.DamageEvent.Get(e)
		if e.HasComponent(components.Health) {
			hp := components.Health.Get(e)
			hp.Current -= dmg.Amount
			if hp.Current <= 0 && !e.HasComponent(components.Death) {
				hp.Current = 0
				donburi.Add(e, components.Death, &components.DeathData{
					Timer: config.Combat.DeathFrames,
				})
				s.stats.Kills++
			}
		}
		donburi.Remove[components.DamageEventData](e, components.DamageEvent)
	}

	var dead []*donburi.Entry
	components.Death.Each(s.World, func(e *donburi.Entry) {
		death := components.Death.Get(e)
		death.Timer--
		if death.Timer <= 0 {
			dead = append(dead, e)
		}
	})
	for _, e := range dead {
		s.Attacks.Remove(e.Entity())
		factory.RemoveUnit(s.World, e)
	}
}

func (s *Simulation) processEvents() {
	events.ProcessAllEvents(s.World)
}

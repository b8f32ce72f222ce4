// Package attack replaces a unit's native attack with data-driven behaviour.
// The Registry intercepts attack damage from units that have registered
// attacks, aborts the native resolution, and resolves every registered
// attack instead: an immediate hit for melee and instant weapons, a volley
// of homing missiles for missile weapons.
package attack

import (
	"math/rand/v2"

	"github.com/automoto/volley/components"
	"github.com/automoto/volley/damage"
	"github.com/automoto/volley/missile"
	"github.com/automoto/volley/shared/gamemath"
	"github.com/yohamta/donburi"
)

// Host is the engine surface the registry needs on top of the missile host.
type Host interface {
	missile.Host
	Owner(u donburi.Entity) components.Player
}

// Pipeline is the damage pipeline the registry hooks into.
type Pipeline interface {
	OnPreDamage(priority damage.Priority, fn damage.Hook) (cancel func())
	Apply(ev damage.Event) bool
}

// Launcher spawns missiles that follow a unit.
type Launcher interface {
	LaunchAt(source gamemath.Vec3, target donburi.Entity, def missile.Definition) *missile.Missile
}

type Registry struct {
	host     Host
	pipeline Pipeline
	missiles Launcher
	rng      *rand.Rand

	attacks map[donburi.Entity]*Attacks
	cancel  func()
}

// NewRegistry subscribes to the pipeline at the earliest priority so it sees
// attack damage before any other hook.
func NewRegistry(h Host, p Pipeline, l Launcher, rng *rand.Rand) *Registry {
	r := &Registry{
		host:     h,
		pipeline: p,
		missiles: l,
		rng:      rng,
		attacks:  make(map[donburi.Entity]*Attacks),
	}
	r.cancel = p.OnPreDamage(damage.PriorityFirst, r.onPreDamage)
	return r
}

// AddAttack registers def as unit's attack called name, replacing any attack
// already registered under that name.
func (r *Registry) AddAttack(unit donburi.Entity, name string, def Definition) {
	atks, ok := r.attacks[unit]
	if !ok {
		atks = newAttacks()
		r.attacks[unit] = atks
	}
	atks.set(name, def.Inherit())
}

// Attacks returns the attack names registered on unit in insertion order.
func (r *Registry) Attacks(unit donburi.Entity) []string {
	atks, ok := r.attacks[unit]
	if !ok {
		return nil
	}
	return atks.Names()
}

// Attack returns the attack registered on unit under name.
func (r *Registry) Attack(unit donburi.Entity, name string) (Definition, bool) {
	atks, ok := r.attacks[unit]
	if !ok {
		return Definition{}, false
	}
	return atks.Get(name)
}

// Remove forgets every attack of unit. Its damage resolves natively again.
func (r *Registry) Remove(unit donburi.Entity) {
	delete(r.attacks, unit)
}

// Len returns the number of units with registered attacks.
func (r *Registry) Len() int {
	return len(r.attacks)
}

// Close unsubscribes from the pipeline and drops every registration.
func (r *Registry) Close() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	clear(r.attacks)
}

func (r *Registry) onPreDamage(ev *damage.Event) {
	if !ev.Attack {
		return
	}
	atks, ok := r.attacks[ev.Source]
	if !ok || atks.Len() == 0 {
		return
	}

	source, target, amount := ev.Source, ev.Target, ev.Amount
	ev.Abort()

	for _, name := range atks.Names() {
		def, ok := atks.Get(name)
		if !ok {
			continue
		}
		r.dispatch(source, target, amount, def)
	}
}

func (r *Registry) dispatch(source, target donburi.Entity, amount float64, def Definition) {
	switch def.WeaponType {
	case WeaponMissile:
		r.fireVolley(source, target, amount, def)
	default:
		r.directHit(source, target, amount, def)
	}
}

// fireVolley launches up to MaxTargets missiles at distinct enemies. The
// attacked unit is always picked first; the rest are random enemies in range.
func (r *Registry) fireVolley(source, target donburi.Entity, amount float64, def Definition) {
	srcPos, ok := r.host.UnitPos(source)
	if !ok {
		return
	}
	owner := r.host.Owner(source)

	var picks []donburi.Entity
	for _, u := range r.host.UnitsInRange(srcPos.XY(), def.Range) {
		if u == target || !r.host.UnitAlive(u) || !r.host.IsEnemy(u, owner) {
			continue
		}
		picks = append(picks, u)
	}
	r.rng.Shuffle(len(picks), func(i, j int) {
		picks[i], picks[j] = picks[j], picks[i]
	})
	picks = append(picks, target)

	for shots := 0; shots < def.MaxTargets && len(picks) > 0; shots++ {
		u := picks[len(picks)-1]
		picks = picks[:len(picks)-1]

		shot := def.Missile.Inherit()
		shot.Owner = owner
		shot.OnCollision = func(hit donburi.Entity) {
			r.collide(source, hit, amount, def)
		}
		shot.OnHitUnit = func(hit donburi.Entity) {
			r.directHit(source, hit, amount, def)
		}
		r.missiles.LaunchAt(srcPos, u, shot)
	}
}

// directHit applies pre-resolved damage. It goes through Apply so the
// registry never intercepts its own damage.
func (r *Registry) directHit(source, target donburi.Entity, amount float64, def Definition) {
	r.pipeline.Apply(damage.Event{
		Source:      source,
		Target:      target,
		Amount:      amount,
		Attack:      true,
		Ranged:      def.WeaponType != WeaponMelee,
		AttackType:  def.AttackType,
		DamageType:  def.DamageType,
		WeaponSound: def.WeaponSound,
		DamageID:    def.DamageID,
		Element:     def.DamageElement,
	})
}

func (r *Registry) collide(source, hit donburi.Entity, amount float64, def Definition) {
	if def.Missile.OnCollision != nil {
		def.Missile.OnCollision(hit)
	}
	if def.CollisionDamage {
		r.directHit(source, hit, amount*def.CollisionFactor, def)
	}
}

package attack

import (
	"fmt"
	"strings"

	"github.com/automoto/volley/damage"
	"github.com/automoto/volley/missile"
)

// WeaponType selects how an attack is resolved.
type WeaponType int

const (
	WeaponMelee   WeaponType = iota // adjacent, applied immediately
	WeaponInstant                   // ranged, applied immediately
	WeaponMissile                   // ranged volley of homing missiles
)

func (w WeaponType) String() string {
	switch w {
	case WeaponMelee:
		return "melee"
	case WeaponInstant:
		return "instant"
	case WeaponMissile:
		return "missile"
	default:
		return fmt.Sprintf("WeaponType(%d)", int(w))
	}
}

// ParseWeaponType maps a config name to a WeaponType.
func ParseWeaponType(s string) (WeaponType, error) {
	switch strings.ToLower(s) {
	case "melee":
		return WeaponMelee, nil
	case "instant":
		return WeaponInstant, nil
	case "missile":
		return WeaponMissile, nil
	}
	return 0, fmt.Errorf("unknown weapon type %q", s)
}

// Definition describes one named attack of a unit. Like missile.Definition it
// is a value template: registering it stores a copy.
type Definition struct {
	DamageID      string
	DamageElement string

	WeaponType  WeaponType
	AttackType  damage.AttackType
	DamageType  damage.DamageType
	WeaponSound damage.WeaponSound

	// Range and MaxTargets only apply to WeaponMissile.
	Range      float64
	MaxTargets int

	// Missile is the per-shot template. Its OnCollision callback runs for every
	// unit a shot passes through; OnHitUnit is replaced by the damage handler.
	Missile missile.Definition

	// CollisionDamage makes units a shot passes through take
	// CollisionFactor times the attack's damage.
	CollisionDamage bool
	CollisionFactor float64
}

// Inherit returns a copy of d, including its embedded missile template.
func (d Definition) Inherit() Definition {
	d.Missile = d.Missile.Inherit()
	return d
}

// Attacks holds the named attacks of one unit in insertion order.
type Attacks struct {
	names []string
	defs  map[string]Definition
}

func newAttacks() *Attacks {
	return &Attacks{defs: make(map[string]Definition)}
}

// set stores def under name. Overwriting keeps the original position.
func (a *Attacks) set(name string, def Definition) {
	if _, exists := a.defs[name]; !exists {
		a.names = append(a.names, name)
	}
	a.defs[name] = def
}

// Names returns the attack names in insertion order.
func (a *Attacks) Names() []string {
	return append([]string(nil), a.names...)
}

func (a *Attacks) Get(name string) (Definition, bool) {
	def, ok := a.defs[name]
	return def, ok
}

func (a *Attacks) Len() int {
	return len(a.names)
}

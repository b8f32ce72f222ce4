package sim

import (
	"fmt"

	"github.com/automoto/volley/attack"
	"github.com/automoto/volley/components"
	"github.com/automoto/volley/config"
	"github.com/automoto/volley/missile"
	"github.com/automoto/volley/shared/gamemath"
)

// BuildAttack turns a config preset into an attack definition owned by p.
// The registry replaces the owner per shot, so p only matters for callers
// launching the missile template directly.
func BuildAttack(preset config.AttackPresetConfig, p components.Player) (attack.Definition, error) {
	wt, err := attack.ParseWeaponType(preset.Weapon)
	if err != nil {
		return attack.Definition{}, err
	}

	def := attack.Definition{
		DamageID:        preset.DamageID,
		DamageElement:   preset.Element,
		WeaponType:      wt,
		AttackType:      preset.AttackType,
		DamageType:      preset.DamageType,
		WeaponSound:     preset.WeaponSound,
		Range:           preset.Range,
		MaxTargets:      preset.MaxTargets,
		CollisionDamage: preset.CollisionDamage,
		CollisionFactor: preset.CollisionFactor,
	}
	if wt != attack.WeaponMissile {
		return def, nil
	}

	if preset.Art == "" {
		return attack.Definition{}, fmt.Errorf("missile preset %q has no art", preset.DamageID)
	}
	m := missile.NewDefinition(preset.Art, p, preset.Speed)
	if preset.Scale > 0 {
		m.Scale = preset.Scale
	}
	m.Height = preset.Height
	m.CollisionSize = preset.CollisionSize
	if preset.Trail != "" {
		m = m.WithTrail(preset.Trail, gamemath.NewVec3(0, 0, preset.TrailOffsetZ))
	}
	def.Missile = m
	return def, nil
}

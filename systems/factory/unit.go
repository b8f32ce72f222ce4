package factory

import (
	"fmt"

	"github.com/automoto/volley/archetypes"
	"github.com/automoto/volley/components"
	"github.com/automoto/volley/config"
	"github.com/automoto/volley/tags"
	"github.com/solarlune/resolv"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// CreateUnit spawns a unit of the given config kind centred on (x, y).
func CreateUnit(w donburi.World, space *resolv.Space, kind string, owner components.Player, x, y float64) (*donburi.Entry, error) {
	kc, ok := config.Units[kind]
	if !ok {
		return nil, fmt.Errorf("unknown unit kind %q", kind)
	}

	var extra []donburi.IComponentType
	if kc.AttackCooldown > 0 {
		extra = append(extra, components.AutoAttack)
	}
	if kc.PatrolDistance > 0 && kc.PatrolSeconds > 0 {
		extra = append(extra, components.Patrol)
	}
	u := archetypes.Unit.Spawn(w, extra...)

	size := config.Space.UnitSize
	obj := resolv.NewObject(x-size/2, y-size/2, size, size, tags.ResolvUnit)
	obj.Data = u
	space.Add(obj)
	components.Object.Set(u, &components.ObjectData{Object: obj})

	components.Unit.Set(u, &components.UnitData{
		Owner:     owner,
		Kind:      kind,
		FlyHeight: kc.FlyHeight,
	})
	components.Health.Set(u, &components.HealthData{
		Current: kc.Health,
		Max:     kc.Health,
	})

	if u.HasComponent(components.AutoAttack) {
		components.AutoAttack.Set(u, &components.AutoAttackData{
			Damage:   kc.AttackDamage,
			Range:    kc.AttackRange,
			Cooldown: kc.AttackCooldown,
			Ranged:   kc.Ranged,
		})
	}

	// Patrolling units walk back and forth using a *gween.Sequence of tweens.
	if u.HasComponent(components.Patrol) {
		tw := gween.NewSequence()
		startX := float32(obj.X)
		endX := float32(obj.X + kc.PatrolDistance)
		leg := float32(kc.PatrolSeconds)
		tw.Add(
			gween.New(startX, endX, leg, ease.InOutQuad),
			gween.New(endX, startX, leg, ease.InOutQuad),
		)
		components.Patrol.Set(u, &components.PatrolData{Sequence: tw})
	}

	return u, nil
}

// RemoveUnit takes a unit out of the spatial index and the world.
func RemoveUnit(w donburi.World, e *donburi.Entry) {
	if e.HasComponent(components.Object) {
		obj := components.Object.Get(e)
		if obj.Object != nil && obj.Space != nil {
			obj.Space.Remove(obj.Object)
		}
	}
	w.Remove(e.Entity())
}

// Package host adapts a donburi world and a resolv space into the engine
// services the missile and attack packages rely on: visual-effect handles,
// unit state, faction checks and spatial range queries.
package host

import (
	"sort"

	"github.com/automoto/volley/archetypes"
	"github.com/automoto/volley/components"
	"github.com/automoto/volley/shared/gamemath"
	"github.com/automoto/volley/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

type Host struct {
	World donburi.World
	Space *resolv.Space

	// OnEffectCreated, when set, is called for every persistent effect handle
	// right after it is created (used for replication).
	OnEffectCreated func(e donburi.Entity)
}

func New(world donburi.World, space *resolv.Space) *Host {
	return &Host{
		World: world,
		Space: space,
	}
}

// AddEffect creates a visual-effect handle at pos.
func (h *Host) AddEffect(art string, pos gamemath.Vec3) donburi.Entity {
	entry := archetypes.Effect.Spawn(h.World)
	components.Effect.SetValue(entry, components.EffectData{
		Art:   art,
		X:     pos.X,
		Y:     pos.Y,
		Z:     pos.Z,
		Scale: 1,
	})
	if h.OnEffectCreated != nil {
		h.OnEffectCreated(entry.Entity())
	}
	return entry.Entity()
}

// RemoveEffect destroys an effect handle. Removing a stale handle is a no-op.
func (h *Host) RemoveEffect(e donburi.Entity) {
	if !h.World.Valid(e) {
		return
	}
	if !h.World.Entry(e).HasComponent(components.Effect) {
		return
	}
	h.World.Remove(e)
}

// EffectPos returns the current position of an effect handle.
func (h *Host) EffectPos(e donburi.Entity) (gamemath.Vec3, bool) {
	if !h.World.Valid(e) {
		return gamemath.Vec3{}, false
	}
	entry := h.World.Entry(e)
	if !entry.HasComponent(components.Effect) {
		return gamemath.Vec3{}, false
	}
	eff := components.Effect.Get(entry)
	return gamemath.NewVec3(eff.X, eff.Y, eff.Z), true
}

// SetEffect updates the transform of an effect handle.
func (h *Host) SetEffect(e donburi.Entity, pos gamemath.Vec3, scale, yaw, pitch float64) {
	if !h.World.Valid(e) {
		return
	}
	entry := h.World.Entry(e)
	if !entry.HasComponent(components.Effect) {
		return
	}
	eff := components.Effect.Get(entry)
	eff.X, eff.Y, eff.Z = pos.X, pos.Y, pos.Z
	eff.Scale = scale
	eff.Yaw = yaw
	eff.Pitch = pitch
}

// FlashEffect spawns a fire-and-forget effect that is removed after it has
// been rendered once.
func (h *Host) FlashEffect(art string, pos gamemath.Vec3, scale, yaw, pitch float64) donburi.Entity {
	entry := archetypes.Trail.Spawn(h.World)
	components.Effect.SetValue(entry, components.EffectData{
		Art:   art,
		X:     pos.X,
		Y:     pos.Y,
		Z:     pos.Z,
		Scale: scale,
		Yaw:   yaw,
		Pitch: pitch,
	})
	components.AutoDestroy.SetValue(entry, components.AutoDestroyData{FramesRemaining: 1})
	return entry.Entity()
}

// UnitExists reports whether u still refers to a unit in the world, dead or
// alive.
func (h *Host) UnitExists(u donburi.Entity) bool {
	if u == donburi.Null || !h.World.Valid(u) {
		return false
	}
	return h.World.Entry(u).HasComponent(components.Unit)
}

// UnitAlive reports whether u exists and has not started dying.
func (h *Host) UnitAlive(u donburi.Entity) bool {
	if !h.UnitExists(u) {
		return false
	}
	entry := h.World.Entry(u)
	if entry.HasComponent(components.Death) {
		return false
	}
	if entry.HasComponent(components.Health) {
		return components.Health.Get(entry).Current > 0
	}
	return true
}

// UnitPos returns the centre of u at its flying height.
func (h *Host) UnitPos(u donburi.Entity) (gamemath.Vec3, bool) {
	if !h.UnitExists(u) {
		return gamemath.Vec3{}, false
	}
	entry := h.World.Entry(u)
	obj := components.Object.Get(entry)
	unit := components.Unit.Get(entry)
	return gamemath.NewVec3(obj.X+obj.W/2, obj.Y+obj.H/2, unit.FlyHeight), true
}

// MoveUnit places the centre of u at the given ground position.
func (h *Host) MoveUnit(u donburi.Entity, pos dmath.Vec2) {
	if !h.UnitExists(u) {
		return
	}
	obj := components.Object.Get(h.World.Entry(u))
	obj.X = pos.X - obj.W/2
	obj.Y = pos.Y - obj.H/2
	obj.Update()
}

// Owner returns the controlling player of u.
func (h *Host) Owner(u donburi.Entity) components.Player {
	if !h.UnitExists(u) {
		return components.Player{}
	}
	return components.Unit.Get(h.World.Entry(u)).Owner
}

// IsEnemy reports whether u is hostile to the given player.
func (h *Host) IsEnemy(u donburi.Entity, p components.Player) bool {
	if !h.UnitExists(u) {
		return false
	}
	return components.Unit.Get(h.World.Entry(u)).Owner.Team != p.Team
}

// UnitsInRange returns every unit whose centre lies within radius of the
// ground point center, ordered by entity id. Dead units are included; callers
// filter with UnitAlive.
func (h *Host) UnitsInRange(center dmath.Vec2, radius float64) []donburi.Entity {
	if radius <= 0 {
		return nil
	}

	probe := resolv.NewObject(center.X-radius, center.Y-radius, radius*2, radius*2, tags.ResolvProbe)
	h.Space.Add(probe)
	defer h.Space.Remove(probe)

	check := probe.Check(0, 0, tags.ResolvUnit)
	if check == nil {
		return nil
	}

	seen := make(map[donburi.Entity]struct{})
	var found []donburi.Entity
	for _, obj := range check.ObjectsByTags(tags.ResolvUnit) {
		entry, ok := obj.Data.(*donburi.Entry)
		if !ok || entry == nil || !entry.Valid() {
			continue
		}
		objCenter := dmath.Vec2{X: obj.X + obj.W/2, Y: obj.Y + obj.H/2}
		if gamemath.Distance2D(center, objCenter) > radius {
			continue
		}
		e := entry.Entity()
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		found = append(found, e)
	}

	sort.Slice(found, func(i, j int) bool { return found[i] < found[j] })
	return found
}

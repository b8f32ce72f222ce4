package host

import (
	"testing"

	"github.com/automoto/volley/archetypes"
	"github.com/automoto/volley/components"
	"github.com/automoto/volley/shared/gamemath"
	"github.com/automoto/volley/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

func newTestHost() *Host {
	return New(donburi.NewWorld(), resolv.NewSpace(1024, 1024, 32, 32))
}

func spawnUnit(h *Host, x, y float64, team int, fly float64) donburi.Entity {
	e := archetypes.Unit.Spawn(h.World)
	obj := resolv.NewObject(x-12, y-12, 24, 24, tags.ResolvUnit)
	obj.Data = e
	h.Space.Add(obj)
	components.Object.Set(e, &components.ObjectData{Object: obj})
	components.Unit.Set(e, &components.UnitData{Owner: components.Player{ID: team, Team: team}, FlyHeight: fly})
	components.Health.Set(e, &components.HealthData{Current: 50, Max: 50})
	return e.Entity()
}

func TestUnitsInRange(t *testing.T) {
	h := newTestHost()
	near := spawnUnit(h, 100, 100, 1, 0)
	edge := spawnUnit(h, 160, 100, 2, 0)
	far := spawnUnit(h, 400, 400, 2, 0)
	// Bounding boxes overlap the probe but the centre is outside the radius.
	corner := spawnUnit(h, 150, 150, 2, 0)

	got := h.UnitsInRange(dmath.Vec2{X: 100, Y: 100}, 60)
	want := map[donburi.Entity]bool{near: true, edge: true}
	if len(got) != len(want) {
		t.Fatalf("UnitsInRange = %v, want %v and %v", got, near, edge)
	}
	for _, e := range got {
		if !want[e] {
			t.Fatalf("unexpected unit %v in range (far=%v corner=%v)", e, far, corner)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("UnitsInRange not sorted: %v", got)
		}
	}

	if n := len(h.Space.Objects()); n != 4 {
		t.Fatalf("space holds %d objects, probe leaked", n)
	}
	if got := h.UnitsInRange(dmath.Vec2{X: 100, Y: 100}, 0); got != nil {
		t.Fatalf("zero radius returned %v", got)
	}
}

func TestUnitState(t *testing.T) {
	h := newTestHost()
	ground := spawnUnit(h, 50, 60, 1, 0)
	flyer := spawnUnit(h, 80, 60, 2, 120)

	pos, ok := h.UnitPos(flyer)
	if !ok || pos != gamemath.NewVec3(80, 60, 120) {
		t.Fatalf("UnitPos(flyer) = %v, %v", pos, ok)
	}
	if !h.IsEnemy(flyer, h.Owner(ground)) {
		t.Fatal("units on different teams should be enemies")
	}
	if h.IsEnemy(ground, components.Player{ID: 9, Team: 1}) {
		t.Fatal("same team should not be hostile")
	}

	components.Health.Get(h.World.Entry(ground)).Current = 0
	if h.UnitAlive(ground) {
		t.Fatal("unit at 0 health reported alive")
	}
	if !h.UnitExists(ground) {
		t.Fatal("dead unit should still exist until removed")
	}

	h.World.Remove(flyer)
	if h.UnitExists(flyer) || h.UnitAlive(flyer) {
		t.Fatal("removed unit still reported")
	}
	if _, ok := h.UnitPos(flyer); ok {
		t.Fatal("UnitPos succeeded for removed unit")
	}
	if h.UnitExists(donburi.Null) {
		t.Fatal("Null reported as a unit")
	}
}

func TestMoveUnit(t *testing.T) {
	h := newTestHost()
	u := spawnUnit(h, 50, 50, 1, 0)
	h.MoveUnit(u, dmath.Vec2{X: 300, Y: 200})

	pos, _ := h.UnitPos(u)
	if pos.X != 300 || pos.Y != 200 {
		t.Fatalf("UnitPos after move = %v", pos)
	}
	if got := h.UnitsInRange(dmath.Vec2{X: 300, Y: 200}, 10); len(got) != 1 || got[0] != u {
		t.Fatalf("moved unit not found at new position: %v", got)
	}
}

func TestEffects(t *testing.T) {
	h := newTestHost()
	var created []donburi.Entity
	h.OnEffectCreated = func(e donburi.Entity) { created = append(created, e) }

	e := h.AddEffect("bolt", gamemath.NewVec3(1, 2, 3))
	if len(created) != 1 || created[0] != e {
		t.Fatalf("OnEffectCreated got %v", created)
	}
	h.SetEffect(e, gamemath.NewVec3(4, 5, 6), 2, 0.5, -0.25)
	data := components.Effect.Get(h.World.Entry(e))
	if data.Art != "bolt" || data.Scale != 2 || data.Yaw != 0.5 || data.Pitch != -0.25 {
		t.Fatalf("effect = %+v", data)
	}
	if pos, ok := h.EffectPos(e); !ok || pos != gamemath.NewVec3(4, 5, 6) {
		t.Fatalf("EffectPos = %v, %v", pos, ok)
	}

	flash := h.FlashEffect("spark", gamemath.Vec3{}, 1, 0, 0)
	if !h.World.Entry(flash).HasComponent(components.AutoDestroy) {
		t.Fatal("flash effect has no AutoDestroy")
	}
	if len(created) != 1 {
		t.Fatal("flash effects should not be reported as persistent effects")
	}

	h.RemoveEffect(e)
	h.RemoveEffect(e)
	if _, ok := h.EffectPos(e); ok {
		t.Fatal("EffectPos succeeded after RemoveEffect")
	}

	// RemoveEffect never deletes units.
	u := spawnUnit(h, 10, 10, 1, 0)
	h.RemoveEffect(u)
	if !h.UnitExists(u) {
		t.Fatal("RemoveEffect removed a unit")
	}
}

package missile

import (
	"math"
	"testing"

	"github.com/automoto/volley/archetypes"
	"github.com/automoto/volley/components"
	"github.com/automoto/volley/host"
	"github.com/automoto/volley/shared/gamemath"
	"github.com/automoto/volley/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	dmath "github.com/yohamta/donburi/features/math"
)

const testPeriod = 0.03

func newTestHost() *host.Host {
	return host.New(donburi.NewWorld(), resolv.NewSpace(2048, 2048, 32, 32))
}

func spawnUnit(h *host.Host, x, y float64, team int) donburi.Entity {
	e := archetypes.Unit.Spawn(h.World)
	obj := resolv.NewObject(x-12, y-12, 24, 24, tags.ResolvUnit)
	obj.Data = e
	h.Space.Add(obj)
	components.Object.Set(e, &components.ObjectData{Object: obj})
	components.Unit.Set(e, &components.UnitData{Owner: components.Player{ID: team, Team: team}})
	components.Health.Set(e, &components.HealthData{Current: 100, Max: 100})
	return e.Entity()
}

func countEffects(w donburi.World) int {
	return donburi.NewQuery(filter.Contains(components.Effect)).Count(w)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestPointTargetArrivesOnSchedule(t *testing.T) {
	h := newTestHost()
	s := NewScheduler(h, testPeriod)

	target := gamemath.NewVec3(100, 0, 0)
	var hits []gamemath.Vec3
	def := NewDefinition("bolt", components.Player{Team: 1}, 300).
		WithOnHitPos(func(pos gamemath.Vec3) { hits = append(hits, pos) })

	m := s.Launch(gamemath.NewVec3(0, 0, 0), target, def)
	want := gamemath.TicksToArrive(100, gamemath.StepDistance(300, testPeriod))
	if want != 12 {
		t.Fatalf("TicksToArrive = %d, want 12", want)
	}

	for i := 1; i < want; i++ {
		s.Tick()
		if m.Done() {
			t.Fatalf("missile arrived early on tick %d", i)
		}
	}
	s.Tick()
	if !m.Done() {
		t.Fatalf("missile still flying after %d ticks", want)
	}
	if m.Ticks() != want {
		t.Fatalf("Ticks() = %d, want %d", m.Ticks(), want)
	}
	if len(hits) != 1 || hits[0] != target {
		t.Fatalf("hits = %v, want one hit at %v", hits, target)
	}
	if h.World.Valid(m.Effect()) {
		t.Fatal("effect handle still valid after arrival")
	}
	if s.Active() != 0 {
		t.Fatalf("Active() = %d, want 0", s.Active())
	}
}

func TestExactStepMultiplesArriveOnSchedule(t *testing.T) {
	for _, dist := range []float64{90, 45, 18, 9} {
		h := newTestHost()
		s := NewScheduler(h, testPeriod)

		var hits []gamemath.Vec3
		def := NewDefinition("bolt", components.Player{Team: 1}, 300).
			WithOnHitPos(func(pos gamemath.Vec3) { hits = append(hits, pos) })
		target := gamemath.NewVec3(dist, 0, 0)
		m := s.Launch(gamemath.Vec3{}, target, def)

		want := int(math.Ceil(dist / 9))
		for i := 0; i < 100 && !m.Done(); i++ {
			s.Tick()
		}
		if m.Ticks() != want {
			t.Fatalf("dist %v: arrived after %d ticks, want %d", dist, m.Ticks(), want)
		}
		if len(hits) != 1 || hits[0] != target {
			t.Fatalf("dist %v: hits = %v, want one hit at %v", dist, hits, target)
		}
	}
}

func TestLaunchStartsOnNextTick(t *testing.T) {
	h := newTestHost()
	s := NewScheduler(h, testPeriod)

	src := gamemath.NewVec3(10, 10, 0)
	m := s.Launch(src, gamemath.NewVec3(500, 10, 0), NewDefinition("bolt", components.Player{}, 300))
	pos, ok := h.EffectPos(m.Effect())
	if !ok || pos != src {
		t.Fatalf("effect at %v (ok=%v), want %v before first tick", pos, ok, src)
	}
	if m.Ticks() != 0 {
		t.Fatalf("Ticks() = %d before first tick", m.Ticks())
	}

	s.Tick()
	pos, _ = h.EffectPos(m.Effect())
	if !approx(pos.X, 19) {
		t.Fatalf("x after one tick = %v, want 19", pos.X)
	}
}

func TestHeightOffsetRaisesFlightPath(t *testing.T) {
	h := newTestHost()
	s := NewScheduler(h, testPeriod)

	def := NewDefinition("bolt", components.Player{}, 300)
	def.Height = 40
	var hit gamemath.Vec3
	def = def.WithOnHitPos(func(pos gamemath.Vec3) { hit = pos })

	m := s.Launch(gamemath.NewVec3(0, 0, 40), gamemath.NewVec3(90, 0, 0), def)
	s.Tick()
	pos, _ := h.EffectPos(m.Effect())
	if !approx(pos.Z, 40) {
		t.Fatalf("z = %v, want flight at height 40", pos.Z)
	}
	for i := 0; i < 20 && !m.Done(); i++ {
		s.Tick()
	}
	if !m.Done() {
		t.Fatal("missile never arrived")
	}
	if hit != gamemath.NewVec3(90, 0, 0) {
		t.Fatalf("hit pos = %v, want target point without height", hit)
	}
}

func TestCollisionFiresOncePerUnit(t *testing.T) {
	h := newTestHost()
	s := NewScheduler(h, testPeriod)

	enemy := spawnUnit(h, 100, 0, 2)
	ally := spawnUnit(h, 150, 0, 1)

	collided := map[donburi.Entity]int{}
	def := NewDefinition("bolt", components.Player{ID: 1, Team: 1}, 300).
		WithOnCollision(func(u donburi.Entity) { collided[u]++ })
	def.CollisionSize = 30

	m := s.Launch(gamemath.NewVec3(0, 0, 0), gamemath.NewVec3(300, 0, 0), def)
	for i := 0; i < 100 && !m.Done(); i++ {
		s.Tick()
	}
	if !m.Done() {
		t.Fatal("missile never arrived")
	}
	if collided[enemy] != 1 {
		t.Fatalf("enemy collisions = %d, want 1", collided[enemy])
	}
	if collided[ally] != 0 {
		t.Fatalf("ally collisions = %d, want 0", collided[ally])
	}
}

func TestCollisionSkipsDeadUnits(t *testing.T) {
	h := newTestHost()
	s := NewScheduler(h, testPeriod)

	dead := spawnUnit(h, 60, 0, 2)
	components.Health.Get(h.World.Entry(dead)).Current = 0

	calls := 0
	def := NewDefinition("bolt", components.Player{Team: 1}, 300).
		WithOnCollision(func(donburi.Entity) { calls++ })
	def.CollisionSize = 30

	m := s.Launch(gamemath.NewVec3(0, 0, 0), gamemath.NewVec3(120, 0, 0), def)
	for i := 0; i < 50 && !m.Done(); i++ {
		s.Tick()
	}
	if calls != 0 {
		t.Fatalf("dead unit triggered %d collisions", calls)
	}
}

func TestLaunchAtInvalidTargetReturnsNil(t *testing.T) {
	h := newTestHost()
	s := NewScheduler(h, testPeriod)

	def := NewDefinition("bolt", components.Player{}, 300)
	if m := s.LaunchAt(gamemath.Vec3{}, donburi.Null, def); m != nil {
		t.Fatal("LaunchAt(Null) returned a missile")
	}

	u := spawnUnit(h, 50, 50, 2)
	h.World.Remove(u)
	if m := s.LaunchAt(gamemath.Vec3{}, u, def); m != nil {
		t.Fatal("LaunchAt(removed unit) returned a missile")
	}
	if s.Active() != 0 {
		t.Fatalf("Active() = %d, want 0", s.Active())
	}
	if n := countEffects(h.World); n != 0 {
		t.Fatalf("%d effects allocated for rejected launches", n)
	}
}

func TestLaunchAtDeadUnitReturnsNil(t *testing.T) {
	h := newTestHost()
	s := NewScheduler(h, testPeriod)

	u := spawnUnit(h, 50, 50, 2)
	entry := h.World.Entry(u)
	components.Health.Get(entry).Current = 0
	donburi.Add(entry, components.Death, &components.DeathData{Timer: 10})

	if m := s.LaunchAt(gamemath.Vec3{}, u, NewDefinition("bolt", components.Player{}, 300)); m != nil {
		t.Fatal("LaunchAt(dying unit) returned a missile")
	}
	if s.Active() != 0 {
		t.Fatalf("Active() = %d, want 0", s.Active())
	}
	if n := countEffects(h.World); n != 0 {
		t.Fatalf("%d effects allocated for a dying target", n)
	}
}

func TestHomingFollowsMovingUnit(t *testing.T) {
	h := newTestHost()
	s := NewScheduler(h, testPeriod)

	u := spawnUnit(h, 100, 0, 2)
	var hitPos gamemath.Vec3
	var hitUnit donburi.Entity
	def := NewDefinition("bolt", components.Player{Team: 1}, 300).
		WithOnHitPos(func(pos gamemath.Vec3) { hitPos = pos }).
		WithOnHitUnit(func(e donburi.Entity) { hitUnit = e })

	m := s.LaunchAt(gamemath.Vec3{}, u, def)
	if m == nil {
		t.Fatal("LaunchAt returned nil for a live unit")
	}
	s.Tick()
	s.Tick()
	h.MoveUnit(u, dmath.Vec2{X: 200, Y: 0})

	for i := 0; i < 100 && !m.Done(); i++ {
		s.Tick()
	}
	if !m.Done() {
		t.Fatal("missile never caught its target")
	}
	if hitUnit != u {
		t.Fatalf("OnHitUnit got %v, want %v", hitUnit, u)
	}
	if hitPos != gamemath.NewVec3(200, 0, 0) {
		t.Fatalf("hit pos = %v, want unit's new position", hitPos)
	}
}

func TestRemovedTargetKeepsLastKnownPosition(t *testing.T) {
	h := newTestHost()
	s := NewScheduler(h, testPeriod)

	u := spawnUnit(h, 90, 0, 2)
	var hitPos gamemath.Vec3
	def := NewDefinition("bolt", components.Player{Team: 1}, 300).
		WithOnHitPos(func(pos gamemath.Vec3) { hitPos = pos })

	m := s.LaunchAt(gamemath.Vec3{}, u, def)
	s.Tick()
	h.World.Remove(u)
	for i := 0; i < 50 && !m.Done(); i++ {
		s.Tick()
	}
	if !m.Done() {
		t.Fatal("missile never arrived")
	}
	if hitPos != gamemath.NewVec3(90, 0, 0) {
		t.Fatalf("hit pos = %v, want last known position", hitPos)
	}
}

func TestDefinitionChangesDoNotReachLiveMissiles(t *testing.T) {
	h := newTestHost()
	s := NewScheduler(h, testPeriod)

	var first, second int
	def := NewDefinition("bolt", components.Player{}, 300).
		WithOnHitPos(func(gamemath.Vec3) { first++ })
	m := s.Launch(gamemath.Vec3{}, gamemath.NewVec3(5, 0, 0), def)

	def.Speed = 0
	def = def.WithOnHitPos(func(gamemath.Vec3) { second++ })

	s.Tick()
	if !m.Done() {
		t.Fatal("missile did not arrive")
	}
	if first != 1 || second != 0 {
		t.Fatalf("first=%d second=%d, want the launch-time callback only", first, second)
	}
}

func TestWithCallbacksAreIndependent(t *testing.T) {
	var pos, unit, coll int
	def := NewDefinition("bolt", components.Player{}, 1).
		WithOnHitPos(func(gamemath.Vec3) { pos++ }).
		WithOnHitUnit(func(donburi.Entity) { unit++ }).
		WithOnCollision(func(donburi.Entity) { coll++ })

	child := def.Inherit().WithOnHitUnit(func(donburi.Entity) {})
	child.OnHitPos(gamemath.Vec3{})
	child.OnCollision(donburi.Null)
	child.OnHitUnit(donburi.Null)
	def.OnHitUnit(donburi.Null)

	if pos != 1 || coll != 1 {
		t.Fatalf("sibling callbacks lost: pos=%d coll=%d", pos, coll)
	}
	if unit != 1 {
		t.Fatalf("parent OnHitUnit called %d times, want 1", unit)
	}
}

func TestStopDestroysOnce(t *testing.T) {
	h := newTestHost()
	s := NewScheduler(h, testPeriod)

	u := spawnUnit(h, 500, 0, 2)
	var hitPos, hitUnit int
	def := NewDefinition("bolt", components.Player{Team: 1}, 300).
		WithOnHitPos(func(gamemath.Vec3) { hitPos++ }).
		WithOnHitUnit(func(donburi.Entity) { hitUnit++ })

	m := s.LaunchAt(gamemath.Vec3{}, u, def)
	s.Tick()
	s.Stop(m)
	s.Stop(m)
	s.Tick()

	if hitPos != 1 || hitUnit != 1 {
		t.Fatalf("hitPos=%d hitUnit=%d, want 1 each", hitPos, hitUnit)
	}
	if s.Active() != 0 {
		t.Fatalf("Active() = %d after Stop", s.Active())
	}
}

func TestEffectRemovedBeforeCallbacks(t *testing.T) {
	h := newTestHost()
	s := NewScheduler(h, testPeriod)

	var m *Missile
	valid := true
	def := NewDefinition("bolt", components.Player{}, 300).
		WithOnHitPos(func(gamemath.Vec3) { valid = h.World.Valid(m.Effect()) })
	m = s.Launch(gamemath.Vec3{}, gamemath.NewVec3(1, 0, 0), def)
	s.Tick()
	if valid {
		t.Fatal("effect handle still valid inside OnHitPos")
	}
}

func TestPanickingMissileIsAbandoned(t *testing.T) {
	h := newTestHost()
	s := NewScheduler(h, testPeriod)

	spawnUnit(h, 20, 0, 2)
	hitCalls := 0
	bad := NewDefinition("bad", components.Player{Team: 1}, 300).
		WithOnCollision(func(donburi.Entity) { panic("boom") }).
		WithOnHitPos(func(gamemath.Vec3) { hitCalls++ })
	bad.CollisionSize = 30

	good := NewDefinition("good", components.Player{Team: 1}, 300)
	gm := s.Launch(gamemath.NewVec3(0, 100, 0), gamemath.NewVec3(0, 105, 0), good)
	bm := s.Launch(gamemath.Vec3{}, gamemath.NewVec3(200, 0, 0), bad)

	s.Tick()
	if !bm.Done() {
		t.Fatal("panicking missile still active")
	}
	if hitCalls != 0 {
		t.Fatal("abandoned missile ran its hit callback")
	}
	if h.World.Valid(bm.Effect()) {
		t.Fatal("abandoned missile leaked its effect")
	}
	if !gm.Done() {
		t.Fatal("other missiles should keep ticking")
	}
}

func TestTrailFlashesEveryTick(t *testing.T) {
	h := newTestHost()
	s := NewScheduler(h, testPeriod)

	def := NewDefinition("bolt", components.Player{}, 300).
		WithTrail("spark", gamemath.NewVec3(0, 0, -5))
	s.Launch(gamemath.NewVec3(0, 0, 10), gamemath.NewVec3(100, 0, 10), def)

	s.Tick()
	s.Tick()
	var trails []components.EffectData
	components.AutoDestroy.Each(h.World, func(e *donburi.Entry) {
		trails = append(trails, *components.Effect.Get(e))
	})
	if len(trails) != 2 {
		t.Fatalf("got %d trail flashes, want 2", len(trails))
	}
	if trails[0].Art != "spark" || !approx(trails[0].Z, 5) {
		t.Fatalf("trail = %+v, want spark at z 5", trails[0])
	}
}

func TestCloseDestroysEverything(t *testing.T) {
	h := newTestHost()
	s := NewScheduler(h, testPeriod)

	hits := 0
	relaunched := 0
	var def Definition
	def = NewDefinition("bolt", components.Player{}, 300).
		WithOnHitPos(func(gamemath.Vec3) {
			hits++
			s.Launch(gamemath.Vec3{}, gamemath.NewVec3(1000, 0, 0),
				NewDefinition("echo", components.Player{}, 300).
					WithOnHitPos(func(gamemath.Vec3) { relaunched++ }))
		})
	s.Launch(gamemath.Vec3{}, gamemath.NewVec3(1000, 0, 0), def)
	s.Tick()
	s.Launch(gamemath.Vec3{}, gamemath.NewVec3(1000, 0, 0), def)

	s.Close()
	if hits != 2 {
		t.Fatalf("hits = %d, want 2", hits)
	}
	if relaunched != 0 {
		t.Fatal("missiles launched during Close ran their callbacks")
	}
	if s.Active() != 0 {
		t.Fatalf("Active() = %d after Close", s.Active())
	}
	if n := countEffects(h.World); n != 0 {
		t.Fatalf("%d effects left after Close", n)
	}
}

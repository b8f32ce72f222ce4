// Package sim runs a headless arena: units from an arena file fight each
// other with their native attacks, and units that carry registered attacks
// have those resolved through the attack registry and missile scheduler.
package sim

import (
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/automoto/volley/attack"
	"github.com/automoto/volley/components"
	"github.com/automoto/volley/config"
	"github.com/automoto/volley/damage"
	"github.com/automoto/volley/host"
	"github.com/automoto/volley/missile"
	"github.com/automoto/volley/shared/leveldata"
	"github.com/automoto/volley/shared/netcomponents"
	"github.com/automoto/volley/systems/factory"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	dmath "github.com/yohamta/donburi/features/math"
)

var unitQuery = donburi.NewQuery(filter.Contains(components.Unit))

// Stats are running totals gathered from damage.Applied events.
type Stats struct {
	Applications int
	TotalDamage  float64
	Kills        int
}

type Simulation struct {
	World    donburi.World
	Space    *resolv.Space
	Host     *host.Host
	Pipeline *damage.Pipeline
	Missiles *missile.Scheduler
	Attacks  *attack.Registry

	period float64
	ticks  uint64
	stats  Stats
}

// New creates an empty simulation of the given size in pixels. A
// non-positive size falls back to config.Space.
func New(width, height int, seed uint64) *Simulation {
	if width <= 0 || height <= 0 {
		width, height = config.Space.Width, config.Space.Height
	}
	world := donburi.NewWorld()
	space := resolv.NewSpace(width, height, config.Space.CellSize, config.Space.CellSize)

	s := &Simulation{
		World:  world,
		Space:  space,
		Host:   host.New(world, space),
		period: config.Missile.AnimationPeriod,
	}
	s.Pipeline = damage.NewPipeline(world)
	s.Missiles = missile.NewScheduler(s.Host, s.period)
	s.Attacks = attack.NewRegistry(s.Host, s.Pipeline, s.Missiles, rand.New(rand.NewPCG(seed, seed)))

	damage.Applied.Subscribe(world, s.onDamageApplied)
	return s
}

// NewFromArena builds a simulation sized to the arena and spawns its units.
func NewFromArena(data *leveldata.ArenaData, seed uint64) (*Simulation, error) {
	s := New(data.Width, data.Height, seed)
	if err := s.LoadArena(data); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// LoadArena spawns every unit of the arena.
func (s *Simulation) LoadArena(data *leveldata.ArenaData) error {
	for _, u := range data.Units {
		owner := components.Player{ID: u.Player, Team: u.Team}
		if _, err := s.SpawnUnit(u.Kind, owner, dmath.Vec2{X: u.X, Y: u.Y}); err != nil {
			return fmt.Errorf("spawn %s at (%.0f,%.0f): %w", u.Kind, u.X, u.Y, err)
		}
	}
	log.Printf("[sim] loaded %d units", len(data.Units))
	return nil
}

// SpawnUnit creates a unit and registers the attacks its kind lists.
func (s *Simulation) SpawnUnit(kind string, owner components.Player, pos dmath.Vec2) (donburi.Entity, error) {
	entry, err := factory.CreateUnit(s.World, s.Space, kind, owner, pos.X, pos.Y)
	if err != nil {
		return donburi.Null, err
	}
	e := entry.Entity()

	for _, name := range config.Units[kind].Attacks {
		preset, ok := config.AttackPresets[name]
		if !ok {
			factory.RemoveUnit(s.World, entry)
			return donburi.Null, fmt.Errorf("unknown attack preset %q", name)
		}
		def, err := BuildAttack(preset, owner)
		if err != nil {
			factory.RemoveUnit(s.World, entry)
			return donburi.Null, fmt.Errorf("attack %q: %w", name, err)
		}
		s.Attacks.AddAttack(e, name, def)
	}
	return e, nil
}

// Tick advances the simulation by one missile period.
func (s *Simulation) Tick() {
	s.ticks++
	s.updateEffects()
	s.updatePatrols()
	s.updateAutoAttacks()
	s.Missiles.Tick()
	s.updateCombat()
	s.processEvents()
}

// Period is the duration of one tick in seconds.
func (s *Simulation) Period() float64 {
	return s.period
}

func (s *Simulation) Ticks() uint64 {
	return s.ticks
}

func (s *Simulation) Stats() Stats {
	return s.stats
}

// UnitCount returns the number of units still in the world, dying included.
func (s *Simulation) UnitCount() int {
	return unitQuery.Count(s.World)
}

// TeamsAlive returns the number of living units per team.
func (s *Simulation) TeamsAlive() map[int]int {
	teams := make(map[int]int)
	components.Unit.Each(s.World, func(e *donburi.Entry) {
		if s.Host.UnitAlive(e.Entity()) {
			teams[components.Unit.Get(e).Owner.Team]++
		}
	})
	return teams
}

// Close destroys all missiles in flight and unhooks the attack registry.
func (s *Simulation) Close() {
	s.Missiles.Close()
	s.Attacks.Close()
	s.processEvents()
}

func (s *Simulation) onDamageApplied(_ donburi.World, ev damage.Event) {
	s.stats.Applications++
	s.stats.TotalDamage += ev.Amount
}

// Winner reports the last team standing. over is false while two or more
// teams have living units; with no survivors at all winner is 0.
func (s *Simulation) Winner() (winner int, over bool) {
	teams := s.TeamsAlive()
	if len(teams) > 1 {
		return 0, false
	}
	for t := range teams {
		winner = t
	}
	return winner, true
}

// UnitView snapshots a unit for replication and rendering.
func (s *Simulation) UnitView(e *donburi.Entry) netcomponents.NetUnitData {
	unit := components.Unit.Get(e)
	hp := components.Health.Get(e)
	pos, _ := s.Host.UnitPos(e.Entity())
	return netcomponents.NetUnitData{
		X:         pos.X,
		Y:         pos.Y,
		Z:         pos.Z,
		Kind:      unit.Kind,
		Player:    unit.Owner.ID,
		Team:      unit.Owner.Team,
		Health:    hp.Current,
		MaxHealth: hp.Max,
		Dying:     e.HasComponent(components.Death),
	}
}

// MatchView snapshots the match counters.
func (s *Simulation) MatchView() netcomponents.NetMatchData {
	m := netcomponents.NetMatchData{
		Tick:         s.ticks,
		Missiles:     s.Missiles.Active(),
		Applications: s.stats.Applications,
		TotalDamage:  s.stats.TotalDamage,
		Kills:        s.stats.Kills,
	}
	if winner, over := s.Winner(); over {
		m.State = netcomponents.MatchStateFinished
		m.WinnerTeam = winner
	}
	return m
}

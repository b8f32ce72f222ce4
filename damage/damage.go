// Package damage is the host damage pipeline. Native damage goes through Deal,
// which lets pre-damage hooks inspect and abort it before it is committed.
// Apply commits pre-resolved damage without running any hooks.
package damage

import (
	"log"
	"sort"

	"github.com/automoto/volley/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Event is one damage application travelling through the pipeline.
type Event struct {
	Source donburi.Entity
	Target donburi.Entity
	Amount float64

	Attack bool // true for weapon attacks, false for spells and triggers
	Ranged bool

	AttackType  AttackType
	DamageType  DamageType
	WeaponSound WeaponSound

	DamageID string // opaque tag forwarded from attack definitions
	Element  string

	aborted bool
}

// Abort prevents the event from being committed by Deal.
func (e *Event) Abort() {
	e.aborted = true
}

func (e *Event) Aborted() bool {
	return e.aborted
}

// Applied is published after an event has been committed to its target.
var Applied = events.NewEventType[Event]()

// Priority orders pre-damage hooks. Lower values run earlier.
type Priority int

const (
	PriorityFirst  Priority = 0
	PriorityNormal Priority = 50
	PriorityLast   Priority = 100
)

// Hook inspects a pending event. It may change it or Abort it.
type Hook func(ev *Event)

type hookEntry struct {
	id       int
	priority Priority
	fn       Hook
}

// Pipeline resolves damage against entities of a donburi world.
type Pipeline struct {
	world  donburi.World
	hooks  []hookEntry
	nextID int
}

func NewPipeline(world donburi.World) *Pipeline {
	return &Pipeline{world: world}
}

// OnPreDamage registers a hook and returns a function that removes it.
// Hooks with equal priority run in registration order.
func (p *Pipeline) OnPreDamage(priority Priority, fn Hook) (cancel func()) {
	p.nextID++
	id := p.nextID
	p.hooks = append(p.hooks, hookEntry{id: id, priority: priority, fn: fn})
	sort.SliceStable(p.hooks, func(i, j int) bool {
		return p.hooks[i].priority < p.hooks[j].priority
	})

	return func() {
		for i, h := range p.hooks {
			if h.id == id {
				p.hooks = append(p.hooks[:i:i], p.hooks[i+1:]...)
				return
			}
		}
	}
}

// Deal runs ev through every pre-damage hook and commits it unless a hook
// aborted it. It reports whether the damage was committed.
func (p *Pipeline) Deal(ev Event) bool {
	hooks := append([]hookEntry(nil), p.hooks...)
	for _, h := range hooks {
		p.runHook(h, &ev)
	}
	if ev.aborted {
		return false
	}
	return p.commit(ev)
}

// Apply commits ev directly. No hook sees it, so handlers may call Apply from
// inside a hook without being intercepted again.
func (p *Pipeline) Apply(ev Event) bool {
	return p.commit(ev)
}

func (p *Pipeline) runHook(h hookEntry, ev *Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[damage] pre-damage hook %d panicked: %v", h.id, r)
		}
	}()
	h.fn(ev)
}

func (p *Pipeline) commit(ev Event) bool {
	if ev.Amount <= 0 || !p.world.Valid(ev.Target) {
		return false
	}
	entry := p.world.Entry(ev.Target)
	if !entry.HasComponent(components.Health) || entry.HasComponent(components.Death) {
		return false
	}

	if entry.HasComponent(components.DamageEvent) {
		dmg := components.DamageEvent.Get(entry)
		dmg.Amount += ev.Amount
		dmg.Hits++
		dmg.LastSource = ev.Source
	} else {
		donburi.Add(entry, components.DamageEvent, &components.DamageEventData{
			Amount:     ev.Amount,
			Hits:       1,
			LastSource: ev.Source,
		})
	}

	Applied.Publish(p.world, ev)
	return true
}

package main

import (
	"github.com/automoto/volley/components"
	"github.com/automoto/volley/shared/netcomponents"
	"github.com/automoto/volley/sim"
	"github.com/yohamta/donburi"
)

// source feeds the renderer, either from a local simulation or from a
// server's replicated state (network.Client).
type source interface {
	Update() error
	Units() []netcomponents.NetUnitData
	Effects() []components.EffectData
	Match() netcomponents.NetMatchData
	Status() string
	Close()
}

type localSource struct {
	sim    *sim.Simulation
	paused bool
}

func (l *localSource) Update() error {
	if !l.paused {
		l.sim.Tick()
	}
	return nil
}

func (l *localSource) Units() []netcomponents.NetUnitData {
	var out []netcomponents.NetUnitData
	components.Unit.Each(l.sim.World, func(e *donburi.Entry) {
		out = append(out, l.sim.UnitView(e))
	})
	return out
}

func (l *localSource) Effects() []components.EffectData {
	return collectEffects(l.sim.World)
}

func (l *localSource) Match() netcomponents.NetMatchData {
	return l.sim.MatchView()
}

func (l *localSource) Status() string {
	if l.paused {
		return "local (paused)"
	}
	return "local"
}

func (l *localSource) Close() {
	l.sim.Close()
}

func collectEffects(w donburi.World) []components.EffectData {
	var out []components.EffectData
	components.Effect.Each(w, func(e *donburi.Entry) {
		out = append(out, *components.Effect.Get(e))
	})
	return out
}

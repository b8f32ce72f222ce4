package network

import (
	"sort"

	"github.com/automoto/volley/components"
	"github.com/automoto/volley/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
)

// Mirror keeps a local world in step with the server's replicated entities.
type Mirror struct {
	World      donburi.World
	presentIDs map[esync.NetworkId]bool
}

func NewMirror() *Mirror {
	return &Mirror{
		World:      donburi.NewWorld(),
		presentIDs: make(map[esync.NetworkId]bool),
	}
}

// Apply creates, updates and removes mirrored entities to match snapshot.
func (m *Mirror) Apply(snapshot esync.WorldSnapshot) {
	world := m.World
	clear(m.presentIDs)

	for _, ent := range snapshot {
		m.presentIDs[ent.Id] = true

		var compData []any
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			compData = append(compData, instance)
		}

		entity := esync.FindByNetworkId(world, ent.Id)
		if !world.Valid(entity) {
			entity = world.Create(componentTypesFromInstances(compData)...)
			entry := world.Entry(entity)
			entry.AddComponent(esync.NetworkIdComponent)
			esync.NetworkIdComponent.SetValue(entry, ent.Id)
		}

		entry := world.Entry(entity)
		for _, data := range compData {
			applyComponentToEntry(entry, data)
		}
	}

	var stale []*donburi.Entry
	esync.NetworkEntityQuery.Each(world, func(entry *donburi.Entry) {
		id := esync.GetNetworkId(entry)
		if id == nil {
			return
		}
		if !m.presentIDs[*id] {
			stale = append(stale, entry)
		}
	})
	for _, entry := range stale {
		entry.Remove()
	}
}

// Units returns the mirrored units ordered by team, then left to right.
// Mirror order follows snapshot arrival, which would make drawing flicker.
func (m *Mirror) Units() []netcomponents.NetUnitData {
	var out []netcomponents.NetUnitData
	netcomponents.NetUnit.Each(m.World, func(e *donburi.Entry) {
		out = append(out, *netcomponents.NetUnit.Get(e))
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Team != out[j].Team {
			return out[i].Team < out[j].Team
		}
		return out[i].X < out[j].X
	})
	return out
}

func (m *Mirror) Effects() []components.EffectData {
	var out []components.EffectData
	components.Effect.Each(m.World, func(e *donburi.Entry) {
		out = append(out, *components.Effect.Get(e))
	})
	return out
}

// Match returns the replicated match state, or the zero value before the
// first snapshot.
func (m *Mirror) Match() netcomponents.NetMatchData {
	if e, ok := netcomponents.NetMatch.First(m.World); ok {
		return *netcomponents.NetMatch.Get(e)
	}
	return netcomponents.NetMatchData{}
}

func componentTypesFromInstances(data []any) []donburi.IComponentType {
	var ctypes []donburi.IComponentType
	for _, d := range data {
		switch d.(type) {
		case components.EffectData:
			ctypes = append(ctypes, components.Effect)
		case netcomponents.NetUnitData:
			ctypes = append(ctypes, netcomponents.NetUnit)
		case netcomponents.NetMatchData:
			ctypes = append(ctypes, netcomponents.NetMatch)
		}
	}
	return ctypes
}

func applyComponentToEntry(entry *donburi.Entry, data any) {
	switch v := data.(type) {
	case components.EffectData:
		if !entry.HasComponent(components.Effect) {
			entry.AddComponent(components.Effect)
		}
		components.Effect.SetValue(entry, v)
	case netcomponents.NetUnitData:
		if !entry.HasComponent(netcomponents.NetUnit) {
			entry.AddComponent(netcomponents.NetUnit)
		}
		netcomponents.NetUnit.SetValue(entry, v)
	case netcomponents.NetMatchData:
		if !entry.HasComponent(netcomponents.NetMatch) {
			entry.AddComponent(netcomponents.NetMatch)
		}
		netcomponents.NetMatch.SetValue(entry, v)
	}
}

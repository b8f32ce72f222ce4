package archetypes

import (
	"github.com/automoto/volley/components"
	"github.com/automoto/volley/tags"
	"github.com/yohamta/donburi"
)

var (
	Unit = newArchetype(
		tags.Unit,
		components.Unit,
		components.Object,
		components.Health,
	)
	Effect = newArchetype(
		tags.Effect,
		components.Effect,
	)
	Trail = newArchetype(
		tags.Trail,
		components.Effect,
		components.AutoDestroy,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

// Spawn creates an entity with the archetype's components plus any extras.
func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	all = append(all, cs...)
	return w.Entry(w.Create(all...))
}

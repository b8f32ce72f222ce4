package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// Player is the controlling player of a unit or missile. Units whose owners
// share a Team are allies; everything else is hostile.
type Player struct {
	ID   int
	Team int
}

type UnitData struct {
	Owner     Player
	Kind      string  // config.Units key the unit was spawned from
	FlyHeight float64 // constant height above ground, 0 for ground units
}

var Unit = donburi.NewComponentType[UnitData]()

// ObjectData ties an entity to its collision object in the resolv.Space.
type ObjectData struct {
	*resolv.Object
}

var Object = donburi.NewComponentType[ObjectData]()

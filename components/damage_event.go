package components

import "github.com/yohamta/donburi"

// DamageEventData accumulates committed damage on a target until the combat
// step folds it into Health. Several applications in one tick add up.
type DamageEventData struct {
	Amount     float64
	Hits       int
	LastSource donburi.Entity
}

var DamageEvent = donburi.NewComponentType[DamageEventData]()

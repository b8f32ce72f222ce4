package components

import "github.com/yohamta/donburi"

// AutoAttackData drives a unit's native attack: once Remaining hits 0 the unit
// strikes the nearest enemy within Range and the cooldown restarts.
type AutoAttackData struct {
	Damage    float64
	Range     float64
	Cooldown  int // ticks between attacks
	Remaining int
	Ranged    bool
}

var AutoAttack = donburi.NewComponentType[AutoAttackData]()

package components

import "github.com/yohamta/donburi"

// DeathData marks a unit that has reached 0 health. Timer counts down each
// tick; when it reaches 0 the unit is removed from the world.
type DeathData struct {
	Timer int
}

var Death = donburi.NewComponentType[DeathData]()

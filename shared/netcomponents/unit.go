package netcomponents

import "github.com/yohamta/donburi"

// NetUnitData is the replicated view of a unit.
type NetUnitData struct {
	X, Y, Z   float64
	Kind      string
	Player    int
	Team      int
	Health    float64
	MaxHealth float64
	Dying     bool
}

var NetUnit = donburi.NewComponentType[NetUnitData]()

// LerpNetUnit interpolates between two unit snapshots
func LerpNetUnit(from, to NetUnitData, t float64) *NetUnitData {
	return &NetUnitData{
		X:         from.X + (to.X-from.X)*t,
		Y:         from.Y + (to.Y-from.Y)*t,
		Z:         from.Z + (to.Z-from.Z)*t,
		Kind:      to.Kind,
		Player:    to.Player,
		Team:      to.Team,
		Health:    to.Health,
		MaxHealth: to.MaxHealth,
		Dying:     to.Dying,
	}
}

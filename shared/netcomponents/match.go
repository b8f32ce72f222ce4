package netcomponents

import "github.com/yohamta/donburi"

type MatchState int

const (
	MatchStatePlaying MatchState = iota
	MatchStateFinished
)

// NetMatchData carries match-wide counters, one entity per server.
type NetMatchData struct {
	State        MatchState
	WinnerTeam   int // valid once State is MatchStateFinished
	Tick         uint64
	Missiles     int
	Applications int
	TotalDamage  float64
	Kills        int
}

var NetMatch = donburi.NewComponentType[NetMatchData]()

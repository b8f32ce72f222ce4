// Package leveldata provides TMX arena parsing. It has no dependencies on
// donburi or resolv, pure data only.
package leveldata

// ArenaData holds everything the simulation needs from an arena file.
type ArenaData struct {
	Width  int // pixels
	Height int // pixels
	Units  []UnitSpawn
}

// UnitSpawn places one unit of a config.Units kind.
type UnitSpawn struct {
	X, Y   float64
	Kind   string
	Player int
	Team   int
}

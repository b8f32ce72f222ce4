package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// PatrolData moves a unit back and forth along X. The sequence yields the
// unit's left edge for the current time.
type PatrolData struct {
	Sequence *gween.Sequence
}

var Patrol = donburi.NewComponentType[PatrolData]()

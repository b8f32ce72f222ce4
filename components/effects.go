package components

import "github.com/yohamta/donburi"

// EffectData is a visual-effect handle: a renderable with no gameplay state.
// Fields stay flat so the component can be replicated as-is.
type EffectData struct {
	Art   string
	X     float64
	Y     float64
	Z     float64
	Scale float64
	Yaw   float64
	Pitch float64
}

var Effect = donburi.NewComponentType[EffectData]()

// LerpEffect interpolates between two effect snapshots for smooth rendering.
func LerpEffect(from, to EffectData, t float64) *EffectData {
	return &EffectData{
		Art:   to.Art,
		X:     from.X + (to.X-from.X)*t,
		Y:     from.Y + (to.Y-from.Y)*t,
		Z:     from.Z + (to.Z-from.Z)*t,
		Scale: from.Scale + (to.Scale-from.Scale)*t,
		Yaw:   to.Yaw,
		Pitch: to.Pitch,
	}
}

// AutoDestroyData marks effects that are removed after a number of frames
type AutoDestroyData struct {
	FramesRemaining int
}

var AutoDestroy = donburi.NewComponentType[AutoDestroyData]()

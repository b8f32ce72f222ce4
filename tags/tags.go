package tags

import "github.com/yohamta/donburi"

var (
	Unit   = donburi.NewTag().SetName("Unit")
	Effect = donburi.NewTag().SetName("Effect")
	Trail  = donburi.NewTag().SetName("Trail")
)

// Resolv tags for spatial queries
const (
	ResolvUnit  = "Unit"
	ResolvProbe = "probe"
)

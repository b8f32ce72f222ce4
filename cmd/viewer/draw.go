package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/automoto/volley/config"
	"github.com/automoto/volley/fonts"
	"github.com/automoto/volley/shared/netcomponents"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

// heightScale projects world height onto the screen's Y axis.
const heightScale = 0.5

var teamColors = map[int]color.Color{
	1: colornames.Royalblue,
	2: colornames.Crimson,
	3: colornames.Gold,
}

func teamColor(team int) color.Color {
	if c, ok := teamColors[team]; ok {
		return c
	}
	return colornames.Silver
}

func drawArena(screen *ebiten.Image, src source) {
	screen.Fill(colornames.Darkslategray)

	for _, u := range src.Units() {
		drawUnit(screen, u)
	}
	for _, e := range src.Effects() {
		x := float32(e.X)
		y := float32(e.Y - e.Z*heightScale)
		r := float32(4 * e.Scale)
		if r <= 0 {
			r = 2
		}
		vector.FillCircle(screen, x, y, r, colornames.Violet, true)
		hx := x + float32(math.Cos(e.Yaw))*r*2
		hy := y + float32(math.Sin(e.Yaw))*r*2
		vector.StrokeLine(screen, x, y, hx, hy, 1, colornames.Plum, true)
	}

	drawHUD(screen, src)
}

func drawUnit(screen *ebiten.Image, u netcomponents.NetUnitData) {
	size := float32(config.Space.UnitSize)
	gx, gy := float32(u.X), float32(u.Y)
	y := float32(u.Y - u.Z*heightScale)

	if u.Z > 0 {
		vector.FillCircle(screen, gx, gy, size/4, colornames.Black, true)
		vector.StrokeLine(screen, gx, gy, gx, y, 1, colornames.Dimgray, true)
	}

	c := teamColor(u.Team)
	if u.Dying {
		c = colornames.Gray
	}
	vector.FillCircle(screen, gx, y, size/2, c, true)

	if u.MaxHealth > 0 {
		frac := float32(u.Health / u.MaxHealth)
		bx, by := gx-size/2, y-size/2-6
		vector.FillRect(screen, bx, by, size, 3, colornames.Darkred, false)
		vector.FillRect(screen, bx, by, size*frac, 3, colornames.Limegreen, false)
	}
	text.Draw(screen, u.Kind, fonts.HUDSmall.Get(), int(gx-size/2), int(y+size/2+10), colornames.White)
}

func drawHUD(screen *ebiten.Image, src source) {
	m := src.Match()
	lines := []string{
		fmt.Sprintf("%s  tick %d", src.Status(), m.Tick),
		fmt.Sprintf("missiles %d  hits %d  damage %.0f  kills %d", m.Missiles, m.Applications, m.TotalDamage, m.Kills),
	}
	for i, l := range lines {
		text.Draw(screen, l, fonts.HUD.Get(), 8, 18+i*18, colornames.White)
	}

	if m.State == netcomponents.MatchStateFinished {
		msg := "Draw"
		if m.WinnerTeam != 0 {
			msg = fmt.Sprintf("Team %d wins", m.WinnerTeam)
		}
		w := screen.Bounds().Dx()
		text.Draw(screen, msg, fonts.Banner.Get(), w/2-80, 60, teamColor(m.WinnerTeam))
	}
}

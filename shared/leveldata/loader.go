package leveldata

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/lafriks/go-tiled"
)

// UnitsLayer is the object group arenas declare their units in.
const UnitsLayer = "Units"

// ErrNoUnits is returned for arenas without a Units object group.
var ErrNoUnits = errors.New("arena has no Units layer")

// LoadArena parses a TMX file and returns the arena size and unit spawns. It
// takes an fs.FS so callers can pass embed.FS or os.DirFS.
func LoadArena(fsys fs.FS, tmxPath string) (*ArenaData, error) {
	arenaMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	data := &ArenaData{
		Width:  arenaMap.Width * arenaMap.TileWidth,
		Height: arenaMap.Height * arenaMap.TileHeight,
	}

	found := false
	for _, og := range arenaMap.ObjectGroups {
		if og.Name != UnitsLayer {
			continue
		}
		found = true
		for _, o := range og.Objects {
			data.Units = append(data.Units, UnitSpawn{
				X:      o.X,
				Y:      o.Y,
				Kind:   o.Properties.GetString("kind"),
				Player: o.Properties.GetInt("player"),
				Team:   o.Properties.GetInt("team"),
			})
		}
	}
	if !found {
		return nil, fmt.Errorf("%s: %w", tmxPath, ErrNoUnits)
	}

	// Stable spawn order: by team, then left-to-right
	sort.SliceStable(data.Units, func(i, j int) bool {
		if data.Units[i].Team != data.Units[j].Team {
			return data.Units[i].Team < data.Units[j].Team
		}
		return data.Units[i].X < data.Units[j].X
	})

	return data, nil
}

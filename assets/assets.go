package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/automoto/volley/shared/leveldata"
)

var (
	//go:embed arenas/*.tmx
	arenaFS embed.FS
)

// ArenaNames returns the embedded arena names without extension, sorted.
func ArenaNames() ([]string, error) {
	matches, err := fs.Glob(arenaFS, "arenas/*.tmx")
	if err != nil {
		return nil, fmt.Errorf("glob arenas: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ".tmx"))
	}
	sort.Strings(names)
	return names, nil
}

// LoadArena parses an embedded arena by name.
func LoadArena(name string) (*leveldata.ArenaData, error) {
	return leveldata.LoadArena(arenaFS, "arenas/"+name+".tmx")
}

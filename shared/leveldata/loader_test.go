package leveldata

import (
	"errors"
	"os"
	"testing"
)

func TestLoadArenaReadsUnits(t *testing.T) {
	data, err := LoadArena(os.DirFS("testdata"), "duel.tmx")
	if err != nil {
		t.Fatalf("load arena: %v", err)
	}

	if data.Width != 640 || data.Height != 400 {
		t.Fatalf("expected 640x400 arena, got %dx%d", data.Width, data.Height)
	}
	if len(data.Units) != 3 {
		t.Fatalf("expected 3 units, got %d", len(data.Units))
	}

	want := []UnitSpawn{
		{X: 100, Y: 200, Kind: "sorceress", Player: 1, Team: 1},
		{X: 300, Y: 120, Kind: "gargoyle", Player: 2, Team: 2},
		{X: 500, Y: 200, Kind: "footman", Player: 2, Team: 2},
	}
	for i, w := range want {
		if data.Units[i] != w {
			t.Errorf("unit %d: expected %+v, got %+v", i, w, data.Units[i])
		}
	}
}

func TestLoadArenaWithoutUnitsLayer(t *testing.T) {
	_, err := LoadArena(os.DirFS("testdata"), "empty.tmx")
	if !errors.Is(err, ErrNoUnits) {
		t.Fatalf("expected ErrNoUnits, got %v", err)
	}
}

func TestLoadArenaMissingFile(t *testing.T) {
	if _, err := LoadArena(os.DirFS("testdata"), "missing.tmx"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

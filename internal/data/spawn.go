package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MoveOrder is an initial move command for a spawned unit, in world units.
type MoveOrder struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// SpawnEntry places one unit or building when a level starts. Units use world
// coordinates (X, Y); buildings use tile coordinates (TileX, TileY).
type SpawnEntry struct {
	Unit     string     `yaml:"unit,omitempty"`
	Building string     `yaml:"building,omitempty"`
	X        float64    `yaml:"x"`
	Y        float64    `yaml:"y"`
	TileX    int        `yaml:"tile_x"`
	TileY    int        `yaml:"tile_y"`
	MoveTo   *MoveOrder `yaml:"move_to,omitempty"`
	Train    int        `yaml:"train"` // casts of the building's first train ability
}

type spawnListFile struct {
	Spawns []SpawnEntry `yaml:"spawns"`
}

// LoadSpawnList loads level spawn entries from a YAML file.
func LoadSpawnList(path string) ([]SpawnEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn list %s: %w", path, err)
	}
	var f spawnListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse spawn list: %w", err)
	}
	for i, s := range f.Spawns {
		if (s.Unit == "") == (s.Building == "") {
			return nil, fmt.Errorf("spawn %d: exactly one of unit or building must be set", i)
		}
	}
	return f.Spawns, nil
}

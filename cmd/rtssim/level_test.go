package main

import (
	"path/filepath"
	"testing"

	"github.com/tilerts/sim/internal/command"
	"github.com/tilerts/sim/internal/data"
	"github.com/tilerts/sim/internal/geom"
	"github.com/tilerts/sim/internal/scripting"
	"github.com/tilerts/sim/internal/system"
	"github.com/tilerts/sim/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

const repoRoot = "../.."

func loadShippedLevel(t *testing.T) (*data.GridMap, *data.Catalog, []data.SpawnEntry) {
	t.Helper()
	grid, err := data.LoadGridMap(filepath.Join(repoRoot, "map", "level1.txt"))
	if err != nil {
		t.Fatalf("LoadGridMap: %v", err)
	}
	cat, err := data.LoadCatalog(
		filepath.Join(repoRoot, "data", "yaml", "unit_list.yaml"),
		filepath.Join(repoRoot, "data", "yaml", "building_list.yaml"),
	)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	spawns, err := data.LoadSpawnList(filepath.Join(repoRoot, "data", "yaml", "spawn_list.yaml"))
	if err != nil {
		t.Fatalf("LoadSpawnList: %v", err)
	}
	return grid, cat, spawns
}

func TestSpawnShippedLevel(t *testing.T) {
	grid, cat, spawns := loadShippedLevel(t)
	log := zaptest.NewLogger(t)
	engine, err := scripting.NewEngine(filepath.Join(repoRoot, "scripts"), log)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer engine.Close()

	const tps = 60
	ws := world.NewState(grid, cat, world.Options{
		TicksPerSecond: tps,
		Rules:          scripting.Rules{Engine: engine, TicksPerSecond: tps, Fallback: 3 * tps},
	})
	ctl := command.NewController(ws, log)
	units, buildings := spawnLevel(ws, ctl, spawns, log)
	if units != 3 || buildings != 1 {
		t.Fatalf("Expected 3 units and 1 building, got %d and %d", units, buildings)
	}

	b := ws.Buildings()[0]
	if len(b.TrainQueue) != 2 {
		t.Fatalf("Expected 2 queued workers, got %d", len(b.TrainQueue))
	}
	if b.TrainQueue[0].DurTotal != 3*tps {
		t.Errorf("Expected worker training of %d ticks, got %d", 3*tps, b.TrainQueue[0].DurTotal)
	}
	mover := ws.Units()[1]
	if !mover.MoveQueued() {
		t.Error("Expected the second worker to have a move order")
	}
	for _, u := range ws.Units() {
		if u.Selected {
			t.Error("Expected selection cleared after spawning")
		}
	}

	sim := system.NewSimulation(ws, system.Clock{TicksPerSecond: tps}, log)
	for i := 0; i < 8*tps; i++ {
		sim.Tick()
	}
	if ws.UnitCount() != 5 {
		t.Errorf("Expected 5 units after both trainings finish, got %d", ws.UnitCount())
	}
	if mover.MoveQueued() {
		t.Errorf("Expected mover to arrive, still at %v with %d waypoints", mover.Pos, len(mover.Waypoints))
	}
	if want := (geom.TilePoint{X: 14, Y: 7}).Center(); mover.Pos != want {
		t.Errorf("Expected mover at %v, got %v", want, mover.Pos)
	}
}

func TestSpawnLevelSkipsBadEntries(t *testing.T) {
	grid, cat, _ := loadShippedLevel(t)
	log := zaptest.NewLogger(t)
	ws := world.NewState(grid, cat, world.Options{})
	spawns := []data.SpawnEntry{
		{Unit: "dragon", X: 10, Y: 10},
		{Building: "castle", TileX: 1, TileY: 1},
		{Unit: "soldier", X: 100, Y: 100},
	}
	units, buildings := spawnLevel(ws, command.NewController(ws, log), spawns, log)
	if units != 1 || buildings != 0 {
		t.Errorf("Expected only the soldier, got %d units and %d buildings", units, buildings)
	}
}

func TestSpawnLevelSkipsOffMapEntries(t *testing.T) {
	grid, cat, _ := loadShippedLevel(t)
	core, logs := observer.New(zapcore.WarnLevel)
	log := zap.New(core)
	ws := world.NewState(grid, cat, world.Options{})
	ctl := command.NewController(ws, log)

	w, h := grid.Width(), grid.Height()
	spawns := []data.SpawnEntry{
		{Unit: "worker", X: 100, Y: 100},
		{Unit: "worker", X: -5, Y: 100},
		{Unit: "worker", X: float64(w * geom.TileWidth), Y: 100},
		{Building: "barracks", TileX: 0, TileY: 0},
		{Building: "barracks", TileX: w - 1, TileY: 0}, // 3 wide, overhangs the right edge
		{Building: "barracks", TileX: 100, TileY: 100},
		{Building: "barracks", TileX: 0, TileY: h - 1}, // 2 high, overhangs the bottom
	}
	units, buildings := spawnLevel(ws, ctl, spawns, log)
	if units != 1 || buildings != 1 {
		t.Errorf("Expected 1 unit and 1 building, got %d and %d", units, buildings)
	}
	if n := logs.FilterMessage("spawn unit off map").Len(); n != 2 {
		t.Errorf("Expected 2 off-map unit warnings, got %d", n)
	}
	if n := logs.FilterMessage("spawn building off map").Len(); n != 3 {
		t.Errorf("Expected 3 off-map building warnings, got %d", n)
	}
}

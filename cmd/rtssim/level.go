package main

import (
	"github.com/tilerts/sim/internal/command"
	"github.com/tilerts/sim/internal/data"
	"github.com/tilerts/sim/internal/geom"
	"github.com/tilerts/sim/internal/world"
	"go.uber.org/zap"
)

// spawnLevel places the spawn list entries and issues their initial orders
// through the command API, the same path player input takes. Bad entries
// are logged and skipped, including anything that would sit off the map.
func spawnLevel(ws *world.State, ctl *command.Controller, spawns []data.SpawnEntry, log *zap.Logger) (units, buildings int) {
	for i, sp := range spawns {
		switch {
		case sp.Unit != "":
			pos := geom.Pt(sp.X, sp.Y)
			if tp, ok := pos.ToTile(); !ok || !ws.Map().Contains(tp) {
				log.Warn("spawn unit off map", zap.Int("entry", i), zap.String("unit", sp.Unit),
					zap.Float64("x", sp.X), zap.Float64("y", sp.Y))
				continue
			}
			u, err := ws.MakeUnit(ws.UnitType(sp.Unit), pos)
			if err != nil {
				log.Warn("spawn unit failed", zap.Int("entry", i), zap.String("unit", sp.Unit), zap.Error(err))
				continue
			}
			units++
			if sp.MoveTo != nil {
				selectOnly(ws, u, nil)
				if err := ctl.Move(geom.Pt(sp.MoveTo.X, sp.MoveTo.Y), false); err != nil {
					log.Warn("spawn move order rejected", zap.Int("entry", i), zap.Error(err))
				}
			}

		case sp.Building != "":
			bt := ws.BuildingType(sp.Building)
			tl := geom.TilePoint{X: sp.TileX, Y: sp.TileY}
			if bt != nil && !footprintOnMap(ws.Map(), bt, tl) {
				log.Warn("spawn building off map", zap.Int("entry", i), zap.String("building", sp.Building),
					zap.Int("tile_x", sp.TileX), zap.Int("tile_y", sp.TileY))
				continue
			}
			b, err := ws.MakeBuilding(bt, tl)
			if err != nil {
				log.Warn("spawn building failed", zap.Int("entry", i), zap.String("building", sp.Building), zap.Error(err))
				continue
			}
			buildings++
			if sp.Train > 0 {
				trainAtStart(ws, ctl, b, sp.Train, log)
			}
		}
	}
	ws.ClearSelection()
	return units, buildings
}

// trainAtStart casts the building's first train ability n times.
func trainAtStart(ws *world.State, ctl *command.Controller, b *world.Building, n int, log *zap.Logger) {
	var key world.Keycode
	for _, ab := range b.Abilities {
		if ab.Kind() == world.AbilityTrain {
			key = ab.Keycode()
			break
		}
	}
	if key == "" {
		log.Warn("building has no train ability", zap.String("building", b.Type.Name))
		return
	}
	selectOnly(ws, nil, b)
	for i := 0; i < n; i++ {
		// Failures are reported by the controller.
		if err := ctl.KeyDown(key); err != nil {
			break
		}
	}
}

func footprintOnMap(m *data.GridMap, bt *data.BuildingType, tl geom.TilePoint) bool {
	br := tl.Add(geom.TilePoint{X: bt.Width - 1, Y: bt.Height - 1})
	return m.Contains(tl) && m.Contains(br)
}

func selectOnly(ws *world.State, u *world.Unit, b *world.Building) {
	ws.ClearSelection()
	if u != nil {
		u.Selected = true
	}
	if b != nil {
		b.Selected = true
	}
}

package world

import (
	"math"
	"slices"

	"github.com/tilerts/sim/internal/core/uid"
	"github.com/tilerts/sim/internal/geom"
)

// cellSize is the side of one index cell in world units (4x4 tiles).
const cellSize = 4 * geom.TileWidth

type cellKey struct {
	cx int
	cy int
}

func toCellCoord(v float64) int {
	return int(math.Floor(v / cellSize))
}

func cellOf(p geom.WorldPoint) cellKey {
	return cellKey{cx: toCellCoord(p.X), cy: toCellCoord(p.Y)}
}

// UnitGrid buckets unit centers into coarse cells for area queries.
// Accessed only from the simulation goroutine, no locks.
type UnitGrid struct {
	cells map[cellKey]map[uid.UID]struct{}
}

func NewUnitGrid() *UnitGrid {
	return &UnitGrid{
		cells: make(map[cellKey]map[uid.UID]struct{}),
	}
}

// Add places a unit into the grid.
func (g *UnitGrid) Add(id uid.UID, p geom.WorldPoint) {
	k := cellOf(p)
	cell := g.cells[k]
	if cell == nil {
		cell = make(map[uid.UID]struct{})
		g.cells[k] = cell
	}
	cell[id] = struct{}{}
}

// Remove takes a unit out of the grid.
func (g *UnitGrid) Remove(id uid.UID, p geom.WorldPoint) {
	k := cellOf(p)
	cell := g.cells[k]
	if cell != nil {
		delete(cell, id)
		if len(cell) == 0 {
			delete(g.cells, k)
		}
	}
}

// Move updates a unit's cell when its position changes.
func (g *UnitGrid) Move(id uid.UID, from, to geom.WorldPoint) {
	if cellOf(from) == cellOf(to) {
		return
	}
	g.Remove(id, from)
	g.Add(id, to)
}

// Query returns the ids of units whose center lies in a cell touching r,
// in ascending order. Callers filter by exact bounds.
func (g *UnitGrid) Query(r geom.Rect) []uid.UID {
	lo, hi := cellOf(r.Min), cellOf(r.Max)
	var result []uid.UID
	for cy := lo.cy; cy <= hi.cy; cy++ {
		for cx := lo.cx; cx <= hi.cx; cx++ {
			for id := range g.cells[cellKey{cx: cx, cy: cy}] {
				result = append(result, id)
			}
		}
	}
	slices.Sort(result)
	return result
}


package world

import "github.com/tilerts/sim/internal/data"

// Rules supplies tunable game numbers that are not part of the static catalogs.
type Rules interface {
	// TrainTicks returns how many ticks producing one unit of ut takes.
	TrainTicks(ut *data.UnitType) int
}

// FixedRules trains every unit type in the same number of ticks.
type FixedRules struct {
	Ticks int
}

func (r FixedRules) TrainTicks(*data.UnitType) int { return r.Ticks }

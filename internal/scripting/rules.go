package scripting

import (
	"github.com/tilerts/sim/internal/data"
	"go.uber.org/zap"
)

// Rules adapts an Engine to world.Rules. Every unit type uses Fallback
// ticks unless train_duration returns a positive number.
type Rules struct {
	Engine         *Engine
	TicksPerSecond int
	Fallback       int
}

func (r Rules) TrainTicks(ut *data.UnitType) int {
	if r.Engine == nil || ut == nil {
		return r.Fallback
	}
	ticks, ok := r.Engine.TrainDuration(ut.Name, r.TicksPerSecond)
	if !ok {
		return r.Fallback
	}
	if ticks <= 0 {
		r.Engine.log.Warn("lua train_duration not positive, using fallback",
			zap.String("unit", ut.Name), zap.Int("ticks", ticks), zap.Int("fallback", r.Fallback))
		return r.Fallback
	}
	return ticks
}

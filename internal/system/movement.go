package system

import (
	"time"

	coresys "github.com/tilerts/sim/internal/core/system"
	"github.com/tilerts/sim/internal/world"
)

// MovementSystem advances every unit one step toward its front waypoint.
// Collision is against map obstacles only; units may overlap. A blocked step
// leaves the unit exactly where it was. Phase 1 (Movement).
type MovementSystem struct {
	world *world.State
}

func NewMovementSystem(ws *world.State) *MovementSystem {
	return &MovementSystem{world: ws}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseMovement }

func (s *MovementSystem) Update(_ time.Duration) {
	s.world.EachUnit(s.step)
}

func (s *MovementSystem) step(u *world.Unit) {
	target, ok := u.NextWaypoint()
	if !ok {
		return
	}
	if !target.IsFinite() {
		u.PopWaypoint()
		return
	}
	delta := target.Sub(u.Pos)
	speed := u.Type.BaseSpeed

	next := target
	final := true
	if delta.Magnitude() >= speed {
		next = u.Pos.Add(delta.Normalized().Scale(speed))
		final = false
	}

	if s.world.Map().AnyObstacleIn(u.BoundsAt(next)) {
		return
	}
	s.world.MoveUnit(u, next)
	if final {
		u.PopWaypoint()
	}
}

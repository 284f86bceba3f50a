package system

import (
	"time"

	coresys "github.com/tilerts/sim/internal/core/system"
	"github.com/tilerts/sim/internal/world"
	"go.uber.org/zap"
)

// Clock is the fixed-timestep configuration of a simulation.
type Clock struct {
	TicksPerSecond int
}

// TickDuration is the wall-clock length of one tick.
func (c Clock) TickDuration() time.Duration {
	if c.TicksPerSecond <= 0 || c.TicksPerSecond > int(time.Second) {
		return time.Second / world.DefaultTicksPerSecond
	}
	return time.Second / time.Duration(c.TicksPerSecond)
}

// Simulation sequences the systems that advance a world by one step. Tick
// must not run concurrently with casts or any other mutation of the world.
type Simulation struct {
	runner *coresys.Runner
	clock  Clock
	ticks  uint64
	log    *zap.Logger
	now    func() time.Time
}

// NewSimulation registers the standard systems: event dispatch, movement,
// then production.
func NewSimulation(ws *world.State, clock Clock, log *zap.Logger) *Simulation {
	r := coresys.NewRunner()
	r.Register(NewEventDispatchSystem(ws.Bus()))
	r.Register(NewMovementSystem(ws))
	r.Register(NewProductionSystem(ws, log.Named("production")))
	log.Debug("simulation ready",
		zap.Int("systems", r.Len()),
		zap.Duration("timestep", clock.TickDuration()))
	return &Simulation{runner: r, clock: clock, log: log, now: time.Now}
}

// Register adds an extra system, ordered by its phase.
func (s *Simulation) Register(sys coresys.System) {
	s.runner.Register(sys)
}

// Tick advances the world by one discrete step. A step that takes longer
// than the timestep is reported, but the world state is unaffected.
func (s *Simulation) Tick() {
	dt := s.clock.TickDuration()
	start := s.now()
	s.runner.Tick(dt)
	s.ticks++
	if elapsed := s.now().Sub(start); elapsed > dt {
		s.log.Warn("tick overran timestep",
			zap.Uint64("tick", s.ticks),
			zap.Duration("elapsed", elapsed),
			zap.Duration("timestep", dt))
	}
}

// TickCount returns the number of completed ticks.
func (s *Simulation) TickCount() uint64 { return s.ticks }

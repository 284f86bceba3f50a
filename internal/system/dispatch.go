package system

import (
	"time"

	"github.com/tilerts/sim/internal/core/event"
	coresys "github.com/tilerts/sim/internal/core/system"
)

// EventDispatchSystem delivers the events emitted since the previous tick.
// Phase 0 (Dispatch).
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhaseDispatch }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}

package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseDispatch   Phase = iota // 0: deliver last tick's events
	PhaseMovement                // 1: advance units along waypoints
	PhaseProduction              // 2: training queues, spawns
	PhaseCleanup                 // 3: end-of-tick bookkeeping

	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseDispatch:
		return "dispatch"
	case PhaseMovement:
		return "movement"
	case PhaseProduction:
		return "production"
	case PhaseCleanup:
		return "cleanup"
	default:
		return "unknown"
	}
}

// System is the interface every simulation system implements. dt is the fixed
// timestep of the tick being run.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

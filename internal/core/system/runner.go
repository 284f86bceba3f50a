package system

import (
	"fmt"
	"time"
)

// Runner executes systems in phase order each tick. Systems sharing a phase
// run in registration order.
type Runner struct {
	phases [phaseCount][]System
	n      int
}

func NewRunner() *Runner {
	return &Runner{}
}

// Register files s under its phase. A phase outside the known range panics.
func (r *Runner) Register(s System) {
	p := s.Phase()
	if p < 0 || p >= phaseCount {
		panic(fmt.Sprintf("system: unknown phase %d", int(p)))
	}
	r.phases[p] = append(r.phases[p], s)
	r.n++
}

func (r *Runner) Tick(dt time.Duration) {
	for _, systems := range r.phases {
		for _, s := range systems {
			s.Update(dt)
		}
	}
}

// Len returns the number of registered systems.
func (r *Runner) Len() int {
	return r.n
}

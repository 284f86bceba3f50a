package system

import (
	"testing"
	"time"

	coresys "github.com/tilerts/sim/internal/core/system"
	"github.com/tilerts/sim/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type dtRecorder struct {
	dts []time.Duration
}

func (p *dtRecorder) Phase() coresys.Phase { return coresys.PhaseCleanup }
func (p *dtRecorder) Update(dt time.Duration) {
	p.dts = append(p.dts, dt)
}

func TestClockTickDuration(t *testing.T) {
	if got := (Clock{TicksPerSecond: 120}).TickDuration(); got != time.Second/120 {
		t.Errorf("Expected %v, got %v", time.Second/120, got)
	}
	if got := (Clock{}).TickDuration(); got != time.Second/world.DefaultTicksPerSecond {
		t.Errorf("Expected default tick, got %v", got)
	}
	if got := (Clock{TicksPerSecond: 2e9}).TickDuration(); got != time.Second/world.DefaultTicksPerSecond {
		t.Errorf("Expected default tick for a sub-nanosecond rate, got %v", got)
	}
}

func TestSimulationPassesFixedTimestep(t *testing.T) {
	ws := newWorld(t, nil, world.Options{})
	sim := NewSimulation(ws, Clock{TicksPerSecond: 50}, zap.NewNop())
	rec := &dtRecorder{}
	sim.Register(rec)
	for i := 0; i < 4; i++ {
		sim.Tick()
	}
	if len(rec.dts) != 4 {
		t.Fatalf("Expected 4 updates, got %d", len(rec.dts))
	}
	for _, dt := range rec.dts {
		if dt != 20*time.Millisecond {
			t.Errorf("Expected 20ms, got %v", dt)
		}
	}
	if sim.TickCount() != 4 {
		t.Errorf("Expected tick count 4, got %d", sim.TickCount())
	}
}

func TestSimulationWarnsOnOverrun(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ws := newWorld(t, nil, world.Options{})
	sim := NewSimulation(ws, Clock{TicksPerSecond: 100}, zap.New(core))

	base := time.Unix(0, 0)
	steps := []time.Duration{0, 5 * time.Millisecond, 10 * time.Millisecond, 40 * time.Millisecond}
	i := 0
	sim.now = func() time.Time {
		d := steps[i]
		i++
		return base.Add(d)
	}

	sim.Tick() // 5ms of a 10ms step
	if logs.Len() != 0 {
		t.Fatalf("Expected no warning for an on-time tick, got %d", logs.Len())
	}
	sim.Tick() // 30ms
	entries := logs.FilterMessage("tick overran timestep").All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 overrun warning, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["tick"]; got != uint64(2) {
		t.Errorf("Expected overrun on tick 2, got %v", got)
	}
}

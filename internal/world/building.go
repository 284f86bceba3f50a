package world

import (
	"github.com/tilerts/sim/internal/core/uid"
	"github.com/tilerts/sim/internal/data"
	"github.com/tilerts/sim/internal/geom"
)

// UnitTraining is one entry of a building's production queue, in ticks.
type UnitTraining struct {
	UnitType *data.UnitType
	DurTotal int
	DurLeft  int
}

// Building is a static entity anchored at its top-left tile.
type Building struct {
	ID               uid.UID
	TopLeft          geom.TilePoint
	Type             *data.BuildingType
	Selected         bool
	TrainQueue       []UnitTraining // front is in production
	TrainQueueMaxLen int
	Abilities        []Ability
}

func (b *Building) Width() int  { return b.Type.Width }
func (b *Building) Height() int { return b.Type.Height }

// Footprint returns the world rectangle covered by the building's tiles.
func (b *Building) Footprint() geom.Rect {
	return geom.TileRect(b.TopLeft, b.Type.Width, b.Type.Height)
}

// QueueFull reports whether another training entry would be rejected.
func (b *Building) QueueFull() bool {
	return len(b.TrainQueue) >= b.TrainQueueMaxLen
}

// EnqueueTraining appends a training entry lasting ticks. A full queue
// rejects the request with ErrQueueFull and is left unchanged. Durations
// below one tick are raised to one.
func (b *Building) EnqueueTraining(ut *data.UnitType, ticks int) error {
	if ut == nil {
		return ErrUnknownType
	}
	if b.QueueFull() {
		return ErrQueueFull
	}
	ticks = max(ticks, 1)
	b.TrainQueue = append(b.TrainQueue, UnitTraining{UnitType: ut, DurTotal: ticks, DurLeft: ticks})
	return nil
}

// AdvanceTraining counts the front entry down by one tick. When it reaches
// zero the entry is popped and its unit type returned.
func (b *Building) AdvanceTraining() (*data.UnitType, bool) {
	if len(b.TrainQueue) == 0 {
		return nil, false
	}
	front := &b.TrainQueue[0]
	front.DurLeft--
	if front.DurLeft > 0 {
		return nil, false
	}
	ut := front.UnitType
	n := copy(b.TrainQueue, b.TrainQueue[1:])
	b.TrainQueue = b.TrainQueue[:n]
	return ut, true
}

// SpawnPoint is where trained units appear: the center of the tile just
// below the footprint's middle column.
func (b *Building) SpawnPoint() geom.WorldPoint {
	return b.TopLeft.Add(geom.TilePoint{X: b.Type.Width / 2, Y: b.Type.Height}).Center()
}

// Ability returns the first ability bound to key.
func (b *Building) Ability(key Keycode) (Ability, bool) {
	return findAbility(b.Abilities, key)
}

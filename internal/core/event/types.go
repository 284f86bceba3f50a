package event

import (
	"github.com/tilerts/sim/internal/core/uid"
	"github.com/tilerts/sim/internal/geom"
)

// UnitSpawned fires for every unit created, whatever the cause.
type UnitSpawned struct {
	UID  uid.UID
	Type string
	Pos  geom.WorldPoint
}

// BuildingPlaced fires for every building created.
type BuildingPlaced struct {
	UID     uid.UID
	Type    string
	TopLeft geom.TilePoint
}

// TrainingQueued fires when a Train cast adds an entry to a building's queue.
type TrainingQueued struct {
	Building uid.UID
	UnitType string
	Ticks    int
	QueueLen int
}

// UnitTrained fires when a training entry completes and its unit is spawned.
type UnitTrained struct {
	Building uid.UID
	Unit     uid.UID
	UnitType string
}

// CastFailed carries a rejected cast to the UI layer so it can tell the player.
type CastFailed struct {
	Caster  uid.UID
	Ability string
	Err     error
}

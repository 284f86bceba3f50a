package system

import (
	"time"

	"github.com/tilerts/sim/internal/core/event"
	coresys "github.com/tilerts/sim/internal/core/system"
	"github.com/tilerts/sim/internal/core/uid"
	"github.com/tilerts/sim/internal/data"
	"github.com/tilerts/sim/internal/geom"
	"github.com/tilerts/sim/internal/world"
	"go.uber.org/zap"
)

// pendingSpawn is a finished training entry waiting to be materialized.
type pendingSpawn struct {
	building uid.UID
	unitType *data.UnitType
	pos      geom.WorldPoint
}

// ProductionSystem counts down the front of every building's training
// queue. Finished units are spawned after all buildings have been scanned.
// Phase 2 (Production).
type ProductionSystem struct {
	world  *world.State
	log    *zap.Logger
	spawns []pendingSpawn // reused across ticks
}

func NewProductionSystem(ws *world.State, log *zap.Logger) *ProductionSystem {
	return &ProductionSystem{world: ws, log: log}
}

func (s *ProductionSystem) Phase() coresys.Phase { return coresys.PhaseProduction }

func (s *ProductionSystem) Update(_ time.Duration) {
	s.spawns = s.spawns[:0]
	s.world.EachBuilding(func(b *world.Building) {
		if ut, done := b.AdvanceTraining(); done {
			s.spawns = append(s.spawns, pendingSpawn{building: b.ID, unitType: ut, pos: b.SpawnPoint()})
		}
	})

	for _, sp := range s.spawns {
		u, err := s.world.MakeUnit(sp.unitType, sp.pos)
		if err != nil {
			s.log.Error("trained unit could not be spawned",
				zap.Uint32("building", uint32(sp.building)),
				zap.String("unit_type", sp.unitType.Name),
				zap.Error(err))
			continue
		}
		event.Emit(s.world.Bus(), event.UnitTrained{
			Building: sp.building,
			Unit:     u.ID,
			UnitType: sp.unitType.Name,
		})
	}
}

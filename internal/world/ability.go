package world

import (
	"fmt"

	"github.com/tilerts/sim/internal/core/event"
	"github.com/tilerts/sim/internal/core/uid"
	"github.com/tilerts/sim/internal/data"
	"github.com/tilerts/sim/internal/geom"
)

// Keycode names the key that activates an ability, e.g. "T".
type Keycode string

// AbilityKind selects the variant of Ability.
type AbilityKind uint8

const (
	AbilityTrain AbilityKind = iota + 1
	AbilityBuild
)

func (k AbilityKind) String() string {
	switch k {
	case AbilityTrain:
		return "train"
	case AbilityBuild:
		return "build"
	default:
		return fmt.Sprintf("AbilityKind(%d)", uint8(k))
	}
}

// Targeting is the capability shape of an ability.
type Targeting uint8

const (
	NonTargeted Targeting = iota
	PointTargeted
)

// Ability is a castable action bound to its caster. It is a small value:
// each entity holds its own copies, and the kind decides which of unitType
// and buildingType is set.
type Ability struct {
	kind         AbilityKind
	key          Keycode
	name         string
	caster       uid.UID
	unitType     *data.UnitType     // AbilityTrain
	buildingType *data.BuildingType // AbilityBuild
}

// NewTrain returns a non-targeted ability that queues ut on the caster building.
func NewTrain(caster uid.UID, key Keycode, ut *data.UnitType) Ability {
	a := Ability{kind: AbilityTrain, key: key, caster: caster, unitType: ut}
	if ut != nil {
		a.name = "Train " + ut.Name
	}
	return a
}

// NewBuild returns a point-targeted ability that places bt around the target.
func NewBuild(caster uid.UID, key Keycode, bt *data.BuildingType) Ability {
	a := Ability{kind: AbilityBuild, key: key, caster: caster, buildingType: bt}
	if bt != nil {
		a.name = "Build " + bt.Name
	}
	return a
}

func (a Ability) Keycode() Keycode                 { return a.key }
func (a Ability) Name() string                     { return a.name }
func (a Ability) Caster() uid.UID                  { return a.caster }
func (a Ability) Kind() AbilityKind                { return a.kind }
func (a Ability) UnitType() *data.UnitType         { return a.unitType }
func (a Ability) BuildingType() *data.BuildingType { return a.buildingType }

func (a Ability) Targeting() Targeting {
	if a.kind == AbilityBuild {
		return PointTargeted
	}
	return NonTargeted
}

// Cast runs a non-targeted ability. Point-targeted abilities return
// ErrNeedsTarget without touching the world.
func (a Ability) Cast(s *State) error {
	switch a.kind {
	case AbilityTrain:
		return a.castTrain(s)
	case AbilityBuild:
		return ErrNeedsTarget
	default:
		return fmt.Errorf("cast %s: %w", a.kind, ErrUnknownType)
	}
}

// CastAt runs the ability against a world-space target. Non-targeted
// abilities ignore the target.
func (a Ability) CastAt(s *State, target geom.WorldPoint) error {
	switch a.kind {
	case AbilityTrain:
		return a.castTrain(s)
	case AbilityBuild:
		return a.castBuild(s, target)
	default:
		return fmt.Errorf("cast %s: %w", a.kind, ErrUnknownType)
	}
}

func (a Ability) castTrain(s *State) error {
	b, ok := s.GetBuilding(a.caster)
	if !ok {
		return fmt.Errorf("%s: building %d: %w", a.name, a.caster, ErrCasterNotFound)
	}
	ticks := s.rules.TrainTicks(a.unitType)
	if err := b.EnqueueTraining(a.unitType, ticks); err != nil {
		return fmt.Errorf("%s: %w", a.name, err)
	}
	event.Emit(s.bus, event.TrainingQueued{
		Building: b.ID,
		UnitType: a.unitType.Name,
		Ticks:    b.TrainQueue[len(b.TrainQueue)-1].DurTotal,
		QueueLen: len(b.TrainQueue),
	})
	return nil
}

func (a Ability) castBuild(s *State, target geom.WorldPoint) error {
	if _, ok := s.GetUnit(a.caster); !ok {
		return fmt.Errorf("%s: unit %d: %w", a.name, a.caster, ErrCasterNotFound)
	}
	tl, ok := WhereToBuild(s.grid, a.buildingType, target)
	if !ok {
		return fmt.Errorf("%s at (%.1f, %.1f): %w", a.name, target.X, target.Y, ErrInvalidTarget)
	}
	if _, err := s.MakeBuilding(a.buildingType, tl); err != nil {
		return fmt.Errorf("%s: %w", a.name, err)
	}
	return nil
}

// WhereToBuild returns the top-left tile that centers bt's footprint on
// target. It fails when that tile is off the map or the footprint would
// overhang the far map edge.
func WhereToBuild(m *data.GridMap, bt *data.BuildingType, target geom.WorldPoint) (geom.TilePoint, bool) {
	if bt == nil {
		return geom.TilePoint{}, false
	}
	half := geom.TilePoint{X: bt.Width / 2, Y: bt.Height / 2}.ToWorld()
	tl, ok := target.Sub(half).ToTile()
	if !ok {
		return geom.TilePoint{}, false
	}
	if tl.X+bt.Width > m.Width() || tl.Y+bt.Height > m.Height() {
		return geom.TilePoint{}, false
	}
	return tl, true
}

func findAbility(abilities []Ability, key Keycode) (Ability, bool) {
	for _, a := range abilities {
		if a.key == key {
			return a, true
		}
	}
	return Ability{}, false
}
